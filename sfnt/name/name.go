// github.com/enstw/ensfont - tooling to build the ENS Font family
// Copyright (C) 2026  enstw
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package name reads and writes the "name" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"fmt"
	"sort"
)

// The name IDs used by this library.
const (
	IDCopyright      uint16 = 0
	IDFamily         uint16 = 1
	IDSubfamily      uint16 = 2
	IDUniqueID       uint16 = 3
	IDFullName       uint16 = 4
	IDVersion        uint16 = 5
	IDPostScriptName uint16 = 6
	IDTrademark      uint16 = 7
	IDManufacturer   uint16 = 8
	IDDesigner       uint16 = 9
	IDDescription    uint16 = 10
	IDVendorURL      uint16 = 11
	IDDesignerURL    uint16 = 12
	IDLicense        uint16 = 13
	IDLicenseURL     uint16 = 14
	IDTypoFamily     uint16 = 16
	IDTypoSubfamily  uint16 = 17
	IDSampleText     uint16 = 19
)

// Commonly used language IDs.
const (
	LangEnglishUS      uint16 = 0x0409
	LangChineseTW      uint16 = 0x0404
	LangMacEnglish     uint16 = 0
	LangMacChineseTrad uint16 = 19
)

// Record is a single entry of the "name" table.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      string
}

// Table is a decoded "name" table.  Records whose character encoding
// this library cannot handle are dropped during decoding.
type Table []Record

// Decode extracts the records of a "name" table.
func Decode(data []byte) (Table, error) {
	if len(data) < 6 {
		return nil, errMalformedNames
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	if version > 1 {
		return nil, errMalformedNames
	}

	numRec := int(data[2])<<8 + int(data[3])
	storageOffset := int(data[4])<<8 + int(data[5])

	recBase := 6
	endOfHeader := recBase + 12*numRec
	if endOfHeader > len(data) {
		return nil, errMalformedNames
	}

	numLang := 0
	if version > 0 {
		if endOfHeader+2 > len(data) {
			return nil, errMalformedNames
		}
		numLang = int(data[endOfHeader])<<8 + int(data[endOfHeader+1])
		endOfHeader += 2 + numLang*4
	}
	if storageOffset < endOfHeader || storageOffset > len(data) {
		return nil, errMalformedNames
	}

	var res Table
	for i := 0; i < numRec; i++ {
		pos := recBase + i*12
		platformID := uint16(data[pos])<<8 | uint16(data[pos+1])
		encodingID := uint16(data[pos+2])<<8 | uint16(data[pos+3])
		languageID := uint16(data[pos+4])<<8 | uint16(data[pos+5])
		nameID := uint16(data[pos+6])<<8 | uint16(data[pos+7])
		nameLen := int(data[pos+8])<<8 | int(data[pos+9])
		nameOffset := int(data[pos+10])<<8 | int(data[pos+11])

		if storageOffset+nameOffset+nameLen > len(data) {
			return nil, errMalformedNames
		}
		nameBytes := data[storageOffset+nameOffset : storageOffset+nameOffset+nameLen]

		var val string
		switch platformID {
		case 0, 3: // Unicode and Windows
			val = utf16Decode(nameBytes)
		case 1: // Macintosh
			if encodingID != 0 {
				continue
			}
			val = macDecode(nameBytes)
		default:
			continue
		}

		res = append(res, Record{
			PlatformID: platformID,
			EncodingID: encodingID,
			LanguageID: languageID,
			NameID:     nameID,
			Value:      val,
		})
	}

	return res, nil
}

// Get returns the value of the given name ID, preferring the Windows
// en-US record.  It returns the empty string if the ID is absent.
func (t Table) Get(nameID uint16) string {
	var fallback string
	for _, rec := range t {
		if rec.NameID != nameID {
			continue
		}
		if rec.PlatformID == 3 && rec.LanguageID == LangEnglishUS {
			return rec.Value
		}
		if fallback == "" {
			fallback = rec.Value
		}
	}
	return fallback
}

// Encode converts the records into the binary form of a version 0
// "name" table.  Identical strings are stored only once.
func (t Table) Encode() []byte {
	type recInfo struct {
		Record
		offset uint16
		length uint16
	}
	records := make([]recInfo, 0, len(t))

	b := newNameBuilder()
	for _, rec := range t {
		var raw []byte
		switch rec.PlatformID {
		case 1:
			raw = macEncode(rec.Value)
		default:
			raw = utf16Encode(rec.Value)
		}
		offset, length := b.Add(raw)
		records = append(records, recInfo{
			Record: rec,
			offset: offset,
			length: length,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].PlatformID != records[j].PlatformID {
			return records[i].PlatformID < records[j].PlatformID
		}
		if records[i].EncodingID != records[j].EncodingID {
			return records[i].EncodingID < records[j].EncodingID
		}
		if records[i].LanguageID != records[j].LanguageID {
			return records[i].LanguageID < records[j].LanguageID
		}
		return records[i].NameID < records[j].NameID
	})

	numRec := len(records)
	startOfRecords := 6
	startOfStrings := startOfRecords + numRec*12
	res := make([]byte, startOfStrings+len(b.data))

	res[2] = byte(numRec >> 8)
	res[3] = byte(numRec)
	res[4] = byte(startOfStrings >> 8)
	res[5] = byte(startOfStrings)
	for i := 0; i < numRec; i++ {
		rec := records[i]
		base := startOfRecords + i*12
		res[base] = byte(rec.PlatformID >> 8)
		res[base+1] = byte(rec.PlatformID)
		res[base+2] = byte(rec.EncodingID >> 8)
		res[base+3] = byte(rec.EncodingID)
		res[base+4] = byte(rec.LanguageID >> 8)
		res[base+5] = byte(rec.LanguageID)
		res[base+6] = byte(rec.NameID >> 8)
		res[base+7] = byte(rec.NameID)
		res[base+8] = byte(rec.length >> 8)
		res[base+9] = byte(rec.length)
		res[base+10] = byte(rec.offset >> 8)
		res[base+11] = byte(rec.offset)
	}
	copy(res[startOfStrings:], b.data)

	return res
}

type nameBuilder struct {
	data []byte
	idx  map[string]uint16
}

func newNameBuilder() *nameBuilder {
	return &nameBuilder{
		idx: make(map[string]uint16),
	}
}

func (nb *nameBuilder) Add(b []byte) (offs, length uint16) {
	key := string(b)
	if idx, ok := nb.idx[key]; ok {
		return idx, uint16(len(b))
	}
	idx := uint16(len(nb.data))
	nb.idx[key] = idx
	nb.data = append(nb.data, b...)
	return idx, uint16(len(b))
}

var errMalformedNames = fmt.Errorf("name: malformed table")
