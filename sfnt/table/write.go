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

package table

import (
	"io"
	"sort"
)

// Write writes a complete font file, consisting of the given tables.
// Empty tables are not written.  The "head" table, if present, is
// patched to contain the correct checksum adjustment.
func Write(w io.Writer, scalerType uint32, tables map[string][]byte) (int64, error) {
	numTables := 0
	for _, data := range tables {
		if len(data) > 0 {
			numTables++
		}
	}

	tableNames := make([]string, 0, numTables)
	for name, data := range tables {
		if len(data) > 0 {
			tableNames = append(tableNames, name)
		}
	}
	sort.Slice(tableNames, func(i, j int) bool {
		iPrio := ttTableOrder[tableNames[i]]
		jPrio := ttTableOrder[tableNames[j]]
		if iPrio != jPrio {
			return iPrio > jPrio
		}
		return tableNames[i] < tableNames[j]
	})

	// temporarily clear the checksum adjustment in the "head" table
	if headData, ok := tables["head"]; ok && len(headData) >= 12 {
		clearChecksum(headData)
	}

	// assign offsets following the physical table order
	type record struct {
		name     string
		checkSum uint32
		offset   uint32
		length   uint32
	}
	records := make([]record, numTables)
	var totalSum uint32
	offset := uint32(12 + 16*numTables)
	for i, name := range tableNames {
		body := tables[name]
		records[i] = record{
			name:     name,
			checkSum: checksum(body),
			offset:   offset,
			length:   uint32(len(body)),
		}
		totalSum += records[i].checkSum
		offset += 4 * ((records[i].length + 3) / 4)
	}

	// directory entries must be sorted by tag for binary search
	sort.Slice(records, func(i, j int) bool {
		return records[i].name < records[j].name
	})

	entrySelector := bitLength(numTables) - 1
	searchRange := 1 << (entrySelector + 4)

	header := make([]byte, 12+16*numTables)
	header[0] = byte(scalerType >> 24)
	header[1] = byte(scalerType >> 16)
	header[2] = byte(scalerType >> 8)
	header[3] = byte(scalerType)
	header[4] = byte(numTables >> 8)
	header[5] = byte(numTables)
	header[6] = byte(searchRange >> 8)
	header[7] = byte(searchRange)
	header[8] = byte(entrySelector >> 8)
	header[9] = byte(entrySelector)
	header[10] = byte((numTables*16 - searchRange) >> 8)
	header[11] = byte(numTables*16 - searchRange)
	for i, rec := range records {
		p := 12 + i*16
		copy(header[p:p+4], rec.name)
		header[p+4] = byte(rec.checkSum >> 24)
		header[p+5] = byte(rec.checkSum >> 16)
		header[p+6] = byte(rec.checkSum >> 8)
		header[p+7] = byte(rec.checkSum)
		header[p+8] = byte(rec.offset >> 24)
		header[p+9] = byte(rec.offset >> 16)
		header[p+10] = byte(rec.offset >> 8)
		header[p+11] = byte(rec.offset)
		header[p+12] = byte(rec.length >> 24)
		header[p+13] = byte(rec.length >> 16)
		header[p+14] = byte(rec.length >> 8)
		header[p+15] = byte(rec.length)
	}
	totalSum += checksum(header)

	if headData, ok := tables["head"]; ok && len(headData) >= 12 {
		patchChecksum(headData, totalSum)
	}

	var totalSize int64
	n, err := w.Write(header)
	totalSize += int64(n)
	if err != nil {
		return totalSize, err
	}

	var pad [3]byte
	for _, name := range tableNames {
		body := tables[name]
		n, err := w.Write(body)
		totalSize += int64(n)
		if err != nil {
			return totalSize, err
		}
		if k := len(body) % 4; k != 0 {
			n, err := w.Write(pad[:4-k])
			totalSize += int64(n)
			if err != nil {
				return totalSize, err
			}
		}
	}
	return totalSize, nil
}

func checksum(body []byte) uint32 {
	var sum uint32
	for len(body) >= 4 {
		sum += uint32(body[0])<<24 | uint32(body[1])<<16 | uint32(body[2])<<8 | uint32(body[3])
		body = body[4:]
	}
	var tail uint32
	for i := 0; i < 4; i++ {
		tail <<= 8
		if i < len(body) {
			tail |= uint32(body[i])
		}
	}
	return sum + tail
}

func clearChecksum(headData []byte) {
	for i := 8; i < 12; i++ {
		headData[i] = 0
	}
}

func patchChecksum(headData []byte, totalSum uint32) {
	adj := 0xB1B0AFBA - totalSum
	headData[8] = byte(adj >> 24)
	headData[9] = byte(adj >> 16)
	headData[10] = byte(adj >> 8)
	headData[11] = byte(adj)
}

func bitLength(x int) int {
	n := 0
	for x > 0 {
		x >>= 1
		n++
	}
	return n
}

// ttTableOrder lists the recommended table ordering for fonts with
// TrueType outlines.  Tables with higher priority come first.
var ttTableOrder = map[string]int{
	"head": 95,
	"hhea": 90,
	"maxp": 85,
	"OS/2": 80,
	"hmtx": 75,
	"vhea": 72,
	"vmtx": 71,
	"LTSH": 70,
	"VDMX": 65,
	"hdmx": 60,
	"cmap": 55,
	"fpgm": 50,
	"prep": 45,
	"cvt ": 40,
	"loca": 35,
	"glyf": 30,
	"kern": 25,
	"name": 20,
	"post": 15,
	"gasp": 10,
	"DSIG": -5,
}
