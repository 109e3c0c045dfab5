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

// Package cmap reads and writes cmap tables.
//
// Glyphs are identified by name rather than by glyph ID, so that
// mappings survive changes to the glyph order.  Glyph IDs only appear
// at the boundary, when a table is decoded from or encoded to its
// binary form.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
package cmap

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/charmap"
)

// Key selects a subtable of a cmap table.
type Key struct {
	PlatformID uint16 // Platform ID.
	EncodingID uint16 // Platform-specific encoding ID.
	Language   uint16
}

// Class describes the code range a subtable format can represent.
type Class int

// The three subtable classes.
const (
	// ClassNarrow subtables (formats 0, 4 and 6) can only represent
	// code points from the Basic Multilingual Plane.
	ClassNarrow Class = iota

	// ClassWide subtables (formats 12 and 13) can represent all of
	// Unicode.
	ClassWide

	// ClassOther subtables are carried through verbatim.
	ClassOther
)

// Subtable is a single cmap subtable.
//
// For formats 0, 4, 6 and 12 the mapping is decoded into Map.  All
// other formats are opaque; their original bytes are kept in Raw and
// written back unchanged.
type Subtable struct {
	Key    Key
	Format uint16

	// Map is the decoded mapping from code points to glyph names.
	// It is nil if the format is not decoded.
	Map map[rune]string

	// Raw holds the original binary subtable.
	Raw []byte
}

// Class returns the code range class of the subtable.
func (s *Subtable) Class() Class {
	switch s.Format {
	case 0, 4, 6:
		return ClassNarrow
	case 12, 13:
		return ClassWide
	}
	return ClassOther
}

// Writable reports whether new mappings can be added to the subtable.
// Only formats 4 and 12 can absorb arbitrary new code points; the
// remaining formats are written back unchanged.
func (s *Subtable) Writable() bool {
	return s.Format == 4 || s.Format == 12
}

// Set adds a mapping to the subtable.  It returns false if the
// subtable cannot hold the code point, either because the format is
// not writable or because a format 4 subtable cannot represent code
// points beyond the Basic Multilingual Plane.
func (s *Subtable) Set(r rune, name string) bool {
	if !s.Writable() {
		return false
	}
	if s.Format == 4 && r > 0xFFFF {
		return false
	}
	if s.Map == nil {
		s.Map = make(map[rune]string)
	}
	s.Map[r] = name
	return true
}

// Table is a decoded cmap table.  The order of subtables is the order
// in which they appeared in the font file.
type Table []*Subtable

// Decode reads all subtables of a cmap table.  The names slice gives
// the glyph name for each glyph ID.
func Decode(data []byte, names []string) (Table, error) {
	const minLength = 10 // length of an empty format 6 subtable

	if len(data) < 4 || len(data) > math.MaxUint32 {
		return nil, errMalformedCmap
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	if version != 0 {
		return nil, fmt.Errorf("cmap: unknown version %d", version)
	}
	numTables := int(data[2])<<8 | int(data[3])
	if len(data) < 4+8*numTables {
		return nil, errMalformedCmap
	}

	endOfHeader := uint32(4 + 8*numTables)
	endOfData := uint32(len(data))

	type seg struct {
		start, end uint32
	}
	var segs []seg

	var res Table
	for i := 0; i < numTables; i++ {
		platformID := uint16(data[4+i*8])<<8 | uint16(data[5+i*8])
		if platformID > 4 {
			return nil, errMalformedCmap
		}
		encodingID := uint16(data[6+i*8])<<8 | uint16(data[7+i*8])

		o := uint32(data[8+i*8])<<24 |
			uint32(data[9+i*8])<<16 |
			uint32(data[10+i*8])<<8 |
			uint32(data[11+i*8])
		if o < endOfHeader || o > endOfData-minLength {
			return nil, errMalformedCmap
		}

		var language uint16
		var length uint32
		format := uint16(data[o])<<8 | uint16(data[o+1])
		checkLength := uint32(minLength)
		switch format {
		case 0, 2, 4, 6:
			length = uint32(data[o+2])<<8 | uint32(data[o+3])
			language = uint16(data[o+4])<<8 | uint16(data[o+5])
		case 8, 10, 12, 13:
			checkLength = 16
			if o > endOfData-checkLength {
				return nil, errMalformedCmap
			}
			length = uint32(data[o+4])<<24 |
				uint32(data[o+5])<<16 |
				uint32(data[o+6])<<8 |
				uint32(data[o+7])
			language = uint16(data[o+10])<<8 | uint16(data[o+11])
		case 14:
			length = uint32(data[o+2])<<24 |
				uint32(data[o+3])<<16 |
				uint32(data[o+4])<<8 |
				uint32(data[o+5])
		default:
			return nil, errMalformedCmap
		}
		if length < checkLength || length > endOfData-o {
			return nil, errMalformedCmap
		}

		if platformID != 1 {
			language = 0
		}

		// check that subtables are either disjoint or identical
		idx := sort.Search(len(segs), func(i int) bool {
			return o <= segs[i].start
		})
		if idx == len(segs) || o != segs[idx].start {
			if idx > 0 && o < segs[idx-1].end ||
				idx < len(segs) && o+length > segs[idx].start {
				return nil, errMalformedCmap
			}
			segs = slices.Insert(segs, idx, seg{o, o + length})
		}

		sub := &Subtable{
			Key: Key{
				PlatformID: platformID,
				EncodingID: encodingID,
				Language:   language,
			},
			Format: format,
			Raw:    data[o : o+length],
		}
		var code2rune func(c uint32) rune
		if platformID == 1 {
			if encodingID != 0 {
				// Mac encodings other than Roman are kept verbatim.
				res = append(res, sub)
				continue
			}
			code2rune = macRoman
		}
		var err error
		switch format {
		case 0:
			sub.Map, err = decodeFormat0(sub.Raw, names, code2rune)
		case 4:
			sub.Map, err = decodeFormat4(sub.Raw, names, code2rune)
		case 6:
			sub.Map, err = decodeFormat6(sub.Raw, names, code2rune)
		case 12:
			sub.Map, err = decodeFormat12(sub.Raw, names)
		}
		if err != nil {
			return nil, err
		}
		res = append(res, sub)
	}

	return res, nil
}

// Get returns the subtable for the given platform and encoding ID, or
// nil if there is none.  Language is ignored; the first match wins.
func (t Table) Get(platformID, encodingID uint16) *Subtable {
	for _, sub := range t {
		if sub.Key.PlatformID == platformID && sub.Key.EncodingID == encodingID {
			return sub
		}
	}
	return nil
}

// Best selects the preferred subtable for code point lookups:
// (3, 10) full Unicode, then (3, 1) BMP, then any platform 0 subtable.
// It only considers subtables with a decoded mapping.
func (t Table) Best() *Subtable {
	candidates := []struct {
		platformID, encodingID uint16
	}{
		{3, 10}, // full unicode
		{3, 1},  // BMP
	}
	for _, c := range candidates {
		if sub := t.Get(c.platformID, c.encodingID); sub != nil && sub.Map != nil {
			return sub
		}
	}
	for _, sub := range t {
		if sub.Key.PlatformID == 0 && sub.Map != nil {
			return sub
		}
	}
	return nil
}

// Encode assembles the binary cmap table.  The gids map assigns a
// glyph ID to every glyph name; mapped names missing from gids are an
// error.  Identical subtables are stored only once.
func (t Table) Encode(gids map[string]uint16) ([]byte, error) {
	type extended struct {
		data []byte
		offs uint32
		key  Key
	}
	ext := make([]extended, 0, len(t))
	for _, sub := range t {
		var body []byte
		var err error
		switch {
		case sub.Format == 4:
			body, err = encodeFormat4(sub.Map, sub.Key.Language, gids)
		case sub.Format == 12:
			body, err = encodeFormat12(sub.Map, sub.Key.Language, gids)
		default:
			body = sub.Raw
		}
		if err != nil {
			return nil, err
		}
		ext = append(ext, extended{data: body, key: sub.Key})
	}
	sort.SliceStable(ext, func(i, j int) bool {
		if ext[i].key.PlatformID != ext[j].key.PlatformID {
			return ext[i].key.PlatformID < ext[j].key.PlatformID
		}
		if ext[i].key.EncodingID != ext[j].key.EncodingID {
			return ext[i].key.EncodingID < ext[j].key.EncodingID
		}
		return ext[i].key.Language < ext[j].key.Language
	})

	numTables := len(ext)
	endOfHeader := uint32(4 + 8*numTables)

	pos := endOfHeader
offsLoop:
	for i, e := range ext {
		for j := 0; j < i; j++ {
			if bytes.Equal(e.data, ext[j].data) {
				ext[i].offs = ext[j].offs
				ext[i].data = nil
				continue offsLoop
			}
		}
		ext[i].offs = pos
		pos += uint32(len(e.data))
	}

	res := make([]byte, endOfHeader, pos)
	res[2] = byte(numTables >> 8)
	res[3] = byte(numTables)
	for i, e := range ext {
		res[4+i*8] = byte(e.key.PlatformID >> 8)
		res[5+i*8] = byte(e.key.PlatformID)
		res[6+i*8] = byte(e.key.EncodingID >> 8)
		res[7+i*8] = byte(e.key.EncodingID)
		res[8+i*8] = byte(e.offs >> 24)
		res[9+i*8] = byte(e.offs >> 16)
		res[10+i*8] = byte(e.offs >> 8)
		res[11+i*8] = byte(e.offs)
	}
	for _, e := range ext {
		res = append(res, e.data...)
	}

	return res, nil
}

func macRoman(code uint32) rune {
	return charmap.Macintosh.DecodeByte(byte(code))
}

func glyphName(names []string, gid uint16) (string, bool) {
	if int(gid) >= len(names) || gid == 0 {
		return "", false
	}
	return names[gid], true
}

func lookupGID(gids map[string]uint16, name string) (uint16, error) {
	gid, ok := gids[name]
	if !ok {
		return 0, fmt.Errorf("cmap: no glyph ID for %q", name)
	}
	return gid, nil
}

var errMalformedCmap = fmt.Errorf("cmap: malformed table")
var errMalformedSubtable = fmt.Errorf("cmap: malformed subtable")
