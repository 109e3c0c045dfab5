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

package cmap

import (
	"bytes"
	"encoding/binary"
	"math/bits"
	"sort"

	"seehuhn.de/go/dijkstra"
)

// Format 4 subtables map BMP code points to glyph IDs using segments
// with per-segment deltas or explicit glyph ID lists.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values

func decodeFormat4(in []byte, names []string, code2rune func(c uint32) rune) (map[rune]string, error) {
	if len(in)%2 != 0 || len(in) < 16 {
		return nil, errMalformedSubtable
	}

	segCountX2 := int(in[6])<<8 | int(in[7])
	if segCountX2%2 != 0 || 4*segCountX2+16 > len(in) {
		return nil, errMalformedSubtable
	}
	segCount := segCountX2 / 2

	words := make([]uint16, 0, (len(in)-14)/2)
	for i := 14; i < len(in); i += 2 {
		words = append(words, uint16(in[i])<<8|uint16(in[i+1]))
	}
	endCode := words[:segCount]
	// reservedPad omitted
	startCode := words[segCount+1 : 2*segCount+1]
	idDelta := words[2*segCount+1 : 3*segCount+1]
	idRangeOffset := words[3*segCount+1 : 4*segCount+1]
	glyphIDArray := words[4*segCount+1:]

	res := make(map[rune]string)
	put := func(code uint32, gid uint16) {
		name, ok := glyphName(names, gid)
		if !ok {
			return
		}
		r := rune(code)
		if code2rune != nil {
			r = code2rune(code)
		}
		res[r] = name
	}

	prevEnd := uint32(0)
	for k := 0; k < segCount; k++ {
		start := uint32(startCode[k])
		end := uint32(endCode[k]) + 1
		if start < prevEnd || end <= start {
			return nil, errMalformedSubtable
		}
		prevEnd = end

		if idRangeOffset[k] == 0 {
			delta := idDelta[k]
			for idx := start; idx < end; idx++ {
				put(idx, uint16(idx)+delta)
			}
		} else {
			d := int(idRangeOffset[k])/2 - (segCount - k)
			if d < 0 || d+int(end-start) > len(glyphIDArray) {
				if start == 0xFFFF {
					// some fonts have invalid data for the last segment
					continue
				}
				return nil, errMalformedSubtable
			}
			for idx := start; idx < end; idx++ {
				put(idx, glyphIDArray[d+int(idx-start)])
			}
		}
	}
	return res, nil
}

func encodeFormat4(m map[rune]string, language uint16, gids map[string]uint16) ([]byte, error) {
	cc := make(map[uint16]uint16, len(m))
	for r, name := range m {
		if r > 0xFFFF {
			continue
		}
		gid, err := lookupGID(gids, name)
		if err != nil {
			return nil, err
		}
		cc[uint16(r)] = gid
	}

	g := makeSegments(cc)
	segments, err := dijkstra.ShortestPath[uint32, *segment, int](g, 0, 0x10000)
	if err != nil {
		return nil, err
	}

	var startCode, endCode, idDelta, idRangeOffsets, glyphIDArray []uint16
	for i, s := range segments {
		startCode = append(startCode, s.first)
		endCode = append(endCode, s.last)
		idDelta = append(idDelta, s.delta)
		if !s.useValues {
			idRangeOffsets = append(idRangeOffsets, 0)
		} else {
			offs := 2 * (len(segments) - i + // remaining entries in idRangeOffsets
				len(glyphIDArray)) // any previous entries in glyphIDArray
			if offs > 65535 {
				return nil, errMalformedSubtable
			}
			idRangeOffsets = append(idRangeOffsets, uint16(offs))
			for c := uint32(s.first); c <= uint32(s.last); c++ {
				glyphIDArray = append(glyphIDArray, cc[uint16(c)])
			}
		}
	}

	segCount := len(startCode)
	sel := bits.Len(uint(segCount))
	data := &format4Header{
		Format:        4,
		Length:        uint16(2 * (8 + 4*segCount + len(glyphIDArray))),
		Language:      language,
		SegCountX2:    uint16(2 * segCount),
		SearchRange:   1 << sel,
		EntrySelector: uint16(sel - 1),
	}
	data.RangeShift = data.SegCountX2 - data.SearchRange

	endCode = append(endCode, 0) // the ReservedPad field

	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.BigEndian, data)
	for _, x := range [][]uint16{endCode, startCode, idDelta, idRangeOffsets, glyphIDArray} {
		_ = binary.Write(buf, binary.BigEndian, x)
	}

	return buf.Bytes(), nil
}

type segment struct {
	first     uint16
	last      uint16
	delta     uint16
	useValues bool
}

type makeSegments map[uint16]uint16

func (ms makeSegments) AppendEdges(ee []*segment, v uint32) []*segment {
	if v > 0xFFFF {
		return ee
	}

	// skip leading .notdef mappings
	start := v
	for start < 0xFFFF && ms[uint16(start)] == 0 {
		start++
	}

	// check whether this is the last, special segment
	delta := ms[uint16(start)] - uint16(start)
	if start == 0xFFFF {
		return append(ee, &segment{first: 0xFFFF, last: 0xFFFF, delta: delta})
	}

	// try to use a delta offset
	end := start + 1
	for end < 0xFFFF && ms[uint16(end)]-uint16(end) == delta {
		end++
	}
	segs := append(ee, &segment{
		first: uint16(start),
		last:  uint16(end - 1),
		delta: delta,
	})
	if end-start >= 4 || start == 0xFFFE {
		return segs
	}

	// as a last resort, store glyph ID values explicitly
	prevDelta := delta
	numDelta := 1
	numNotdef := 0
	end = start + 1
	for end < 0xFFFF {
		thisGid := ms[uint16(end)]

		thisDelta := thisGid - uint16(end)
		if thisDelta == prevDelta {
			numDelta++
		} else {
			prevDelta = thisDelta
			numDelta = 1 + numNotdef
		}

		if thisGid == 0 {
			numNotdef++
		} else {
			numNotdef = 0
		}

		if numDelta == 5 || numNotdef == 5 {
			segs = append(segs, &segment{
				first:     uint16(start),
				last:      uint16(end - 5),
				useValues: true,
			})
			return segs
		}

		end++
	}

	segs = append(segs, &segment{
		first:     uint16(start),
		last:      uint16(end - uint32(numNotdef) - 1),
		useValues: true,
	})
	return segs
}

func (ms makeSegments) Length(v uint32, e *segment) int {
	if e.useValues {
		return 4 + (int(e.last-e.first) + 1)
	}
	return 4
}

func (ms makeSegments) To(v uint32, e *segment) uint32 {
	return uint32(e.last) + 1
}

type format4Header struct {
	Format        uint16
	Length        uint16
	Language      uint16
	SegCountX2    uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
	// EndCode        []uint16 // End character code for each segment, last=0xFFFF.
	// ReservedPad    uint16   // (0)
	// StartCode      []uint16 // Start character code for each segment.
	// IDDelta        []uint16 // Delta for all character codes in segment.
	// IDRangeOffsets []uint16 // Offsets into GlyphIDArray or 0.
	// GlyphIDArray   []uint16 // Glyph index array (arbitrary length).
}

// sortedRunes returns the keys of m in increasing order.
func sortedRunes(m map[rune]string) []rune {
	rr := make([]rune, 0, len(m))
	for r := range m {
		rr = append(rr, r)
	}
	sort.Slice(rr, func(i, j int) bool { return rr[i] < rr[j] })
	return rr
}
