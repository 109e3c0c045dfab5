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

// Format 12 subtables map arbitrary Unicode code points to glyph IDs
// using groups of consecutive codes with consecutive glyph IDs.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-12-segmented-coverage

func decodeFormat12(data []byte, names []string) (map[rune]string, error) {
	if len(data) < 16 {
		return nil, errMalformedSubtable
	}

	nGroups := uint32(data[12])<<24 | uint32(data[13])<<16 | uint32(data[14])<<8 | uint32(data[15])
	if len(data) != 16+int(nGroups)*12 || nGroups > 1e6 {
		return nil, errMalformedSubtable
	}

	res := make(map[rune]string)
	prevEnd := rune(-1)
	for i := uint32(0); i < nGroups; i++ {
		base := 16 + i*12
		startCharCode := rune(data[base])<<24 | rune(data[base+1])<<16 | rune(data[base+2])<<8 | rune(data[base+3])
		endCharCode := rune(data[base+4])<<24 | rune(data[base+5])<<16 | rune(data[base+6])<<8 | rune(data[base+7])
		startGlyphID := uint32(data[base+8])<<24 | uint32(data[base+9])<<16 | uint32(data[base+10])<<8 | uint32(data[base+11])

		if startCharCode <= prevEnd ||
			endCharCode < startCharCode ||
			endCharCode > 0x10_FFFF ||
			startGlyphID+uint32(endCharCode-startCharCode) > 0xFFFF {
			return nil, errMalformedSubtable
		}
		prevEnd = endCharCode

		for r := startCharCode; r <= endCharCode; r++ {
			gid := uint16(startGlyphID + uint32(r-startCharCode))
			if name, ok := glyphName(names, gid); ok {
				res[r] = name
			}
		}
	}

	return res, nil
}

func encodeFormat12(m map[rune]string, language uint16, gids map[string]uint16) ([]byte, error) {
	type group struct {
		startCharCode rune
		endCharCode   rune
		startGlyphID  uint32
	}
	var groups []group
	for _, r := range sortedRunes(m) {
		gid, err := lookupGID(gids, m[r])
		if err != nil {
			return nil, err
		}
		n := len(groups)
		if n > 0 &&
			groups[n-1].endCharCode == r-1 &&
			groups[n-1].startGlyphID+uint32(r-groups[n-1].startCharCode) == uint32(gid) {
			groups[n-1].endCharCode = r
			continue
		}
		groups = append(groups, group{
			startCharCode: r,
			endCharCode:   r,
			startGlyphID:  uint32(gid),
		})
	}

	nGroups := len(groups)
	l := uint32(16 + nGroups*12)
	out := make([]byte, l)
	copy(out, []byte{
		0, 12, 0, 0,
		byte(l >> 24), byte(l >> 16), byte(l >> 8), byte(l),
		0, 0, byte(language >> 8), byte(language),
		byte(nGroups >> 24), byte(nGroups >> 16), byte(nGroups >> 8), byte(nGroups),
	})
	for i, g := range groups {
		base := 16 + i*12
		out[base] = byte(g.startCharCode >> 24)
		out[base+1] = byte(g.startCharCode >> 16)
		out[base+2] = byte(g.startCharCode >> 8)
		out[base+3] = byte(g.startCharCode)
		out[base+4] = byte(g.endCharCode >> 24)
		out[base+5] = byte(g.endCharCode >> 16)
		out[base+6] = byte(g.endCharCode >> 8)
		out[base+7] = byte(g.endCharCode)
		out[base+8] = byte(g.startGlyphID >> 24)
		out[base+9] = byte(g.startGlyphID >> 16)
		out[base+10] = byte(g.startGlyphID >> 8)
		out[base+11] = byte(g.startGlyphID)
	}
	return out, nil
}
