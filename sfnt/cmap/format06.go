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

// Formats 0 and 6 are decoded for lookups but never rewritten; their
// original bytes are carried through unchanged.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-0-byte-encoding-table
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-6-trimmed-table-mapping

func decodeFormat0(data []byte, names []string, code2rune func(c uint32) rune) (map[rune]string, error) {
	if len(data) != 6+256 {
		return nil, errMalformedSubtable
	}
	res := make(map[rune]string)
	for code, gid := range data[6:] {
		name, ok := glyphName(names, uint16(gid))
		if !ok {
			continue
		}
		r := rune(code)
		if code2rune != nil {
			r = code2rune(uint32(code))
		}
		res[r] = name
	}
	return res, nil
}

func decodeFormat6(data []byte, names []string, code2rune func(c uint32) rune) (map[rune]string, error) {
	if len(data) < 10 {
		return nil, errMalformedSubtable
	}
	firstCode := uint32(data[6])<<8 | uint32(data[7])
	count := int(data[8])<<8 | int(data[9])

	// some fonts have an excess 0x0000 at the end of the table
	if len(data) == 10+2*count+2 && data[10+2*count] == 0 && data[10+2*count+1] == 0 {
		data = data[:10+2*count]
	}

	if len(data) != 10+2*count {
		return nil, errMalformedSubtable
	}

	res := make(map[rune]string)
	for i := 0; i < count; i++ {
		gid := uint16(data[10+2*i])<<8 | uint16(data[11+2*i])
		name, ok := glyphName(names, gid)
		if !ok {
			continue
		}
		code := firstCode + uint32(i)
		r := rune(code)
		if code2rune != nil {
			r = code2rune(code)
		}
		res[r] = name
	}
	return res, nil
}
