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

// Package glyf reads and writes the "glyf" and "loca" tables.
//
// Composite glyphs refer to their components by glyph name, so that
// glyphs can be moved between fonts without tracking glyph IDs.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
// https://docs.microsoft.com/en-us/typography/opentype/spec/loca
package glyf

import (
	"fmt"

	"github.com/enstw/ensfont/sfnt/fonterror"
)

// Glyphs contains the information from a "glyf" table, in glyph ID
// order.
type Glyphs []*Glyph

// Encoded contains the binary form of the "glyf" and "loca" tables.
type Encoded struct {
	GlyfData   []byte
	LocaData   []byte
	LocaFormat int16
}

// Decode converts the data from the "glyf" and "loca" tables into a
// slice of Glyphs.  The value for LocaFormat is specified in the
// indexToLocFormat entry of the "head" table.  The names slice gives
// the glyph name for each glyph ID and is used to resolve composite
// glyph components.
func Decode(enc *Encoded, names []string) (Glyphs, error) {
	offs, err := decodeLoca(enc)
	if err != nil {
		return nil, err
	}

	numGlyphs := len(offs) - 1
	if numGlyphs != len(names) {
		return nil, &fonterror.InvalidFontError{
			SubSystem: "sfnt/glyf",
			Reason: fmt.Sprintf("loca has %d glyphs, expected %d",
				numGlyphs, len(names)),
		}
	}

	gg := make(Glyphs, numGlyphs)
	for i := range gg {
		data := enc.GlyfData[offs[i]:offs[i+1]]
		g, err := decodeGlyph(data, names)
		if err != nil {
			return nil, err
		}
		gg[i] = g
	}

	return gg, nil
}

// Encode encodes the Glyphs into a "glyf" and "loca" table.  The gids
// map assigns a glyph ID to every glyph name.
func (gg Glyphs) Encode(gids map[string]uint16) (*Encoded, error) {
	n := len(gg)

	offs := make([]int, n+1)
	glyfData := make([]byte, 0, 16*n)
	for i, g := range gg {
		var err error
		glyfData, err = g.append(glyfData, gids)
		if err != nil {
			return nil, err
		}
		offs[i+1] = len(glyfData)
	}
	locaData, locaFormat := encodeLoca(offs)

	enc := &Encoded{
		GlyfData:   glyfData,
		LocaData:   locaData,
		LocaFormat: locaFormat,
	}

	return enc, nil
}
