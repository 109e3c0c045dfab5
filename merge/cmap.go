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

package merge

import (
	"github.com/enstw/ensfont/sfnt"
	"github.com/enstw/ensfont/sfnt/cmap"
)

// bestCmap returns a copy of the font's preferred Unicode mapping.
func bestCmap(f *sfnt.Font) (map[rune]string, error) {
	best := f.Cmap.Best()
	if best == nil {
		return nil, ErrMissingCmapSubtable
	}
	m := make(map[rune]string, len(best.Map))
	for r, glyphName := range best.Map {
		m[r] = glyphName
	}
	return m, nil
}

// ensureCmapCoverage makes sure the base font carries both a BMP
// subtable (format 4) and a full-Unicode subtable (format 12).  The
// wide subtable is required before any code point beyond the Basic
// Multilingual Plane can be mapped.
func ensureCmapCoverage(f *sfnt.Font, log Logger) error {
	best, err := bestCmap(f)
	if err != nil {
		return err
	}

	// Narrow and wide class alone are not enough: only formats 4 and
	// 12 accept new mappings, so those are the two we require.
	hasFormat4 := false
	hasFormat12 := false
	for _, sub := range f.Cmap {
		switch sub.Format {
		case 4:
			hasFormat4 = true
		case 12:
			hasFormat12 = true
		}
	}

	if !hasFormat4 {
		log.Printf("adding BMP cmap format 4 subtable")
		sub := &cmap.Subtable{
			Key:    cmap.Key{PlatformID: 3, EncodingID: 1},
			Format: 4,
			Map:    make(map[rune]string),
		}
		for r, glyphName := range best {
			if r <= 0xFFFF {
				sub.Map[r] = glyphName
			}
		}
		f.Cmap = append(f.Cmap, sub)
	}

	if !hasFormat12 {
		log.Printf("adding full-Unicode cmap format 12 subtable")
		sub := &cmap.Subtable{
			Key:    cmap.Key{PlatformID: 3, EncodingID: 10},
			Format: 12,
			Map:    best,
		}
		f.Cmap = append(f.Cmap, sub)
	}

	return nil
}

// updateCmap maps the code point to the glyph name in every Unicode
// subtable that can hold it.  Narrow subtables silently reject code
// points beyond the Basic Multilingual Plane.
func updateCmap(f *sfnt.Font, r rune, glyphName string) {
	for _, sub := range f.Cmap {
		if sub.Key.PlatformID != 0 && sub.Key.PlatformID != 3 {
			continue
		}
		sub.Set(r, glyphName)
	}
}
