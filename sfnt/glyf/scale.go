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

package glyf

import "github.com/enstw/ensfont/sfnt/funit"

// Scale scales the glyph outline by the factor q, in place.  For
// composite glyphs only the placement offsets are scaled; scale and
// rotation entries of component transformations are ratios and do not
// change with the units per em.
func (g *Glyph) Scale(q float64) {
	if g == nil {
		return
	}

	g.Rect = g.Rect.Scale(q)

	switch d := g.Data.(type) {
	case *SimpleGlyph:
		for _, cc := range d.Contours {
			for i := range cc {
				cc[i].X = funit.Round(cc[i].X, q)
				cc[i].Y = funit.Round(cc[i].Y, q)
			}
		}
	case *CompositeGlyph:
		for i := range d.Components {
			comp := &d.Components[i]
			dx, dy, ok := comp.Offset()
			if !ok {
				continue
			}
			comp.SetOffset(funit.Round(dx, q), funit.Round(dy, q))
		}
	}
}
