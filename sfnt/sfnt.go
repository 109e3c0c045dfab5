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

// Package sfnt reads and writes TrueType font files.
//
// Glyphs are identified by glyph name throughout.  Glyph IDs exist
// only in the binary form of a font; they are assigned from the glyph
// order when a font is written.
package sfnt

import (
	"fmt"

	"github.com/enstw/ensfont/sfnt/cmap"
	"github.com/enstw/ensfont/sfnt/funit"
	"github.com/enstw/ensfont/sfnt/glyf"
	"github.com/enstw/ensfont/sfnt/head"
	"github.com/enstw/ensfont/sfnt/hmtx"
	"github.com/enstw/ensfont/sfnt/maxp"
	"github.com/enstw/ensfont/sfnt/name"
	"github.com/enstw/ensfont/sfnt/os2"
	"github.com/enstw/ensfont/sfnt/post"
	"github.com/enstw/ensfont/sfnt/vmtx"
)

// Glyph is a single glyph together with its metrics.  Height and TSB
// are only meaningful if the font has vertical metrics.
type Glyph struct {
	Outline *glyf.Glyph
	Width   uint16
	LSB     int16
	Height  uint16
	TSB     int16
}

// Font is a decoded TrueType font.
type Font struct {
	Head *head.Info
	Hhea *hmtx.Info // per-glyph slices are unused; see Glyphs
	Vhea *vmtx.Info // nil if the font has no vertical metrics
	OS2  *os2.Info
	Name name.Table
	Post *post.Info
	Cmap cmap.Table

	// MaxpTTF carries the hinting environment limits from the "maxp"
	// table.  The outline-derived limits are recomputed when the font
	// is written.
	MaxpTTF *maxp.TTFInfo

	// GlyphOrder lists all glyph names in glyph ID order.
	GlyphOrder []string

	// Glyphs maps each glyph name to its outline and metrics.
	Glyphs map[string]*Glyph

	// Tables holds the remaining tables in their binary form.
	Tables map[string][]byte
}

// UnitsPerEm returns the number of font design units per em square.
func (f *Font) UnitsPerEm() uint16 {
	return f.Head.UnitsPerEm
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return len(f.GlyphOrder)
}

// HasGlyph reports whether the font contains a glyph with the given
// name.
func (f *Font) HasGlyph(glyphName string) bool {
	_, ok := f.Glyphs[glyphName]
	return ok
}

// AddGlyph appends a new glyph to the glyph order.  It is an error to
// add a name twice or to exceed the glyph count limit of the format.
func (f *Font) AddGlyph(glyphName string, g *Glyph) error {
	if f.HasGlyph(glyphName) {
		return fmt.Errorf("sfnt: glyph %q already present", glyphName)
	}
	if len(f.GlyphOrder) >= 65535 {
		return fmt.Errorf("sfnt: too many glyphs")
	}
	f.GlyphOrder = append(f.GlyphOrder, glyphName)
	f.Glyphs[glyphName] = g
	return nil
}

// GIDs assigns glyph IDs from the glyph order.
func (f *Font) GIDs() map[string]uint16 {
	gids := make(map[string]uint16, len(f.GlyphOrder))
	for i, glyphName := range f.GlyphOrder {
		gids[glyphName] = uint16(i)
	}
	return gids
}

// FontBBox returns the union of all glyph bounding boxes.
func (f *Font) FontBBox() funit.Rect {
	var bbox funit.Rect
	for _, g := range f.Glyphs {
		if g.Outline == nil || g.Outline.IsZero() {
			continue
		}
		bbox.Extend(g.Outline.Rect)
	}
	return bbox
}

// HasVerticalMetrics reports whether the font carries "vhea" and
// "vmtx" tables.
func (f *Font) HasVerticalMetrics() bool {
	return f.Vhea != nil
}
