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
	"errors"

	"github.com/enstw/ensfont/sfnt"
	"github.com/enstw/ensfont/sfnt/os2"
)

// syncMetrics copies the donor's line metrics into the base.  The
// donor defines the monospace rhythm terminal emulators expect; the
// base's CJK glyphs render double-width on top of that rhythm, which
// needs no metric adjustment.
//
// Some consumers clip or overlap lines unless
//
//	hhea.ascent  == usWinAscent  ==  sTypoAscender
//	hhea.descent == -usWinDescent ==  sTypoDescender
//
// hold, so all six fields are written from the same source.
func syncMetrics(base, donor *sfnt.Font, log Logger) error {
	if base.OS2 == nil || donor.OS2 == nil {
		return errors.New("merge: OS/2 table missing")
	}

	base.OS2.TypoAscender = donor.OS2.TypoAscender
	base.OS2.TypoDescender = donor.OS2.TypoDescender
	base.OS2.TypoLineGap = donor.OS2.TypoLineGap

	base.OS2.WinAscent = donor.OS2.WinAscent
	base.OS2.WinDescent = donor.OS2.WinDescent

	base.Hhea.Ascent = donor.Hhea.Ascent
	base.Hhea.Descent = donor.Hhea.Descent
	base.Hhea.LineGap = donor.Hhea.LineGap

	// Prefer the typographic metrics over the legacy Windows ones.
	base.OS2.Selection |= os2.SelectionUseTypoMetrics

	// Installable embedding, required by the OFL.
	base.OS2.Type = 0

	base.OS2.XHeight = donor.OS2.XHeight
	base.OS2.CapHeight = donor.OS2.CapHeight

	// Declared Unicode coverage of the merged font is the union of
	// both inputs.
	for i := range base.OS2.UnicodeRange {
		base.OS2.UnicodeRange[i] |= donor.OS2.UnicodeRange[i]
	}

	log.Printf("metrics: ascender=%d, descender=%d, lineGap=%d",
		base.OS2.TypoAscender, base.OS2.TypoDescender, base.OS2.TypoLineGap)
	return nil
}

// rebuildVerticalMetrics synthesizes vertical metrics for the glyphs
// in added, which were copied from a donor without vertical tables.
// Every glyph gets the font's uniform maximum advance height; the top
// side bearing positions the outline below the vertical ascent, and
// is zero for glyphs without an outline.
func rebuildVerticalMetrics(base *sfnt.Font, added map[string]bool, log Logger) {
	var advHeight uint16
	for glyphName, g := range base.Glyphs {
		if added[glyphName] {
			continue
		}
		if g.Height > advHeight {
			advHeight = g.Height
		}
	}
	ascent := int16(base.Vhea.Ascent)

	rebuilt := 0
	for glyphName := range added {
		g := base.Glyphs[glyphName]
		tsb := int16(0)
		if g.Outline != nil && !g.Outline.IsZero() {
			tsb = ascent - int16(g.Outline.Rect.URy)
		}
		g.Height = advHeight
		g.TSB = tsb
		rebuilt++
	}

	log.Printf("vmtx rebuilt: %d new entries, total %d (advanceHeight=%d)",
		rebuilt, base.NumGlyphs(), advHeight)
}
