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
	"fmt"

	"github.com/enstw/ensfont/sfnt"
	"github.com/enstw/ensfont/sfnt/funit"
)

// normalizeUPM brings the donor onto the base's design grid.  It must
// run before any glyph is copied; scaling after transplantation would
// leave already-copied glyphs at the wrong size.
//
// A donor with variation tables cannot be rescaled, because the
// variation deltas would no longer match the scaled outlines.  That
// case is fatal for the merge.
func normalizeUPM(base, donor *sfnt.Font, log Logger) error {
	baseUPM := base.UnitsPerEm()
	donorUPM := donor.UnitsPerEm()
	if baseUPM == donorUPM {
		log.Printf("UPM match: %d units/em", baseUPM)
		return nil
	}

	for _, tableName := range []string{"fvar", "gvar", "avar"} {
		if _, ok := donor.Tables[tableName]; ok {
			return fmt.Errorf("%w: donor carries a %q table",
				ErrScalingUnavailable, tableName)
		}
	}

	log.Printf("UPM mismatch: base=%d, donor=%d, scaling donor",
		baseUPM, donorUPM)
	q := float64(baseUPM) / float64(donorUPM)
	scaleFont(donor, q)
	donor.Head.UnitsPerEm = baseUPM
	return nil
}

// scaleFont scales all outlines and metrics of the font by q.
func scaleFont(f *sfnt.Font, q float64) {
	for _, g := range f.Glyphs {
		if g.Outline != nil {
			g.Outline.Scale(q)
		}
		g.Width = funit.RoundU(g.Width, q)
		g.LSB = roundI16(g.LSB, q)
		g.Height = funit.RoundU(g.Height, q)
		g.TSB = roundI16(g.TSB, q)
	}

	f.Head.FontBBox = f.Head.FontBBox.Scale(q)

	hhea := f.Hhea
	hhea.Ascent = funit.Round(hhea.Ascent, q)
	hhea.Descent = funit.Round(hhea.Descent, q)
	hhea.LineGap = funit.Round(hhea.LineGap, q)
	hhea.CaretOffset = roundI16(hhea.CaretOffset, q)

	if vhea := f.Vhea; vhea != nil {
		vhea.Ascent = funit.Round(vhea.Ascent, q)
		vhea.Descent = funit.Round(vhea.Descent, q)
		vhea.LineGap = funit.Round(vhea.LineGap, q)
		vhea.CaretOffset = roundI16(vhea.CaretOffset, q)
	}

	if os2Info := f.OS2; os2Info != nil {
		os2Info.AvgCharWidth = roundI16(os2Info.AvgCharWidth, q)
		os2Info.SubscriptXSize = roundI16(os2Info.SubscriptXSize, q)
		os2Info.SubscriptYSize = roundI16(os2Info.SubscriptYSize, q)
		os2Info.SubscriptXOffset = roundI16(os2Info.SubscriptXOffset, q)
		os2Info.SubscriptYOffset = roundI16(os2Info.SubscriptYOffset, q)
		os2Info.SuperscriptXSize = roundI16(os2Info.SuperscriptXSize, q)
		os2Info.SuperscriptYSize = roundI16(os2Info.SuperscriptYSize, q)
		os2Info.SuperscriptXOffset = roundI16(os2Info.SuperscriptXOffset, q)
		os2Info.SuperscriptYOffset = roundI16(os2Info.SuperscriptYOffset, q)
		os2Info.StrikeoutSize = roundI16(os2Info.StrikeoutSize, q)
		os2Info.StrikeoutPosition = roundI16(os2Info.StrikeoutPosition, q)
		os2Info.TypoAscender = funit.Round(os2Info.TypoAscender, q)
		os2Info.TypoDescender = funit.Round(os2Info.TypoDescender, q)
		os2Info.TypoLineGap = funit.Round(os2Info.TypoLineGap, q)
		os2Info.WinAscent = funit.RoundU(os2Info.WinAscent, q)
		os2Info.WinDescent = funit.RoundU(os2Info.WinDescent, q)
		os2Info.XHeight = funit.Round(os2Info.XHeight, q)
		os2Info.CapHeight = funit.Round(os2Info.CapHeight, q)
	}

	if f.Post != nil {
		f.Post.UnderlinePosition = roundI16(f.Post.UnderlinePosition, q)
		f.Post.UnderlineThickness = roundI16(f.Post.UnderlineThickness, q)
	}

	// Control values are distances in design units, so they scale too.
	if cvt, ok := f.Tables["cvt "]; ok {
		scaled := make([]byte, len(cvt))
		copy(scaled, cvt)
		for i := 0; i+1 < len(cvt); i += 2 {
			v := roundI16(int16(cvt[i])<<8|int16(cvt[i+1]), q)
			scaled[i] = byte(uint16(v) >> 8)
			scaled[i+1] = byte(v)
		}
		f.Tables["cvt "] = scaled
	}
}

func roundI16(x int16, q float64) int16 {
	return int16(funit.Round(funit.Int16(x), q))
}
