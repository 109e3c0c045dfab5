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

package sfnt

import (
	"fmt"
	"io"
	"os"

	"github.com/enstw/ensfont/sfnt/funit"
	"github.com/enstw/ensfont/sfnt/glyf"
	"github.com/enstw/ensfont/sfnt/maxp"
	"github.com/enstw/ensfont/sfnt/post"
	"github.com/enstw/ensfont/sfnt/table"
)

// WriteFile writes the font to the named file.
func (f *Font) WriteFile(fname string) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	_, err = f.Write(fd)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// Write writes the font in TrueType format.  Glyph IDs are assigned
// from the glyph order, and the outline-derived fields of the "head",
// "hhea" and "maxp" tables are recomputed.
func (f *Font) Write(w io.Writer) (int64, error) {
	numGlyphs := len(f.GlyphOrder)
	if numGlyphs < 1 || numGlyphs > 65535 {
		return 0, fmt.Errorf("sfnt: invalid number of glyphs %d", numGlyphs)
	}

	gids := f.GIDs()

	outlines := make(glyf.Glyphs, numGlyphs)
	extents := make([]funit.Rect, numGlyphs)
	widths := make([]uint16, numGlyphs)
	lsbs := make([]int16, numGlyphs)
	for i, glyphName := range f.GlyphOrder {
		g := f.Glyphs[glyphName]
		if g == nil {
			return 0, fmt.Errorf("sfnt: missing glyph %q", glyphName)
		}
		outlines[i] = g.Outline
		if g.Outline != nil {
			extents[i] = g.Outline.Rect
		}
		widths[i] = g.Width
		lsbs[i] = g.LSB
	}

	enc, err := outlines.Encode(gids)
	if err != nil {
		return 0, err
	}

	tables := make(map[string][]byte, len(f.Tables)+12)
	for tableName, data := range f.Tables {
		tables[tableName] = data
	}

	headInfo := *f.Head
	headInfo.HasLongOffsets = enc.LocaFormat == 1
	headInfo.FontBBox = f.FontBBox()
	tables["head"] = headInfo.Encode()
	tables["glyf"] = enc.GlyfData
	tables["loca"] = enc.LocaData

	maxpInfo := &maxp.Info{
		NumGlyphs: numGlyphs,
		TTF:       f.outlineLimits(),
	}
	tables["maxp"] = maxpInfo.Encode()

	hmtxInfo := *f.Hhea
	hmtxInfo.Widths = widths
	hmtxInfo.LSB = lsbs
	tables["hhea"], tables["hmtx"] = hmtxInfo.Encode(extents)

	if f.Vhea != nil {
		vmtxInfo := *f.Vhea
		vmtxInfo.Heights = make([]uint16, numGlyphs)
		vmtxInfo.TSB = make([]int16, numGlyphs)
		for i, glyphName := range f.GlyphOrder {
			g := f.Glyphs[glyphName]
			vmtxInfo.Heights[i] = g.Height
			vmtxInfo.TSB[i] = g.TSB
		}
		tables["vhea"], tables["vmtx"] = vmtxInfo.Encode(extents)
	}

	if len(f.Cmap) > 0 {
		cmapData, err := f.Cmap.Encode(gids)
		if err != nil {
			return 0, err
		}
		tables["cmap"] = cmapData
	}
	if f.OS2 != nil {
		tables["OS/2"] = f.OS2.Encode()
	}
	if len(f.Name) > 0 {
		tables["name"] = f.Name.Encode()
	}
	postInfo := f.Post
	if postInfo == nil {
		postInfo = &post.Info{}
	}
	tables["post"] = postInfo.Encode()

	return table.Write(w, table.ScalerTypeTrueType, tables)
}

// outlineLimits computes the outline-derived fields of the "maxp"
// table.  The hinting environment fields are carried over from the
// font the glyphs were read from.
func (f *Font) outlineLimits() *maxp.TTFInfo {
	limits := &maxp.TTFInfo{}
	if f.MaxpTTF != nil {
		*limits = *f.MaxpTTF
	}
	limits.MaxPoints = 0
	limits.MaxContours = 0
	limits.MaxCompositePoints = 0
	limits.MaxCompositeContours = 0
	limits.MaxSizeOfInstructions = 0
	limits.MaxComponentElements = 0
	limits.MaxComponentDepth = 0
	if limits.MaxZones < 1 {
		limits.MaxZones = 1
	}

	memo := make(map[string]glyphStats)
	for glyphName, g := range f.Glyphs {
		if g.Outline == nil {
			continue
		}
		switch d := g.Outline.Data.(type) {
		case *glyf.SimpleGlyph:
			numPoints := 0
			for _, cc := range d.Contours {
				numPoints += len(cc)
			}
			limits.MaxPoints = maxU16(limits.MaxPoints, numPoints)
			limits.MaxContours = maxU16(limits.MaxContours, len(d.Contours))
			limits.MaxSizeOfInstructions = maxU16(
				limits.MaxSizeOfInstructions, len(d.Instructions))
		case *glyf.CompositeGlyph:
			limits.MaxComponentElements = maxU16(
				limits.MaxComponentElements, len(d.Components))
			limits.MaxSizeOfInstructions = maxU16(
				limits.MaxSizeOfInstructions, len(d.Instructions))
			stats := f.resolveGlyph(glyphName, memo, nil)
			limits.MaxCompositePoints = maxU16(
				limits.MaxCompositePoints, stats.points)
			limits.MaxCompositeContours = maxU16(
				limits.MaxCompositeContours, stats.contours)
			limits.MaxComponentDepth = maxU16(
				limits.MaxComponentDepth, stats.depth)
		}
	}
	return limits
}

type glyphStats struct {
	points   int
	contours int
	depth    int
}

// resolveGlyph computes the fully resolved point and contour counts of
// a glyph.  Component cycles terminate the recursion; such fonts are
// malformed, but the counts still stay finite.
func (f *Font) resolveGlyph(glyphName string, memo map[string]glyphStats, active map[string]bool) glyphStats {
	if stats, ok := memo[glyphName]; ok {
		return stats
	}
	if active[glyphName] {
		return glyphStats{}
	}

	var stats glyphStats
	g := f.Glyphs[glyphName]
	if g == nil || g.Outline == nil {
		memo[glyphName] = stats
		return stats
	}
	switch d := g.Outline.Data.(type) {
	case *glyf.SimpleGlyph:
		for _, cc := range d.Contours {
			stats.points += len(cc)
		}
		stats.contours = len(d.Contours)
	case *glyf.CompositeGlyph:
		if active == nil {
			active = make(map[string]bool)
		}
		active[glyphName] = true
		for _, comp := range d.Components {
			sub := f.resolveGlyph(comp.Name, memo, active)
			stats.points += sub.points
			stats.contours += sub.contours
			if sub.depth+1 > stats.depth {
				stats.depth = sub.depth + 1
			}
		}
		delete(active, glyphName)
	}
	memo[glyphName] = stats
	return stats
}

func maxU16(a uint16, b int) uint16 {
	if b > int(a) {
		if b > 65535 {
			return 65535
		}
		return uint16(b)
	}
	return a
}
