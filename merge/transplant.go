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
	"sort"

	"github.com/enstw/ensfont/sfnt"
	"github.com/enstw/ensfont/sfnt/glyf"
)

// Glyph name prefixes for transplanted glyphs.  Top-level glyphs are
// named after their code point with a donor-specific prefix, so that a
// second donor could never collide with the first.  Composite child
// glyphs have no code point and keep their original name behind an
// internal-use prefix instead.
const (
	donorPrefix     = "mes_"
	componentPrefix = "_ens_"
)

// transplantName returns the destination name for a donor glyph
// mapped from the given code point.
func transplantName(r rune) string {
	if r <= 0xFFFF {
		return fmt.Sprintf("%suni%04X", donorPrefix, r)
	}
	return fmt.Sprintf("%su%06X", donorPrefix, r)
}

// transplant copies every code point of the donor's resolved cmap
// that the base does not already map.  Code points the base mapped
// before the merge keep their glyphs; the donor only fills gaps.
// Per-glyph failures are logged and skipped.
//
// The returned set holds the names of all glyphs added to the base.
func transplant(base, donor *sfnt.Font, donorMap, baseMap map[rune]string, report *Report, log Logger) map[string]bool {
	added := make(map[string]bool)

	codepoints := make([]rune, 0, len(donorMap))
	for r := range donorMap {
		codepoints = append(codepoints, r)
	}
	sort.Slice(codepoints, func(i, j int) bool {
		return codepoints[i] < codepoints[j]
	})

	for _, r := range codepoints {
		if _, ok := baseMap[r]; ok {
			continue
		}
		srcName := donorMap[r]
		dstName := transplantName(r)
		err := copyGlyph(base, donor, srcName, dstName, added)
		if err != nil {
			log.Printf("warning: could not copy U+%04X (%s): %v",
				r, srcName, err)
			report.Failed++
			continue
		}
		updateCmap(base, r, dstName)
		report.Transplanted++
	}

	return added
}

// copyGlyph deep-copies a donor glyph into the base under dstName.
// Composite glyphs are handled recursively: the components are copied
// first, behind the component prefix, and the copy's component
// references are rewritten to the new names.
//
// A name that was already copied, or that the base already owns, is
// reused as is.  This deduplicates components shared between glyphs
// and guarantees termination on (malformed) cyclic component graphs.
func copyGlyph(base, donor *sfnt.Font, srcName, dstName string, copied map[string]bool) error {
	if copied[dstName] || base.HasGlyph(dstName) {
		return nil
	}

	src := donor.Glyphs[srcName]
	if src == nil {
		return fmt.Errorf("donor has no glyph %q", srcName)
	}

	// Mark the name before recursing into components, so that a cycle
	// through this glyph resolves to the entry being built.
	copied[dstName] = true

	g := &sfnt.Glyph{
		Width:  src.Width,
		LSB:    src.LSB,
		Height: src.Height,
		TSB:    src.TSB,
	}
	if src.Outline != nil {
		outline := src.Outline.Clone()
		if comp, ok := outline.Data.(*glyf.CompositeGlyph); ok {
			for i := range comp.Components {
				childSrc := comp.Components[i].Name
				childDst := componentPrefix + childSrc
				err := copyGlyph(base, donor, childSrc, childDst, copied)
				if err != nil {
					delete(copied, dstName)
					return fmt.Errorf("component %q: %w", childSrc, err)
				}
				comp.Components[i].Name = childDst
			}
		}
		g.Outline = outline
	}

	err := base.AddGlyph(dstName, g)
	if err != nil {
		delete(copied, dstName)
		return err
	}
	return nil
}

// reconcileGlyphOrder appends any glyph whose name is missing from
// the glyph order.  Existing entries are never reordered or dropped.
func reconcileGlyphOrder(f *sfnt.Font, log Logger) {
	inOrder := make(map[string]bool, len(f.GlyphOrder))
	for _, glyphName := range f.GlyphOrder {
		inOrder[glyphName] = true
	}

	var missing []string
	for glyphName := range f.Glyphs {
		if !inOrder[glyphName] {
			missing = append(missing, glyphName)
		}
	}
	if len(missing) == 0 {
		return
	}
	sort.Strings(missing)
	log.Printf("adding %d glyphs to the glyph order", len(missing))
	f.GlyphOrder = append(f.GlyphOrder, missing...)
}
