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

import "github.com/enstw/ensfont/sfnt"

// checkMonospace verifies that all printable ASCII glyphs share a
// single advance width.  Terminal emulators assume a fixed cell
// width, so a deviation is reported as a warning, but it never aborts
// the merge.
func checkMonospace(f *sfnt.Font, report *Report, log Logger) {
	best, err := bestCmap(f)
	if err != nil {
		log.Printf("warning: no cmap, cannot verify monospace integrity")
		return
	}

	seen := make(map[uint16]bool)
	var widths []uint16
	for r := rune(0x20); r <= 0x7E; r++ {
		glyphName, ok := best[r]
		if !ok {
			continue
		}
		g := f.Glyphs[glyphName]
		if g == nil || seen[g.Width] {
			continue
		}
		seen[g.Width] = true
		widths = append(widths, g.Width)
	}
	report.ASCIIWidths = widths

	switch {
	case len(widths) > 1:
		log.Printf("warning: monospace integrity violation: "+
			"ASCII glyphs have %d different advance widths: %v",
			len(widths), widths)
	case len(widths) == 1:
		log.Printf("monospace integrity OK: all ASCII glyphs width = %d units",
			widths[0])
	default:
		log.Printf("warning: no ASCII glyphs found, cannot verify monospace integrity")
	}
}
