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

// Package merge combines a CJK base font with a donor font into a
// single monospace terminal font.
//
// The base font keeps every code point it maps; the donor only fills
// gaps.  Donor glyphs are copied under new names, the metrics tables
// are synchronized to the donor's terminal rhythm, and the name table
// is rewritten for the merged identity.
package merge

import (
	"errors"
	"fmt"

	"github.com/enstw/ensfont/sfnt"
)

// Style selects one of the four font styles.
type Style int

const (
	StyleRegular Style = iota
	StyleBold
	StyleItalic
	StyleBoldItalic
)

// String returns the subfamily name for the style.
func (s Style) String() string {
	switch s {
	case StyleRegular:
		return "Regular"
	case StyleBold:
		return "Bold"
	case StyleItalic:
		return "Italic"
	case StyleBoldItalic:
		return "Bold Italic"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle converts a style label to a Style.
func ParseStyle(label string) (Style, error) {
	switch label {
	case "Regular":
		return StyleRegular, nil
	case "Bold":
		return StyleBold, nil
	case "Italic":
		return StyleItalic, nil
	case "Bold Italic", "BoldItalic":
		return StyleBoldItalic, nil
	}
	return 0, fmt.Errorf("merge: unknown style %q", label)
}

// Options describes one style's merge run.
type Options struct {
	Style        Style
	Version      string // packaging version, e.g. "1.2.0"
	BaseVersion  string // LXGW WenKai upstream tag
	DonorVersion string // Nerd Fonts upstream tag
}

// Logger receives progress and warning messages from a merge run.
// *log.Logger satisfies this interface.
type Logger interface {
	Printf(format string, v ...interface{})
}

type discardLogger struct{}

func (discardLogger) Printf(format string, v ...interface{}) {}

// Report summarizes a merge run.
type Report struct {
	// Transplanted is the number of code points copied from the donor.
	Transplanted int

	// Failed is the number of donor code points that could not be
	// copied.  These are logged and skipped.
	Failed int

	// ASCIIWidths lists the distinct advance widths of the printable
	// ASCII glyphs in the merged font.  More than one entry means the
	// monospace check failed.
	ASCIIWidths []uint16
}

// Errors that abort a merge run.
var (
	// ErrMissingCmapSubtable indicates that a font has no usable
	// Unicode character map.
	ErrMissingCmapSubtable = errors.New("no usable Unicode cmap subtable")

	// ErrScalingUnavailable indicates that the donor needs rescaling
	// to the base's design grid but cannot be rescaled.
	ErrScalingUnavailable = errors.New("donor cannot be rescaled")
)

// Merge runs the full pipeline for one style, mutating base in place.
// The donor font is also modified if its design grid has to be
// rescaled; neither font should be reused after the call.
func Merge(base, donor *sfnt.Font, opt *Options, log Logger) (*Report, error) {
	if log == nil {
		log = discardLogger{}
	}
	report := &Report{}

	err := normalizeUPM(base, donor, log)
	if err != nil {
		return nil, err
	}

	err = ensureCmapCoverage(base, log)
	if err != nil {
		return nil, err
	}

	donorMap, err := bestCmap(donor)
	if err != nil {
		return nil, fmt.Errorf("donor: %w", err)
	}
	baseMap, err := bestCmap(base)
	if err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}

	added := transplant(base, donor, donorMap, baseMap, report, log)
	log.Printf("%d glyphs transplanted, %d failed",
		report.Transplanted, report.Failed)

	reconcileGlyphOrder(base, log)

	err = syncMetrics(base, donor, log)
	if err != nil {
		return nil, err
	}

	if base.HasVerticalMetrics() {
		rebuildVerticalMetrics(base, added, log)
	}

	setMetadata(base, opt)

	checkMonospace(base, report, log)

	return report, nil
}
