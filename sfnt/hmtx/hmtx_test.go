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

package hmtx

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/enstw/ensfont/sfnt/funit"
)

func TestRoundTrip(t *testing.T) {
	in := &Info{
		Widths: []uint16{500, 1000, 1000, 1000, 1000},
		LSB:    []int16{50, -20, 0, 10, 10},

		Ascent:  800,
		Descent: -200,
		LineGap: 90,

		CaretSlopeRise: 1,
		CaretSlopeRun:  0,
	}

	hheaData, hmtxData := in.Encode(nil)
	if len(hheaData) != 36 {
		t.Fatalf("hhea has %d bytes, expected 36", len(hheaData))
	}
	// the last four advance widths are equal, so only the first two
	// long metrics are stored
	if expect := 4*2 + 2*3; len(hmtxData) != expect {
		t.Errorf("hmtx has %d bytes, expected %d", len(hmtxData), expect)
	}

	out, err := Decode(hheaData, hmtxData, len(in.Widths))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("info differs (-in +out):\n%s", d)
	}
}

func TestAggregates(t *testing.T) {
	info := &Info{
		Widths: []uint16{600, 1200, 0},
		LSB:    []int16{30, -10, 0},
		Ascent: 820,
	}
	extents := []funit.Rect{
		{LLx: 30, LLy: 0, URx: 580, URy: 700},
		{LLx: -10, LLy: -150, URx: 1100, URy: 800},
		{}, // no outline
	}

	hheaData, _ := info.Encode(extents)

	if max := uint16(hheaData[10])<<8 | uint16(hheaData[11]); max != 1200 {
		t.Errorf("advanceWidthMax = %d, expected 1200", max)
	}
	if minLSB := int16(hheaData[12])<<8 | int16(hheaData[13]); minLSB != -10 {
		t.Errorf("minLeftSideBearing = %d, expected -10", minLSB)
	}
	if minRSB := int16(hheaData[14])<<8 | int16(hheaData[15]); minRSB != 20 {
		t.Errorf("minRightSideBearing = %d, expected 20", minRSB)
	}
	if xMax := int16(hheaData[16])<<8 | int16(hheaData[17]); xMax != 1100 {
		t.Errorf("xMaxExtent = %d, expected 1100", xMax)
	}
}

func TestDecodeShort(t *testing.T) {
	info := &Info{
		Widths: []uint16{500, 600},
		LSB:    []int16{0, 0},
	}
	hheaData, hmtxData := info.Encode(nil)
	if _, err := Decode(hheaData, hmtxData[:len(hmtxData)-1], 2); err == nil {
		t.Error("truncated hmtx not detected")
	}
	if _, err := Decode(hheaData, hmtxData, 3); err == nil {
		t.Error("missing glyph metrics not detected")
	}
}
