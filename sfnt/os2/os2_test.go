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

package os2

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleInfo() *Info {
	return &Info{
		Version: 4,

		AvgCharWidth: 1000,
		WeightClass:  400,
		WidthClass:   5,
		Type:         0,

		SubscriptXSize:     650,
		SubscriptYSize:     600,
		SubscriptYOffset:   75,
		SuperscriptXSize:   650,
		SuperscriptYSize:   600,
		SuperscriptYOffset: 350,
		StrikeoutSize:      50,
		StrikeoutPosition:  250,

		Panose: [10]byte{2, 0, 6, 9, 0, 0, 0, 0, 0, 0},

		UnicodeRange: [4]uint32{0x2000006B, 0x0A80, 0, 0},
		VendID:       [4]byte{'e', 'n', 's', 't'},
		Selection:    SelectionRegular | SelectionUseTypoMetrics,

		FirstCharIndex: 0x20,
		LastCharIndex:  0xFFFF,

		TypoAscender:  1000,
		TypoDescender: -200,
		TypoLineGap:   0,
		WinAscent:     1000,
		WinDescent:    200,

		CodePageRange: [2]uint32{0x00100001, 0},

		XHeight:   530,
		CapHeight: 720,
		BreakChar: 0x20,
	}
}

func TestRoundTrip(t *testing.T) {
	in := sampleInfo()
	data := in.Encode()
	if len(data) != 96 {
		t.Fatalf("version 4 table has %d bytes, expected 96", len(data))
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("info differs (-in +out):\n%s", d)
	}
}

func TestVersionPreserved(t *testing.T) {
	for _, version := range []uint16{1, 2, 3, 4, 5} {
		in := sampleInfo()
		in.Version = version
		out, err := Decode(in.Encode())
		if err != nil {
			t.Fatal(err)
		}
		if out.Version != version {
			t.Errorf("version %d became %d", version, out.Version)
		}
	}
}

func TestUseTypoMetrics(t *testing.T) {
	in := sampleInfo()
	if !in.UseTypoMetrics() {
		t.Error("USE_TYPO_METRICS bit not reported")
	}

	in.Version = 3
	out, err := Decode(in.Encode())
	if err != nil {
		t.Fatal(err)
	}
	// bits 7 to 15 are reserved before version 4
	if out.UseTypoMetrics() {
		t.Error("reserved selection bit kept in a version 3 table")
	}
}
