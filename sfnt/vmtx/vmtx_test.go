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

package vmtx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	in := &Info{
		Heights: []uint16{1000, 1000, 1000},
		TSB:     []int16{120, 0, -30},

		Ascent:  500,
		Descent: -500,

		CaretSlopeRise: 0,
		CaretSlopeRun:  1,
	}

	vheaData, vmtxData := in.Encode(nil)
	if len(vheaData) != 36 {
		t.Fatalf("vhea has %d bytes, expected 36", len(vheaData))
	}
	// every glyph gets a long metric
	if len(vmtxData) != 4*len(in.Heights) {
		t.Errorf("vmtx has %d bytes, expected %d", len(vmtxData), 4*len(in.Heights))
	}

	out, err := Decode(vheaData, vmtxData, len(in.Heights))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("info differs (-in +out):\n%s", d)
	}
}

func TestDecodeCompressed(t *testing.T) {
	// vhea with numOfLongVerMetrics = 1
	vheaData := make([]byte, 36)
	vheaData[1] = 0x01 // version 1.0
	vheaData[35] = 1
	vmtxData := []byte{
		0x03, 0xE8, 0x00, 0x10, // height 1000, tsb 16
		0x00, 0x20, // tsb 32
		0xFF, 0xF0, // tsb -16
	}
	out, err := Decode(vheaData, vmtxData, 3)
	if err != nil {
		t.Fatal(err)
	}
	wantHeights := []uint16{1000, 1000, 1000}
	wantTSB := []int16{16, 32, -16}
	if d := cmp.Diff(wantHeights, out.Heights); d != "" {
		t.Errorf("heights differ:\n%s", d)
	}
	if d := cmp.Diff(wantTSB, out.TSB); d != "" {
		t.Errorf("side bearings differ:\n%s", d)
	}
}
