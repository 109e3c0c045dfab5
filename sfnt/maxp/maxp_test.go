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

package maxp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	cases := []*Info{
		{NumGlyphs: 1},
		{NumGlyphs: 65535},
		{
			NumGlyphs: 13343,
			TTF: &TTFInfo{
				MaxPoints:             212,
				MaxContours:           33,
				MaxCompositePoints:    80,
				MaxCompositeContours:  12,
				MaxZones:              2,
				MaxTwilightPoints:     16,
				MaxStorage:            64,
				MaxFunctionDefs:       100,
				MaxStackElements:      512,
				MaxSizeOfInstructions: 500,
				MaxComponentElements:  4,
				MaxComponentDepth:     3,
			},
		},
	}
	for i, in := range cases {
		out, err := Decode(in.Encode())
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(in, out); d != "" {
			t.Errorf("%d: info differs (-in +out):\n%s", i, d)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode([]byte{0, 0, 0x50, 0, 0, 0}); err == nil {
		t.Error("zero glyph count not detected")
	}
	if _, err := Decode([]byte{0, 2, 0, 0, 0, 1}); err == nil {
		t.Error("unknown version not detected")
	}
}
