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

package head

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/enstw/ensfont/sfnt/funit"
)

func TestRoundTrip(t *testing.T) {
	in := &Info{
		FontRevision:   0x00015000, // 1.3125
		Flags:          0x200B,
		UnitsPerEm:     1000,
		Created:        time.Date(2021, 3, 14, 9, 26, 53, 0, time.UTC),
		Modified:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		FontBBox:       funit.Rect{LLx: -120, LLy: -250, URx: 1020, URy: 900},
		MacStyle:       MacStyleBold | MacStyleItalic,
		LowestRecPPEM:  7,
		DirectionHint:  2,
		HasLongOffsets: true,
	}

	data := in.Encode()
	if len(data) != 54 {
		t.Fatalf("head has %d bytes, expected 54", len(data))
	}

	out, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	sameInstant := cmp.Comparer(func(a, b time.Time) bool {
		return a.Equal(b)
	})
	if d := cmp.Diff(in, out, sameInstant); d != "" {
		t.Errorf("info differs (-in +out):\n%s", d)
	}
}

func TestFlagsPreserved(t *testing.T) {
	// all flag bits survive a decode/encode cycle, including the ones
	// this library does not interpret
	in := &Info{
		FontRevision: 0x00010000,
		Flags:        0x5A5A,
		UnitsPerEm:   2048,
		MacStyle:     0x007F,
	}
	out, err := Decode(in.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if out.Flags != in.Flags {
		t.Errorf("flags = %04x, expected %04x", out.Flags, in.Flags)
	}
	if out.MacStyle != in.MacStyle {
		t.Errorf("macStyle = %04x, expected %04x", out.MacStyle, in.MacStyle)
	}
}

func TestDecodeInvalid(t *testing.T) {
	info := &Info{FontRevision: 1 << 16, UnitsPerEm: 1000}
	data := info.Encode()
	data[13] = 0xAA // corrupt the magic number
	if _, err := Decode(data); err == nil {
		t.Error("invalid magic number not detected")
	}
}

func TestVersionString(t *testing.T) {
	if s := Version(0x00015000).String(); s != "1.312" {
		t.Errorf("version string %q", s)
	}
}
