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

package post

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeFormat3(t *testing.T) {
	in := &Info{
		ItalicAngle:        -11 << 16,
		UnderlinePosition:  -130,
		UnderlineThickness: 50,
		IsFixedPitch:       true,
		Names:              []string{".notdef", "A"},
	}
	data := in.Encode()
	if len(data) != 32 {
		t.Fatalf("format 3 table has %d bytes, expected 32", len(data))
	}

	out, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	// format 3 carries no glyph names
	if out.Names != nil {
		t.Errorf("unexpected names %v", out.Names)
	}
	in.Names = nil
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("info differs (-in +out):\n%s", d)
	}
}

func TestDecodeFormat2(t *testing.T) {
	body := []byte{
		0x00, 0x02, 0x00, 0x00, // version 2.0
		0, 0, 0, 0, // italic angle
		0xFF, 0x38, // underline position -200
		0x00, 0x32, // underline thickness 50
		0, 0, 0, 1, // isFixedPitch
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,

		0x00, 0x04, // numGlyphs
		0x00, 0x00, // .notdef
		0x00, 0x24, // A
		0x01, 0x02, // first custom name
		0x01, 0x03, // second custom name
		5, 'u', 'n', 'i', '4', 'E',
		7, 'm', 'e', 's', '_', 'u', 'n', 'i',
	}
	info, err := Decode(body)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{".notdef", "A", "uni4E", "mes_uni"}
	if d := cmp.Diff(want, info.Names); d != "" {
		t.Errorf("names differ:\n%s", d)
	}
	if !info.IsFixedPitch {
		t.Error("isFixedPitch lost")
	}
}

func TestDecodeFormat1(t *testing.T) {
	body := make([]byte, 32)
	body[1] = 1 // version 1.0
	info, err := Decode(body)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Names) != 258 {
		t.Fatalf("format 1 has %d names, expected 258", len(info.Names))
	}
	if info.Names[0] != ".notdef" || info.Names[257] != "dcroat" {
		t.Errorf("unexpected names %q, %q", info.Names[0], info.Names[257])
	}
}

func TestDecodeBadIndex(t *testing.T) {
	body := make([]byte, 32+2+2)
	body[1] = 2 // version 2.0
	body[33] = 1
	body[34] = 0x01
	body[35] = 0x02 // index 258 with no custom names
	if _, err := Decode(body); err == nil {
		t.Error("out of range name index not detected")
	}
}
