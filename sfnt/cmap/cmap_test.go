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

package cmap

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testNames simulates a font with numbered glyph names.
func testNames(n int) ([]string, map[string]uint16) {
	names := make([]string, n)
	gids := make(map[string]uint16, n)
	names[0] = ".notdef"
	gids[".notdef"] = 0
	for i := 1; i < n; i++ {
		name := fmt.Sprintf("g%05d", i)
		names[i] = name
		gids[name] = uint16(i)
	}
	return names, gids
}

func TestFormat4RoundTrip(t *testing.T) {
	names, gids := testNames(500)

	in := map[rune]string{
		0x20: names[3],
		0x21: names[4],
		0x22: names[5],
		0x41: names[100],
		0x42: names[90],
		0x43: names[400],
	}
	for r := rune(0x3041); r <= 0x3096; r++ {
		in[r] = names[200+int(r-0x3041)]
	}

	data, err := encodeFormat4(in, 0, gids)
	if err != nil {
		t.Fatal(err)
	}
	out, err := decodeFormat4(data, names, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("mapping differs (-in +out):\n%s", d)
	}
}

func TestFormat4DropsWideCodes(t *testing.T) {
	names, gids := testNames(10)
	in := map[rune]string{
		0x41:    names[1],
		0x2_0000: names[2],
	}
	data, err := encodeFormat4(in, 0, gids)
	if err != nil {
		t.Fatal(err)
	}
	out, err := decodeFormat4(data, names, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0x41] != names[1] {
		t.Errorf("unexpected mapping %v", out)
	}
}

func TestSegmentGraph(t *testing.T) {
	ms := makeSegments{0x41: 1, 0x42: 2, 0x43: 3}

	// Edges must be appended to the slice passed in, which the
	// shortest path search reuses between vertices.
	prefix := []*segment{{first: 1, last: 2}}
	ee := ms.AppendEdges(prefix, 0)
	if len(ee) < 2 || ee[0] != prefix[0] {
		t.Fatalf("got %d edges, prefix kept: %t", len(ee), len(ee) > 0 && ee[0] == prefix[0])
	}

	for _, e := range ee[1:] {
		if got := ms.To(0, e); got != uint32(e.last)+1 {
			t.Errorf("edge %d-%d: endpoint %d", e.first, e.last, got)
		}
		if got := ms.Length(0, e); got < 4 {
			t.Errorf("edge %d-%d: length %d", e.first, e.last, got)
		}
	}
}

func TestFormat12RoundTrip(t *testing.T) {
	names, gids := testNames(70000/2)

	in := map[rune]string{}
	for r := rune(0x2_0000); r < 0x2_0100; r++ {
		in[r] = names[1000+int(r-0x2_0000)]
	}
	in[0x41] = names[7]
	in[0x1_F600] = names[9]

	data, err := encodeFormat12(in, 0, gids)
	if err != nil {
		t.Fatal(err)
	}
	out, err := decodeFormat12(data, names)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("mapping differs (-in +out):\n%s", d)
	}
}

func TestSubtableSet(t *testing.T) {
	f4 := &Subtable{Key: Key{3, 1, 0}, Format: 4}
	if !f4.Set(0x41, "A") {
		t.Error("format 4 refused a BMP code point")
	}
	if f4.Set(0x2_0000, "x") {
		t.Error("format 4 accepted a code point beyond the BMP")
	}

	f12 := &Subtable{Key: Key{3, 10, 0}, Format: 12}
	if !f12.Set(0x2_0000, "x") {
		t.Error("format 12 refused a wide code point")
	}

	f6 := &Subtable{Key: Key{0, 3, 0}, Format: 6}
	if f6.Set(0x41, "A") {
		t.Error("format 6 accepted a new mapping")
	}
}

func TestClasses(t *testing.T) {
	cases := []struct {
		format uint16
		class  Class
	}{
		{0, ClassNarrow},
		{4, ClassNarrow},
		{6, ClassNarrow},
		{12, ClassWide},
		{13, ClassWide},
		{2, ClassOther},
		{14, ClassOther},
	}
	for _, test := range cases {
		s := &Subtable{Format: test.format}
		if got := s.Class(); got != test.class {
			t.Errorf("format %d: class %d, expected %d",
				test.format, got, test.class)
		}
	}
}

func TestTableRoundTrip(t *testing.T) {
	names, gids := testNames(300)

	bmp := &Subtable{Key: Key{3, 1, 0}, Format: 4, Map: map[rune]string{}}
	wide := &Subtable{Key: Key{3, 10, 0}, Format: 12, Map: map[rune]string{}}
	for r := rune(0x20); r < 0x7F; r++ {
		bmp.Map[r] = names[int(r)]
		wide.Map[r] = names[int(r)]
	}
	wide.Map[0x2_0057] = names[200]

	in := Table{bmp, wide}
	data, err := in.Encode(gids)
	if err != nil {
		t.Fatal(err)
	}

	out, err := Decode(data, names)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 subtables, got %d", len(out))
	}

	best := out.Best()
	if best == nil || best.Key != wide.Key {
		t.Fatalf("wrong best subtable %v", best)
	}
	if d := cmp.Diff(wide.Map, best.Map); d != "" {
		t.Errorf("wide mapping differs (-in +out):\n%s", d)
	}

	sub := out.Get(3, 1)
	if sub == nil {
		t.Fatal("BMP subtable missing")
	}
	if d := cmp.Diff(bmp.Map, sub.Map); d != "" {
		t.Errorf("BMP mapping differs (-in +out):\n%s", d)
	}
}

func TestBestPriority(t *testing.T) {
	narrow := &Subtable{Key: Key{3, 1, 0}, Format: 4, Map: map[rune]string{0x41: "A"}}
	wide := &Subtable{Key: Key{3, 10, 0}, Format: 12, Map: map[rune]string{0x41: "A"}}
	apple := &Subtable{Key: Key{0, 3, 0}, Format: 4, Map: map[rune]string{0x41: "A"}}

	tbl := Table{apple, narrow, wide}
	if best := tbl.Best(); best != wide {
		t.Errorf("expected (3,10), got %v", best.Key)
	}
	tbl = Table{apple, narrow}
	if best := tbl.Best(); best != narrow {
		t.Errorf("expected (3,1), got %v", best.Key)
	}
	tbl = Table{apple}
	if best := tbl.Best(); best != apple {
		t.Errorf("expected (0,3), got %v", best.Key)
	}
}

func FuzzDecode(f *testing.F) {
	names, gids := testNames(300)
	tbl := Table{
		{Key: Key{3, 1, 0}, Format: 4, Map: map[rune]string{0x41: names[1], 0x42: names[2]}},
		{Key: Key{3, 10, 0}, Format: 12, Map: map[rune]string{0x1_F600: names[3]}},
	}
	data, err := tbl.Encode(gids)
	if err != nil {
		f.Fatal(err)
	}
	f.Add(data)

	f.Fuzz(func(t *testing.T, in []byte) {
		t1, err := Decode(in, names)
		if err != nil {
			return
		}
		buf, err := t1.Encode(gids)
		if err != nil {
			return
		}
		t2, err := Decode(buf, names)
		if err != nil {
			t.Fatal(err)
		}
		if len(t2) != len(t1) {
			t.Fatalf("subtable count changed: %d != %d", len(t2), len(t1))
		}
	})
}
