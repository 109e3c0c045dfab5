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

package glyf

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/enstw/ensfont/sfnt/funit"
)

var testGids = map[string]uint16{
	".notdef": 0,
	"A":       1,
	"B":       2,
	"Aacute":  3,
}

var testNames = []string{".notdef", "A", "B", "Aacute"}

func simpleTestGlyph() *Glyph {
	return &Glyph{
		Rect: funit.Rect{LLx: 10, LLy: 0, URx: 910, URy: 700},
		Data: &SimpleGlyph{
			Contours: []Contour{
				{
					{X: 10, Y: 0, OnCurve: true},
					{X: 460, Y: 700, OnCurve: true},
					{X: 910, Y: 0, OnCurve: true},
				},
				{
					{X: 400, Y: 200, OnCurve: true},
					{X: 460, Y: 300, OnCurve: false},
					{X: 520, Y: 200, OnCurve: true},
				},
			},
		},
	}
}

func TestSimpleRoundTrip(t *testing.T) {
	in := Glyphs{
		nil, // .notdef
		simpleTestGlyph(),
		{
			Rect: funit.Rect{LLx: 0, LLy: -200, URx: 600, URy: 800},
			Data: &SimpleGlyph{
				Contours: []Contour{
					{
						{X: 0, Y: -200, OnCurve: true},
						{X: 0, Y: 800, OnCurve: true},
						{X: 600, Y: 800, OnCurve: false},
						{X: 600, Y: -200, OnCurve: true},
					},
				},
				Instructions: []byte{0x40, 0x01},
			},
		},
		nil,
	}

	enc, err := in.Encode(testGids)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decode(enc, testNames)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("glyphs differ (-in +out):\n%s", d)
	}
}

func TestCompositeRoundTrip(t *testing.T) {
	in := Glyphs{
		nil,
		simpleTestGlyph(),
		nil,
		{
			Rect: funit.Rect{LLx: 10, LLy: 0, URx: 910, URy: 900},
			Data: &CompositeGlyph{
				Components: []Component{
					{
						Flags: FlagArgsAreXYValues | FlagMoreComponents,
						Name:  "A",
						Args:  []byte{0, 0},
					},
					{
						Flags: FlagArgsAreXYValues | FlagArg1And2AreWords,
						Name:  "B",
						Args:  []byte{0x01, 0x2C, 0x00, 0xC8},
					},
				},
			},
		},
	}

	enc, err := in.Encode(testGids)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decode(enc, testNames)
	if err != nil {
		t.Fatal(err)
	}

	comp, ok := out[3].Data.(*CompositeGlyph)
	if !ok {
		t.Fatalf("expected composite glyph, got %T", out[3].Data)
	}
	if names := out[3].ComponentNames(); len(names) != 2 ||
		names[0] != "A" || names[1] != "B" {
		t.Errorf("wrong component names %v", names)
	}
	dx, dy, ok := comp.Components[1].Offset()
	if !ok || dx != 300 || dy != 200 {
		t.Errorf("wrong offset (%d, %d, %t)", dx, dy, ok)
	}
}

func TestEncodeUnknownComponent(t *testing.T) {
	in := Glyphs{
		{
			Data: &CompositeGlyph{
				Components: []Component{
					{Flags: FlagArgsAreXYValues, Name: "missing", Args: []byte{0, 0}},
				},
			},
		},
	}
	if _, err := in.Encode(testGids); err == nil {
		t.Error("unknown component name not detected")
	}
}

func TestSetOffsetWidening(t *testing.T) {
	c := Component{
		Flags: FlagArgsAreXYValues,
		Name:  "A",
		Args:  []byte{10, 20},
	}
	c.SetOffset(300, -200)
	if c.Flags&FlagArg1And2AreWords == 0 {
		t.Error("args were not widened to words")
	}
	dx, dy, ok := c.Offset()
	if !ok || dx != 300 || dy != -200 {
		t.Errorf("wrong offset (%d, %d, %t)", dx, dy, ok)
	}

	c.SetOffset(5, -6)
	if c.Flags&FlagArg1And2AreWords != 0 {
		t.Error("args were not narrowed to bytes")
	}
	dx, dy, ok = c.Offset()
	if !ok || dx != 5 || dy != -6 {
		t.Errorf("wrong offset (%d, %d, %t)", dx, dy, ok)
	}
}

func TestScale(t *testing.T) {
	g := simpleTestGlyph()
	g.Scale(0.5)
	if g.Rect != (funit.Rect{LLx: 5, LLy: 0, URx: 455, URy: 350}) {
		t.Errorf("wrong bounding box %v", g.Rect)
	}
	d := g.Data.(*SimpleGlyph)
	if p := d.Contours[0][1]; p.X != 230 || p.Y != 350 {
		t.Errorf("wrong point (%d, %d)", p.X, p.Y)
	}

	comp := &Glyph{
		Data: &CompositeGlyph{
			Components: []Component{
				{
					Flags: FlagArgsAreXYValues | FlagArg1And2AreWords |
						FlagWeHaveAScale,
					Name: "A",
					// offset (1000, -1000), scale 0.5 as F2Dot14
					Args: []byte{0x03, 0xE8, 0xFC, 0x18, 0x20, 0x00},
				},
			},
		},
	}
	comp.Scale(0.5)
	cd := comp.Data.(*CompositeGlyph)
	dx, dy, _ := cd.Components[0].Offset()
	if dx != 500 || dy != -500 {
		t.Errorf("wrong offset (%d, %d)", dx, dy)
	}
	if got := cd.Components[0].Args[4:]; got[0] != 0x20 || got[1] != 0x00 {
		t.Errorf("transformation bytes changed: % x", got)
	}
}

func TestClone(t *testing.T) {
	g := simpleTestGlyph()
	g2 := g.Clone()
	g2.Scale(2)
	if d := g.Data.(*SimpleGlyph); d.Contours[0][1].X != 460 {
		t.Error("clone shares contour storage with the original")
	}
}
