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
	"github.com/enstw/ensfont/sfnt/fonterror"
	"github.com/enstw/ensfont/sfnt/funit"
)

// Flags used in composite glyph components.
const (
	FlagArg1And2AreWords uint16 = 0x0001
	FlagArgsAreXYValues  uint16 = 0x0002
	FlagWeHaveAScale     uint16 = 0x0008
	FlagMoreComponents   uint16 = 0x0020
	FlagWeHaveXAndYScale uint16 = 0x0040
	FlagWeHaveATwoByTwo  uint16 = 0x0080
	FlagWeHaveInstr      uint16 = 0x0100
)

// Glyph represents a single glyph in a TrueType font.  A nil Glyph
// has no outline.
type Glyph struct {
	funit.Rect
	Data interface{} // either *SimpleGlyph or *CompositeGlyph
}

// CompositeGlyph is a composite glyph.
type CompositeGlyph struct {
	Components   []Component
	Instructions []byte
}

// Component is a single component of a composite glyph.  Trailing
// transformation bytes in Args are carried through unchanged.
type Component struct {
	Flags uint16
	Name  string
	Args  []byte
}

func decodeGlyph(data []byte, names []string) (*Glyph, error) {
	if len(data) == 0 {
		return nil, nil
	} else if len(data) < 10 {
		return nil, &fonterror.InvalidFontError{
			SubSystem: "sfnt/glyf",
			Reason:    "incomplete glyph header",
		}
	}

	var glyphData interface{}
	numCont := int16(data[0])<<8 | int16(data[1])
	if numCont >= 0 {
		simple, err := decodeSimpleGlyph(int(numCont), data[10:])
		if err != nil {
			return nil, err
		}
		glyphData = simple
	} else {
		comp, err := decodeCompositeGlyph(data[10:], names)
		if err != nil {
			return nil, err
		}
		glyphData = comp
	}

	g := &Glyph{
		Rect: funit.Rect{
			LLx: funit.Int16(data[2])<<8 | funit.Int16(data[3]),
			LLy: funit.Int16(data[4])<<8 | funit.Int16(data[5]),
			URx: funit.Int16(data[6])<<8 | funit.Int16(data[7]),
			URy: funit.Int16(data[8])<<8 | funit.Int16(data[9]),
		},
		Data: glyphData,
	}
	return g, nil
}

func decodeCompositeGlyph(data []byte, names []string) (*CompositeGlyph, error) {
	var components []Component
	done := false
	weHaveInstructions := false
	for !done {
		if len(data) < 4 {
			return nil, errIncompleteGlyph
		}

		flags := uint16(data[0])<<8 | uint16(data[1])
		glyphIndex := uint16(data[2])<<8 | uint16(data[3])
		data = data[4:]

		if flags&FlagWeHaveInstr != 0 {
			weHaveInstructions = true
		}

		skip := 0
		if flags&FlagArg1And2AreWords != 0 {
			skip += 4
		} else {
			skip += 2
		}
		if flags&FlagWeHaveAScale != 0 {
			skip += 2
		} else if flags&FlagWeHaveXAndYScale != 0 {
			skip += 4
		} else if flags&FlagWeHaveATwoByTwo != 0 {
			skip += 8
		}
		if len(data) < skip {
			return nil, errIncompleteGlyph
		}
		args := make([]byte, skip)
		copy(args, data)
		data = data[skip:]

		if int(glyphIndex) >= len(names) {
			return nil, &fonterror.InvalidFontError{
				SubSystem: "sfnt/glyf",
				Reason:    "component glyph ID out of range",
			}
		}

		components = append(components, Component{
			Flags: flags,
			Name:  names[glyphIndex],
			Args:  args,
		})

		done = flags&FlagMoreComponents == 0
	}

	if weHaveInstructions && len(data) >= 2 {
		L := int(data[0])<<8 | int(data[1])
		data = data[2:]
		if len(data) > L {
			data = data[:L]
		}
	} else {
		data = nil
	}

	res := &CompositeGlyph{
		Components:   components,
		Instructions: data,
	}
	return res, nil
}

func (g *Glyph) append(buf []byte, gids map[string]uint16) ([]byte, error) {
	if g == nil {
		return buf, nil
	}

	var numContours int16
	switch d := g.Data.(type) {
	case *SimpleGlyph:
		numContours = int16(len(d.Contours))
	case *CompositeGlyph:
		numContours = -1
	default:
		return nil, errUnexpectedGlyphType
	}

	buf = append(buf,
		byte(numContours>>8),
		byte(numContours),
		byte(g.LLx>>8),
		byte(g.LLx),
		byte(g.LLy>>8),
		byte(g.LLy),
		byte(g.URx>>8),
		byte(g.URx),
		byte(g.URy>>8),
		byte(g.URy))

	switch d := g.Data.(type) {
	case *SimpleGlyph:
		buf = d.append(buf)
	case *CompositeGlyph:
		for i, comp := range d.Components {
			gid, ok := gids[comp.Name]
			if !ok {
				return nil, &fonterror.InvalidFontError{
					SubSystem: "sfnt/glyf",
					Reason:    "no glyph ID for component " + comp.Name,
				}
			}
			flags := comp.Flags &^ FlagMoreComponents
			if i < len(d.Components)-1 {
				flags |= FlagMoreComponents
			}
			if len(d.Instructions) > 0 {
				flags |= FlagWeHaveInstr
			} else {
				flags &^= FlagWeHaveInstr
			}
			buf = append(buf,
				byte(flags>>8), byte(flags),
				byte(gid>>8), byte(gid))
			buf = append(buf, comp.Args...)
		}
		if len(d.Instructions) > 0 {
			L := len(d.Instructions)
			buf = append(buf, byte(L>>8), byte(L))
			buf = append(buf, d.Instructions...)
		}
	}

	for len(buf)%glyfAlign != 0 {
		buf = append(buf, 0)
	}

	return buf, nil
}

// ComponentNames returns the names of the components of a composite
// glyph, or nil if the glyph is simple or empty.
func (g *Glyph) ComponentNames() []string {
	if g == nil {
		return nil
	}
	d, ok := g.Data.(*CompositeGlyph)
	if !ok {
		return nil
	}
	res := make([]string, len(d.Components))
	for i, comp := range d.Components {
		res[i] = comp.Name
	}
	return res
}

// Clone returns a deep copy of the glyph.
func (g *Glyph) Clone() *Glyph {
	if g == nil {
		return nil
	}
	g2 := &Glyph{Rect: g.Rect}
	switch d := g.Data.(type) {
	case *SimpleGlyph:
		d2 := &SimpleGlyph{
			Contours:     make([]Contour, len(d.Contours)),
			Instructions: append([]byte(nil), d.Instructions...),
		}
		for i, cc := range d.Contours {
			d2.Contours[i] = append(Contour(nil), cc...)
		}
		g2.Data = d2
	case *CompositeGlyph:
		d2 := &CompositeGlyph{
			Components:   make([]Component, len(d.Components)),
			Instructions: append([]byte(nil), d.Instructions...),
		}
		for i, comp := range d.Components {
			d2.Components[i] = Component{
				Flags: comp.Flags,
				Name:  comp.Name,
				Args:  append([]byte(nil), comp.Args...),
			}
		}
		g2.Data = d2
	}
	return g2
}

// Offset returns the placement offset of the component.  The second
// return value is false if the args are point indices rather than an
// x/y offset.
func (c *Component) Offset() (dx, dy funit.Int16, ok bool) {
	if c.Flags&FlagArgsAreXYValues == 0 {
		return 0, 0, false
	}
	if c.Flags&FlagArg1And2AreWords != 0 {
		dx = funit.Int16(c.Args[0])<<8 | funit.Int16(c.Args[1])
		dy = funit.Int16(c.Args[2])<<8 | funit.Int16(c.Args[3])
	} else {
		dx = funit.Int16(int8(c.Args[0]))
		dy = funit.Int16(int8(c.Args[1]))
	}
	return dx, dy, true
}

// SetOffset replaces the placement offset of the component, keeping
// any transformation bytes.  Args are widened to words if the new
// offset does not fit into a byte.
func (c *Component) SetOffset(dx, dy funit.Int16) {
	if c.Flags&FlagArgsAreXYValues == 0 {
		return
	}
	var tail []byte
	if c.Flags&FlagArg1And2AreWords != 0 {
		tail = c.Args[4:]
	} else {
		tail = c.Args[2:]
	}
	if dx >= -128 && dx <= 127 && dy >= -128 && dy <= 127 {
		c.Flags &^= FlagArg1And2AreWords
		c.Args = append([]byte{byte(dx), byte(dy)}, tail...)
	} else {
		c.Flags |= FlagArg1And2AreWords
		c.Args = append([]byte{
			byte(dx >> 8), byte(dx),
			byte(dy >> 8), byte(dy),
		}, tail...)
	}
}

const glyfAlign = 2

var errIncompleteGlyph = &fonterror.InvalidFontError{
	SubSystem: "sfnt/glyf",
	Reason:    "incomplete glyph",
}

var errUnexpectedGlyphType = &fonterror.InvalidFontError{
	SubSystem: "sfnt/glyf",
	Reason:    "unexpected glyph type",
}
