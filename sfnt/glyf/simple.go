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

// SimpleGlyph is a simple glyph, decoded into its contours.
type SimpleGlyph struct {
	Contours     []Contour
	Instructions []byte
}

// A Point is a point in a glyph outline.
type Point struct {
	X, Y    funit.Int16
	OnCurve bool
}

// A Contour describes a connected part of a glyph outline.
type Contour []Point

func decodeSimpleGlyph(numContours int, buf []byte) (*SimpleGlyph, error) {
	if len(buf) < 2*numContours+2 {
		return nil, errInvalidGlyphData
	}
	endPtsOfContours := make([]uint16, numContours)
	for i := 0; i < numContours; i++ {
		endPtsOfContours[i] = uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
	}
	buf = buf[2*numContours:]
	numPoints := 0
	if numContours > 0 {
		numPoints = int(endPtsOfContours[numContours-1]) + 1
	}

	instructionLength := int(buf[0])<<8 | int(buf[1])
	if len(buf) < 2+instructionLength {
		return nil, errInvalidGlyphData
	}
	instructions := append([]byte(nil), buf[2:2+instructionLength]...)
	buf = buf[2+instructionLength:]

	// decode the flags
	ff := make([]byte, numPoints)
	i := 0
	for i < numPoints {
		if len(buf) < 1 {
			return nil, errInvalidGlyphData
		}
		flags := buf[0]
		buf = buf[1:]
		ff[i] = flags
		i++
		if flags&0x08 != 0 { // REPEAT_FLAG
			if len(buf) < 1 {
				return nil, errInvalidGlyphData
			}
			count := buf[0]
			buf = buf[1:]
			for count > 0 && i < numPoints {
				ff[i] = flags
				i++
				count--
			}
		}
	}

	// decode the x-coordinates
	xx := make([]funit.Int16, numPoints)
	var x funit.Int16
	for i, flags := range ff {
		if flags&0x02 != 0 { // X_SHORT_VECTOR
			if len(buf) < 1 {
				return nil, errInvalidGlyphData
			}
			dx := funit.Int16(buf[0])
			buf = buf[1:]
			if flags&0x10 != 0 { // X_IS_SAME_OR_POSITIVE_X_SHORT_VECTOR
				x += dx
			} else {
				x -= dx
			}
		} else if flags&0x10 == 0 {
			if len(buf) < 2 {
				return nil, errInvalidGlyphData
			}
			dx := funit.Int16(buf[0])<<8 | funit.Int16(buf[1])
			buf = buf[2:]
			x += dx
		}
		xx[i] = x
	}

	// decode the y-coordinates
	yy := make([]funit.Int16, numPoints)
	var y funit.Int16
	for i, flags := range ff {
		if flags&0x04 != 0 { // Y_SHORT_VECTOR
			if len(buf) < 1 {
				return nil, errInvalidGlyphData
			}
			dy := funit.Int16(buf[0])
			buf = buf[1:]
			if flags&0x20 != 0 { // Y_IS_SAME_OR_POSITIVE_Y_SHORT_VECTOR
				y += dy
			} else {
				y -= dy
			}
		} else if flags&0x20 == 0 {
			if len(buf) < 2 {
				return nil, errInvalidGlyphData
			}
			dy := funit.Int16(buf[0])<<8 | funit.Int16(buf[1])
			buf = buf[2:]
			y += dy
		}
		yy[i] = y
	}

	cc := make([]Contour, numContours)
	start := 0
	for i := 0; i < numContours; i++ {
		end := int(endPtsOfContours[i]) + 1
		if end <= start || end > numPoints {
			return nil, errInvalidGlyphData
		}
		pp := make(Contour, end-start)
		for j := start; j < end; j++ {
			pp[j-start] = Point{xx[j], yy[j], ff[j]&0x01 != 0}
		}
		start = end

		cc[i] = pp
	}

	res := &SimpleGlyph{
		Contours:     cc,
		Instructions: instructions,
	}

	return res, nil
}

func (d *SimpleGlyph) append(buf []byte) []byte {
	numPoints := 0
	for _, cc := range d.Contours {
		numPoints += len(cc)
	}

	end := -1
	for _, cc := range d.Contours {
		end += len(cc)
		buf = append(buf, byte(end>>8), byte(end))
	}

	L := len(d.Instructions)
	buf = append(buf, byte(L>>8), byte(L))
	buf = append(buf, d.Instructions...)

	ff := make([]byte, 0, numPoints)
	var xCoords, yCoords []byte
	var prevX, prevY funit.Int16
	for _, cc := range d.Contours {
		for _, p := range cc {
			var flags byte
			if p.OnCurve {
				flags |= 0x01
			}

			dx := p.X - prevX
			switch {
			case dx == 0:
				flags |= 0x10
			case dx >= -255 && dx <= 255:
				flags |= 0x02
				if dx > 0 {
					flags |= 0x10
					xCoords = append(xCoords, byte(dx))
				} else {
					xCoords = append(xCoords, byte(-dx))
				}
			default:
				xCoords = append(xCoords, byte(dx>>8), byte(dx))
			}

			dy := p.Y - prevY
			switch {
			case dy == 0:
				flags |= 0x20
			case dy >= -255 && dy <= 255:
				flags |= 0x04
				if dy > 0 {
					flags |= 0x20
					yCoords = append(yCoords, byte(dy))
				} else {
					yCoords = append(yCoords, byte(-dy))
				}
			default:
				yCoords = append(yCoords, byte(dy>>8), byte(dy))
			}

			ff = append(ff, flags)
			prevX = p.X
			prevY = p.Y
		}
	}

	// run-length encode the flags
	for i := 0; i < len(ff); {
		j := i + 1
		for j < len(ff) && ff[j] == ff[i] && j-i < 256 {
			j++
		}
		if j-i > 1 {
			buf = append(buf, ff[i]|0x08, byte(j-i-1))
		} else {
			buf = append(buf, ff[i])
		}
		i = j
	}

	buf = append(buf, xCoords...)
	buf = append(buf, yCoords...)

	return buf
}

var errInvalidGlyphData = &fonterror.InvalidFontError{
	SubSystem: "sfnt/glyf",
	Reason:    "invalid glyph data",
}
