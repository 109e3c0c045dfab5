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

// Package hmtx reads and writes the "hhea" and "hmtx" tables.
//
// The "hmtx" table provides glyph advance widths and left side
// bearings.  The aggregate values in the "hhea" table (advanceWidthMax,
// minLeftSideBearing, minRightSideBearing, xMaxExtent) are recomputed
// from the glyph data when the tables are encoded.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
// https://docs.microsoft.com/en-us/typography/opentype/spec/hmtx
package hmtx

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/enstw/ensfont/sfnt/funit"
)

// Info contains information from the "hhea" and "hmtx" tables.
type Info struct {
	Widths []uint16
	LSB    []int16

	Ascent  funit.Int16
	Descent funit.Int16 // negative
	LineGap funit.Int16

	CaretSlopeRise int16
	CaretSlopeRun  int16
	CaretOffset    int16
}

// Decode extracts information from the "hhea" and "hmtx" tables.
// numGlyphs is the glyph count from the "maxp" table.
func Decode(hheaData, hmtxData []byte, numGlyphs int) (*Info, error) {
	r := bytes.NewReader(hheaData)
	hheaEnc := &binaryHhea{}
	err := binary.Read(r, binary.BigEndian, hheaEnc)
	if err != nil {
		return nil, err
	}
	if hheaEnc.Version != 0x00010000 {
		return nil, fmt.Errorf("hmtx: unsupported hhea version %08x", hheaEnc.Version)
	}
	if hheaEnc.MetricDataFormat != 0 {
		return nil, fmt.Errorf("hmtx: unsupported metric data format %d",
			hheaEnc.MetricDataFormat)
	}

	info := &Info{
		Ascent:  funit.Int16(hheaEnc.Ascent),
		Descent: funit.Int16(hheaEnc.Descent),
		LineGap: funit.Int16(hheaEnc.LineGap),

		CaretSlopeRise: hheaEnc.CaretSlopeRise,
		CaretSlopeRun:  hheaEnc.CaretSlopeRun,
		CaretOffset:    hheaEnc.CaretOffset,
	}

	numLong := int(hheaEnc.NumOfLongHorMetrics)
	if numLong < 1 || numLong > numGlyphs {
		return nil, fmt.Errorf("hmtx: invalid numOfLongHorMetrics %d", numLong)
	}
	if len(hmtxData) < 4*numLong+2*(numGlyphs-numLong) {
		return nil, fmt.Errorf("hmtx: table too short")
	}

	widths := make([]uint16, numGlyphs)
	lsbs := make([]int16, numGlyphs)
	pos := 0
	var prevWidth uint16
	for i := 0; i < numGlyphs; i++ {
		if i < numLong {
			prevWidth = uint16(hmtxData[pos])<<8 | uint16(hmtxData[pos+1])
			pos += 2
		}
		widths[i] = prevWidth
		lsbs[i] = int16(hmtxData[pos])<<8 | int16(hmtxData[pos+1])
		pos += 2
	}
	info.Widths = widths
	info.LSB = lsbs

	return info, nil
}

// Encode creates the "hhea" and "hmtx" tables.  The extents slice
// gives the bounding box of each glyph and is used for the aggregate
// fields; glyphs without an outline are skipped there.
func (info *Info) Encode(extents []funit.Rect) (hheaData, hmtxData []byte) {
	numGlyphs := len(info.Widths)
	if len(info.LSB) != numGlyphs {
		panic("hmtx: lsb length mismatch")
	}
	if extents != nil && len(extents) != numGlyphs {
		panic("hmtx: extents length mismatch")
	}

	numLong := numGlyphs
	for numLong > 1 && info.Widths[numLong-1] == info.Widths[numLong-2] {
		numLong--
	}

	hhea := &binaryHhea{
		Version: 0x00010000, // 1.0
		Ascent:  int16(info.Ascent),
		Descent: int16(info.Descent),
		LineGap: int16(info.LineGap),

		CaretSlopeRise: info.CaretSlopeRise,
		CaretSlopeRun:  info.CaretSlopeRun,
		CaretOffset:    info.CaretOffset,

		NumOfLongHorMetrics: uint16(numLong),
	}

	for _, w := range info.Widths {
		if w > hhea.AdvanceWidthMax {
			hhea.AdvanceWidthMax = w
		}
	}

	first := true
	for i, lsb := range info.LSB {
		if extents != nil && extents[i].IsZero() {
			continue
		}
		if first || lsb < hhea.MinLeftSideBearing {
			hhea.MinLeftSideBearing = lsb
			first = false
		}
	}

	if extents != nil {
		first = true
		for i, bbox := range extents {
			if bbox.IsZero() {
				continue
			}

			rsb := int16(info.Widths[i]) - int16(bbox.URx)
			if first || rsb < hhea.MinRightSideBearing {
				hhea.MinRightSideBearing = rsb
			}
			if first || int16(bbox.URx) > hhea.XMaxExtent {
				hhea.XMaxExtent = int16(bbox.URx)
			}
			first = false
		}
	}

	buf := bytes.NewBuffer(make([]byte, 0, hheaLength))
	_ = binary.Write(buf, binary.BigEndian, hhea)
	hheaData = buf.Bytes()

	buf = bytes.NewBuffer(make([]byte, 0, 4*numLong+2*(numGlyphs-numLong)))
	for i := 0; i < numGlyphs; i++ {
		if i < numLong {
			buf.Write([]byte{
				byte(info.Widths[i] >> 8), byte(info.Widths[i]),
			})
		}
		buf.Write([]byte{
			byte(info.LSB[i] >> 8), byte(info.LSB[i]),
		})
	}
	hmtxData = buf.Bytes()

	return hheaData, hmtxData
}

const hheaLength = 36

type binaryHhea struct {
	Version             uint32
	Ascent              int16
	Descent             int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	_                   int16
	_                   int16
	_                   int16
	_                   int16
	MetricDataFormat    int16
	NumOfLongHorMetrics uint16
}
