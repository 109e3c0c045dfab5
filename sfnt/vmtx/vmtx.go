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

// Package vmtx reads and writes the "vhea" and "vmtx" tables.
//
// Unlike the horizontal metrics, the encoder always stores a long
// metric for every glyph, so that fonts with a rebuilt "vmtx" table
// do not depend on the glyph order for trailing-run compression.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/vhea
// https://docs.microsoft.com/en-us/typography/opentype/spec/vmtx
package vmtx

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/enstw/ensfont/sfnt/funit"
)

// Info contains information from the "vhea" and "vmtx" tables.
type Info struct {
	Heights []uint16
	TSB     []int16

	Ascent  funit.Int16
	Descent funit.Int16 // negative
	LineGap funit.Int16

	CaretSlopeRise int16
	CaretSlopeRun  int16
	CaretOffset    int16
}

// Decode extracts information from the "vhea" and "vmtx" tables.
// numGlyphs is the glyph count from the "maxp" table.
func Decode(vheaData, vmtxData []byte, numGlyphs int) (*Info, error) {
	r := bytes.NewReader(vheaData)
	vheaEnc := &binaryVhea{}
	err := binary.Read(r, binary.BigEndian, vheaEnc)
	if err != nil {
		return nil, err
	}
	if vheaEnc.Version != 0x00010000 && vheaEnc.Version != 0x00011000 {
		return nil, fmt.Errorf("vmtx: unsupported vhea version %08x", vheaEnc.Version)
	}
	if vheaEnc.MetricDataFormat != 0 {
		return nil, fmt.Errorf("vmtx: unsupported metric data format %d",
			vheaEnc.MetricDataFormat)
	}

	info := &Info{
		Ascent:  funit.Int16(vheaEnc.Ascent),
		Descent: funit.Int16(vheaEnc.Descent),
		LineGap: funit.Int16(vheaEnc.LineGap),

		CaretSlopeRise: vheaEnc.CaretSlopeRise,
		CaretSlopeRun:  vheaEnc.CaretSlopeRun,
		CaretOffset:    vheaEnc.CaretOffset,
	}

	numLong := int(vheaEnc.NumOfLongVerMetrics)
	if numLong < 1 || numLong > numGlyphs {
		return nil, fmt.Errorf("vmtx: invalid numOfLongVerMetrics %d", numLong)
	}
	if len(vmtxData) < 4*numLong+2*(numGlyphs-numLong) {
		return nil, fmt.Errorf("vmtx: table too short")
	}

	heights := make([]uint16, numGlyphs)
	tsbs := make([]int16, numGlyphs)
	pos := 0
	var prevHeight uint16
	for i := 0; i < numGlyphs; i++ {
		if i < numLong {
			prevHeight = uint16(vmtxData[pos])<<8 | uint16(vmtxData[pos+1])
			pos += 2
		}
		heights[i] = prevHeight
		tsbs[i] = int16(vmtxData[pos])<<8 | int16(vmtxData[pos+1])
		pos += 2
	}
	info.Heights = heights
	info.TSB = tsbs

	return info, nil
}

// Encode creates the "vhea" and "vmtx" tables.  The extents slice
// gives the bounding box of each glyph and is used for the aggregate
// fields; glyphs without an outline are skipped there.
func (info *Info) Encode(extents []funit.Rect) (vheaData, vmtxData []byte) {
	numGlyphs := len(info.Heights)
	if len(info.TSB) != numGlyphs {
		panic("vmtx: tsb length mismatch")
	}
	if extents != nil && len(extents) != numGlyphs {
		panic("vmtx: extents length mismatch")
	}

	vhea := &binaryVhea{
		Version: 0x00010000, // 1.0
		Ascent:  int16(info.Ascent),
		Descent: int16(info.Descent),
		LineGap: int16(info.LineGap),

		CaretSlopeRise: info.CaretSlopeRise,
		CaretSlopeRun:  info.CaretSlopeRun,
		CaretOffset:    info.CaretOffset,

		NumOfLongVerMetrics: uint16(numGlyphs),
	}

	for _, h := range info.Heights {
		if h > vhea.AdvanceHeightMax {
			vhea.AdvanceHeightMax = h
		}
	}

	first := true
	for i, tsb := range info.TSB {
		if extents != nil && extents[i].IsZero() {
			continue
		}
		if first || tsb < vhea.MinTopSideBearing {
			vhea.MinTopSideBearing = tsb
			first = false
		}
	}

	if extents != nil {
		first = true
		for i, bbox := range extents {
			if bbox.IsZero() {
				continue
			}

			bsb := int16(info.Heights[i]) - info.TSB[i] -
				int16(bbox.URy-bbox.LLy)
			if first || bsb < vhea.MinBottomSideBearing {
				vhea.MinBottomSideBearing = bsb
			}
			yMax := info.TSB[i] + int16(bbox.URy-bbox.LLy)
			if first || yMax > vhea.YMaxExtent {
				vhea.YMaxExtent = yMax
			}
			first = false
		}
	}

	buf := bytes.NewBuffer(make([]byte, 0, vheaLength))
	_ = binary.Write(buf, binary.BigEndian, vhea)
	vheaData = buf.Bytes()

	buf = bytes.NewBuffer(make([]byte, 0, 4*numGlyphs))
	for i := 0; i < numGlyphs; i++ {
		buf.Write([]byte{
			byte(info.Heights[i] >> 8), byte(info.Heights[i]),
			byte(info.TSB[i] >> 8), byte(info.TSB[i]),
		})
	}
	vmtxData = buf.Bytes()

	return vheaData, vmtxData
}

const vheaLength = 36

type binaryVhea struct {
	Version              uint32
	Ascent               int16
	Descent              int16
	LineGap              int16
	AdvanceHeightMax     uint16
	MinTopSideBearing    int16
	MinBottomSideBearing int16
	YMaxExtent           int16
	CaretSlopeRise       int16
	CaretSlopeRun        int16
	CaretOffset          int16
	_                    int16
	_                    int16
	_                    int16
	_                    int16
	MetricDataFormat     int16
	NumOfLongVerMetrics  uint16
}
