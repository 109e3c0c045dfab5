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

// Package head reads and writes the "head" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/enstw/ensfont/sfnt/funit"
)

const headLength = 54

// MacStyle flag bits.
const (
	MacStyleBold uint16 = 1 << iota
	MacStyleItalic
	MacStyleUnderline
	MacStyleOutline
	MacStyleShadow
	MacStyleCondensed
	MacStyleExtended
)

// Info represents the information in the "head" table.  The Flags and
// MacStyle fields hold the raw bit masks, so that fonts can be
// rewritten without losing flag bits this library does not interpret.
type Info struct {
	FontRevision   Version
	Flags          uint16
	UnitsPerEm     uint16 // font design units per em square
	Created        time.Time
	Modified       time.Time
	FontBBox       funit.Rect
	MacStyle       uint16
	LowestRecPPEM  uint16 // smallest readable size in pixels
	DirectionHint  int16
	HasLongOffsets bool // "loca" table uses 32 bit offsets
}

// Decode reads the binary representation of the head table.
func Decode(data []byte) (*Info, error) {
	enc := &binaryHead{}
	err := binary.Read(bytes.NewReader(data), binary.BigEndian, enc)
	if err != nil {
		return nil, err
	}

	if enc.Version != 0x00010000 {
		return nil, fmt.Errorf("sfnt/head: unsupported table version %08x", enc.Version)
	}
	if enc.MagicNumber != 0x5F0F3CF5 {
		return nil, fmt.Errorf("sfnt/head: invalid magic number %08x", enc.MagicNumber)
	}

	info := &Info{
		FontRevision: Version(enc.FontRevision),
		Flags:        enc.Flags,
		UnitsPerEm:   enc.UnitsPerEm,
		Created:      decodeTime(enc.Created),
		Modified:     decodeTime(enc.Modified),
		FontBBox: funit.Rect{
			LLx: funit.Int16(enc.XMin),
			LLy: funit.Int16(enc.YMin),
			URx: funit.Int16(enc.XMax),
			URy: funit.Int16(enc.YMax),
		},
		MacStyle:       enc.MacStyle,
		LowestRecPPEM:  enc.LowestRecPPEM,
		DirectionHint:  enc.FontDirectionHint,
		HasLongOffsets: enc.IndexToLocFormat != 0,
	}

	return info, nil
}

// Encode returns the binary representation of the head table.  The
// checkSumAdjustment field is left as zero; it is patched when the
// whole font file is assembled.
func (info *Info) Encode() []byte {
	enc := &binaryHead{
		Version:           0x00010000,
		FontRevision:      uint32(info.FontRevision),
		MagicNumber:       0x5F0F3CF5,
		Flags:             info.Flags,
		UnitsPerEm:        info.UnitsPerEm,
		Created:           encodeTime(info.Created),
		Modified:          encodeTime(info.Modified),
		XMin:              int16(info.FontBBox.LLx),
		YMin:              int16(info.FontBBox.LLy),
		XMax:              int16(info.FontBBox.URx),
		YMax:              int16(info.FontBBox.URy),
		MacStyle:          info.MacStyle,
		LowestRecPPEM:     info.LowestRecPPEM,
		FontDirectionHint: info.DirectionHint,
	}

	if info.HasLongOffsets {
		enc.IndexToLocFormat = 1
	}

	buf := bytes.NewBuffer(make([]byte, 0, headLength))
	_ = binary.Write(buf, binary.BigEndian, enc)
	return buf.Bytes()
}

type binaryHead struct {
	Version            uint32
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64

	XMin int16
	YMin int16
	XMax int16
	YMax int16

	MacStyle uint16

	LowestRecPPEM     uint16
	FontDirectionHint int16

	IndexToLocFormat int16
	GlyphDataFormat  int16
}

// Version represents the font revision in 16.16 fixed point format.
type Version uint32

func (v Version) String() string {
	return fmt.Sprintf("%.03f", float32(v)/65536)
}
