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

// Package os2 reads and writes the "OS/2" table.
//
// All fields are kept explicitly, so that a font can be decoded,
// selectively modified and written back without losing information.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/os2
package os2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/enstw/ensfont/sfnt/funit"
)

// Selection bits of the fsSelection field.
const (
	SelectionItalic         uint16 = 1 << 0
	SelectionUnderscore     uint16 = 1 << 1
	SelectionNegative       uint16 = 1 << 2
	SelectionOutlined       uint16 = 1 << 3
	SelectionStrikeout      uint16 = 1 << 4
	SelectionBold           uint16 = 1 << 5
	SelectionRegular        uint16 = 1 << 6
	SelectionUseTypoMetrics uint16 = 1 << 7
	SelectionWWS            uint16 = 1 << 8
	SelectionOblique        uint16 = 1 << 9
)

// Info contains the information from an "OS/2" table.
type Info struct {
	Version uint16

	AvgCharWidth int16
	WeightClass  uint16
	WidthClass   uint16
	Type         uint16 // embedding permission bits

	SubscriptXSize     int16
	SubscriptYSize     int16
	SubscriptXOffset   int16
	SubscriptYOffset   int16
	SuperscriptXSize   int16
	SuperscriptYSize   int16
	SuperscriptXOffset int16
	SuperscriptYOffset int16
	StrikeoutSize      int16
	StrikeoutPosition  int16

	FamilyClass int16    // https://docs.microsoft.com/en-us/typography/opentype/spec/ibmfc
	Panose      [10]byte // https://monotype.github.io/panose/

	UnicodeRange [4]uint32
	VendID       [4]byte
	Selection    uint16

	FirstCharIndex uint16
	LastCharIndex  uint16

	TypoAscender  funit.Int16
	TypoDescender funit.Int16 // negative
	TypoLineGap   funit.Int16
	WinAscent     uint16
	WinDescent    uint16 // positive

	// version 1 and above
	CodePageRange [2]uint32

	// version 2 and above
	XHeight     funit.Int16
	CapHeight   funit.Int16
	DefaultChar uint16
	BreakChar   uint16
	MaxContext  uint16

	// version 5
	LowerOpticalPointSize uint16
	UpperOpticalPointSize uint16
}

// Decode reads an "OS/2" table.
func Decode(data []byte) (*Info, error) {
	r := bytes.NewReader(data)

	v0 := &v0Data{}
	err := binary.Read(r, binary.BigEndian, v0)
	if err != nil {
		return nil, err
	} else if v0.Version > 5 {
		return nil, errors.New("OS/2: unsupported version")
	}

	info := &Info{
		Version: v0.Version,

		AvgCharWidth: v0.AvgCharWidth,
		WeightClass:  v0.WeightClass,
		WidthClass:   v0.WidthClass,
		Type:         v0.Type,

		SubscriptXSize:     v0.SubscriptXSize,
		SubscriptYSize:     v0.SubscriptYSize,
		SubscriptXOffset:   v0.SubscriptXOffset,
		SubscriptYOffset:   v0.SubscriptYOffset,
		SuperscriptXSize:   v0.SuperscriptXSize,
		SuperscriptYSize:   v0.SuperscriptYSize,
		SuperscriptXOffset: v0.SuperscriptXOffset,
		SuperscriptYOffset: v0.SuperscriptYOffset,
		StrikeoutSize:      v0.StrikeoutSize,
		StrikeoutPosition:  v0.StrikeoutPosition,

		FamilyClass: v0.FamilyClass,
		Panose:      v0.Panose,

		UnicodeRange: v0.UnicodeRange,
		VendID:       v0.VendID,
		Selection:    v0.Selection,

		FirstCharIndex: v0.FirstCharIndex,
		LastCharIndex:  v0.LastCharIndex,
	}
	if v0.Version <= 3 {
		// Applications should ignore bits 7 to 15 in a font that has a
		// version 0 to version 3 OS/2 table.
		info.Selection &= 0x007F
	}

	v0ms := &v0MsData{}
	err = binary.Read(r, binary.BigEndian, v0ms)
	if err == io.EOF {
		return info, nil
	} else if err != nil {
		return nil, err
	}
	info.TypoAscender = v0ms.TypoAscender
	info.TypoDescender = v0ms.TypoDescender
	info.TypoLineGap = v0ms.TypoLineGap
	info.WinAscent = v0ms.WinAscent
	info.WinDescent = v0ms.WinDescent

	if v0.Version < 1 {
		return info, nil
	}

	err = binary.Read(r, binary.BigEndian, &info.CodePageRange)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	if v0.Version < 2 {
		return info, nil
	}

	v2 := &v2Data{}
	err = binary.Read(r, binary.BigEndian, v2)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	info.XHeight = v2.XHeight
	info.CapHeight = v2.CapHeight
	info.DefaultChar = v2.DefaultChar
	info.BreakChar = v2.BreakChar
	info.MaxContext = v2.MaxContext

	if v0.Version < 5 {
		return info, nil
	}

	v5 := &v5Data{}
	err = binary.Read(r, binary.BigEndian, v5)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	info.LowerOpticalPointSize = v5.LowerOpticalPointSize
	info.UpperOpticalPointSize = v5.UpperOpticalPointSize

	return info, nil
}

// Encode converts the info back into an "OS/2" table, using the same
// table version the info was decoded from.
func (info *Info) Encode() []byte {
	buf := &bytes.Buffer{}
	v0 := &v0Data{
		Version:            info.Version,
		AvgCharWidth:       info.AvgCharWidth,
		WeightClass:        info.WeightClass,
		WidthClass:         info.WidthClass,
		Type:               info.Type,
		SubscriptXSize:     info.SubscriptXSize,
		SubscriptYSize:     info.SubscriptYSize,
		SubscriptXOffset:   info.SubscriptXOffset,
		SubscriptYOffset:   info.SubscriptYOffset,
		SuperscriptXSize:   info.SuperscriptXSize,
		SuperscriptYSize:   info.SuperscriptYSize,
		SuperscriptXOffset: info.SuperscriptXOffset,
		SuperscriptYOffset: info.SuperscriptYOffset,
		StrikeoutSize:      info.StrikeoutSize,
		StrikeoutPosition:  info.StrikeoutPosition,
		FamilyClass:        info.FamilyClass,
		Panose:             info.Panose,
		UnicodeRange:       info.UnicodeRange,
		VendID:             info.VendID,
		Selection:          info.Selection,
		FirstCharIndex:     info.FirstCharIndex,
		LastCharIndex:      info.LastCharIndex,
	}
	_ = binary.Write(buf, binary.BigEndian, v0)

	v0ms := &v0MsData{
		TypoAscender:  info.TypoAscender,
		TypoDescender: info.TypoDescender,
		TypoLineGap:   info.TypoLineGap,
		WinAscent:     info.WinAscent,
		WinDescent:    info.WinDescent,
	}
	_ = binary.Write(buf, binary.BigEndian, v0ms)

	if info.Version < 1 {
		return buf.Bytes()
	}

	_ = binary.Write(buf, binary.BigEndian, info.CodePageRange)

	if info.Version < 2 {
		return buf.Bytes()
	}

	v2 := &v2Data{
		XHeight:     info.XHeight,
		CapHeight:   info.CapHeight,
		DefaultChar: info.DefaultChar,
		BreakChar:   info.BreakChar,
		MaxContext:  info.MaxContext,
	}
	_ = binary.Write(buf, binary.BigEndian, v2)

	if info.Version < 5 {
		return buf.Bytes()
	}

	v5 := &v5Data{
		LowerOpticalPointSize: info.LowerOpticalPointSize,
		UpperOpticalPointSize: info.UpperOpticalPointSize,
	}
	_ = binary.Write(buf, binary.BigEndian, v5)

	return buf.Bytes()
}

// UseTypoMetrics reports whether bit 7 of the fsSelection field is
// set.
func (info *Info) UseTypoMetrics() bool {
	return info.Selection&SelectionUseTypoMetrics != 0
}

type v0Data struct {
	Version            uint16
	AvgCharWidth       int16
	WeightClass        uint16
	WidthClass         uint16
	Type               uint16
	SubscriptXSize     int16
	SubscriptYSize     int16
	SubscriptXOffset   int16
	SubscriptYOffset   int16
	SuperscriptXSize   int16
	SuperscriptYSize   int16
	SuperscriptXOffset int16
	SuperscriptYOffset int16
	StrikeoutSize      int16
	StrikeoutPosition  int16
	FamilyClass        int16
	Panose             [10]byte
	UnicodeRange       [4]uint32
	VendID             [4]byte
	Selection          uint16
	FirstCharIndex     uint16
	LastCharIndex      uint16
}

type v0MsData struct {
	TypoAscender  funit.Int16
	TypoDescender funit.Int16
	TypoLineGap   funit.Int16
	WinAscent     uint16
	WinDescent    uint16 // positive
}

type v2Data struct {
	XHeight     funit.Int16
	CapHeight   funit.Int16
	DefaultChar uint16
	BreakChar   uint16
	MaxContext  uint16
}

type v5Data struct {
	LowerOpticalPointSize uint16
	UpperOpticalPointSize uint16
}
