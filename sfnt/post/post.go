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

// Package post reads and writes the "post" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/post
package post

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Info contains information from the "post" table.  Names holds the
// glyph names for format 1 and 2 tables and is nil for format 3.
type Info struct {
	ItalicAngle        int32 // italic angle in 16.16 fixed point degrees
	UnderlinePosition  int16 // underline position (negative)
	UnderlineThickness int16
	IsFixedPitch       bool

	Names []string
}

// Decode reads a "post" table.
func Decode(data []byte) (*Info, error) {
	post := &postEnc{}
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.BigEndian, post); err != nil {
		return nil, err
	}

	info := &Info{
		ItalicAngle:        post.ItalicAngle,
		UnderlinePosition:  post.UnderlinePosition,
		UnderlineThickness: post.UnderlineThickness,
		IsFixedPitch:       post.IsFixedPitch != 0,
	}

	switch post.Version {
	case 0x00010000:
		info.Names = append([]string(nil), macGlyphNames...)
	case 0x00020000:
		names, err := decodeFormat2(data[postEncLength:])
		if err != nil {
			return nil, err
		}
		info.Names = names
	case 0x00030000:
		// no glyph names
	default:
		return nil, fmt.Errorf("post: unsupported version %08x", post.Version)
	}

	return info, nil
}

func decodeFormat2(data []byte) ([]string, error) {
	if len(data) < 2 {
		return nil, errMalformedPost
	}
	numGlyphs := int(data[0])<<8 | int(data[1])
	data = data[2:]
	if len(data) < 2*numGlyphs {
		return nil, errMalformedPost
	}

	indices := make([]uint16, numGlyphs)
	for i := range indices {
		indices[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	data = data[2*numGlyphs:]

	var extra []string
	for len(data) > 0 {
		l := int(data[0])
		if len(data) < 1+l {
			return nil, errMalformedPost
		}
		extra = append(extra, string(data[1:1+l]))
		data = data[1+l:]
	}

	names := make([]string, numGlyphs)
	for i, idx := range indices {
		if int(idx) < len(macGlyphNames) {
			names[i] = macGlyphNames[idx]
		} else if int(idx)-len(macGlyphNames) < len(extra) {
			names[i] = extra[int(idx)-len(macGlyphNames)]
		} else {
			return nil, errMalformedPost
		}
	}
	return names, nil
}

// Encode encodes the "post" table as format 3, without glyph names.
func (info *Info) Encode() []byte {
	var isFixedPitch uint32
	if info.IsFixedPitch {
		isFixedPitch = 1
	}

	post := &postEnc{
		Version:            0x00030000,
		ItalicAngle:        info.ItalicAngle,
		UnderlinePosition:  info.UnderlinePosition,
		UnderlineThickness: info.UnderlineThickness,
		IsFixedPitch:       isFixedPitch,
	}

	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.BigEndian, post)
	return buf.Bytes()
}

const postEncLength = 32

type postEnc struct {
	Version            uint32
	ItalicAngle        int32
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32
	MinMemType42       uint32
	MaxMemType42       uint32
	MinMemType1        uint32
	MaxMemType1        uint32
}

var errMalformedPost = fmt.Errorf("post: malformed table")
