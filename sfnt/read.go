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

package sfnt

import (
	"fmt"
	"io"
	"os"

	"github.com/enstw/ensfont/sfnt/cmap"
	"github.com/enstw/ensfont/sfnt/fonterror"
	"github.com/enstw/ensfont/sfnt/glyf"
	"github.com/enstw/ensfont/sfnt/head"
	"github.com/enstw/ensfont/sfnt/hmtx"
	"github.com/enstw/ensfont/sfnt/maxp"
	"github.com/enstw/ensfont/sfnt/name"
	"github.com/enstw/ensfont/sfnt/os2"
	"github.com/enstw/ensfont/sfnt/post"
	"github.com/enstw/ensfont/sfnt/table"
	"github.com/enstw/ensfont/sfnt/vmtx"
)

// tables decoded into the Font structure.  Everything else is kept in
// binary form and written back unchanged.
var decodedTables = map[string]bool{
	"head": true,
	"maxp": true,
	"hhea": true,
	"hmtx": true,
	"vhea": true,
	"vmtx": true,
	"loca": true,
	"glyf": true,
	"cmap": true,
	"OS/2": true,
	"name": true,
	"post": true,
}

// ReadFile reads a TrueType font from the named file.
func ReadFile(fname string) (*Font, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Read(fd)
}

// Read reads a TrueType font.
func Read(r io.ReaderAt) (*Font, error) {
	header, err := table.ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if header.ScalerType == table.ScalerTypeCFF {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt",
			Feature:   "CFF-based fonts",
		}
	}

	headData, err := header.ReadTableBytes(r, "head")
	if err != nil {
		return nil, err
	}
	headInfo, err := head.Decode(headData)
	if err != nil {
		return nil, err
	}

	maxpData, err := header.ReadTableBytes(r, "maxp")
	if err != nil {
		return nil, err
	}
	maxpInfo, err := maxp.Decode(maxpData)
	if err != nil {
		return nil, err
	}
	if maxpInfo.TTF == nil {
		return nil, &fonterror.InvalidFontError{
			SubSystem: "sfnt",
			Reason:    "no TrueType data in maxp table",
		}
	}
	numGlyphs := maxpInfo.NumGlyphs

	var postInfo *post.Info
	if header.Has("post") {
		postData, err := header.ReadTableBytes(r, "post")
		if err != nil {
			return nil, err
		}
		postInfo, err = post.Decode(postData)
		if err != nil {
			return nil, err
		}
	} else {
		postInfo = &post.Info{}
	}
	glyphOrder := makeGlyphNames(postInfo.Names, numGlyphs)
	postInfo.Names = nil

	glyfData, err := header.ReadTableBytes(r, "glyf")
	if err != nil {
		return nil, err
	}
	locaData, err := header.ReadTableBytes(r, "loca")
	if err != nil {
		return nil, err
	}
	locaFormat := int16(0)
	if headInfo.HasLongOffsets {
		locaFormat = 1
	}
	outlines, err := glyf.Decode(&glyf.Encoded{
		GlyfData:   glyfData,
		LocaData:   locaData,
		LocaFormat: locaFormat,
	}, glyphOrder)
	if err != nil {
		return nil, err
	}

	hheaData, err := header.ReadTableBytes(r, "hhea")
	if err != nil {
		return nil, err
	}
	hmtxData, err := header.ReadTableBytes(r, "hmtx")
	if err != nil {
		return nil, err
	}
	hmtxInfo, err := hmtx.Decode(hheaData, hmtxData, numGlyphs)
	if err != nil {
		return nil, err
	}

	var vmtxInfo *vmtx.Info
	if header.Has("vhea") && header.Has("vmtx") {
		vheaData, err := header.ReadTableBytes(r, "vhea")
		if err != nil {
			return nil, err
		}
		vmtxData, err := header.ReadTableBytes(r, "vmtx")
		if err != nil {
			return nil, err
		}
		vmtxInfo, err = vmtx.Decode(vheaData, vmtxData, numGlyphs)
		if err != nil {
			return nil, err
		}
	}

	var cmapTable cmap.Table
	if header.Has("cmap") {
		cmapData, err := header.ReadTableBytes(r, "cmap")
		if err != nil {
			return nil, err
		}
		cmapTable, err = cmap.Decode(cmapData, glyphOrder)
		if err != nil {
			return nil, err
		}
	}

	var os2Info *os2.Info
	if header.Has("OS/2") {
		os2Data, err := header.ReadTableBytes(r, "OS/2")
		if err != nil {
			return nil, err
		}
		os2Info, err = os2.Decode(os2Data)
		if err != nil {
			return nil, err
		}
	}

	var nameTable name.Table
	if header.Has("name") {
		nameData, err := header.ReadTableBytes(r, "name")
		if err != nil {
			return nil, err
		}
		nameTable, err = name.Decode(nameData)
		if err != nil {
			return nil, err
		}
	}

	glyphs := make(map[string]*Glyph, numGlyphs)
	for i, glyphName := range glyphOrder {
		g := &Glyph{
			Outline: outlines[i],
			Width:   hmtxInfo.Widths[i],
			LSB:     hmtxInfo.LSB[i],
		}
		if vmtxInfo != nil {
			g.Height = vmtxInfo.Heights[i]
			g.TSB = vmtxInfo.TSB[i]
		}
		glyphs[glyphName] = g
	}
	hmtxInfo.Widths = nil
	hmtxInfo.LSB = nil
	if vmtxInfo != nil {
		vmtxInfo.Heights = nil
		vmtxInfo.TSB = nil
	}

	tables := make(map[string][]byte)
	for tableName := range header.Toc {
		if decodedTables[tableName] {
			continue
		}
		data, err := header.ReadTableBytes(r, tableName)
		if err != nil {
			return nil, err
		}
		tables[tableName] = data
	}

	return &Font{
		Head:       headInfo,
		Hhea:       hmtxInfo,
		Vhea:       vmtxInfo,
		OS2:        os2Info,
		Name:       nameTable,
		Post:       postInfo,
		Cmap:       cmapTable,
		MaxpTTF:    maxpInfo.TTF,
		GlyphOrder: glyphOrder,
		Glyphs:     glyphs,
		Tables:     tables,
	}, nil
}

// makeGlyphNames turns the glyph names from the "post" table into a
// complete glyph order.  Missing names are synthesized from the glyph
// ID, and duplicates are disambiguated so that names are unique.
func makeGlyphNames(postNames []string, numGlyphs int) []string {
	names := make([]string, numGlyphs)
	seen := make(map[string]bool, numGlyphs)
	for i := range names {
		var glyphName string
		if i < len(postNames) {
			glyphName = postNames[i]
		}
		if glyphName == "" {
			glyphName = fmt.Sprintf("glyph%05d", i)
		}
		if seen[glyphName] {
			base := glyphName
			for k := 2; seen[glyphName]; k++ {
				glyphName = fmt.Sprintf("%s#%d", base, k)
			}
		}
		seen[glyphName] = true
		names[i] = glyphName
	}
	return names
}
