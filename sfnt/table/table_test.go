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

package table

import (
	"bytes"
	"testing"
)

func TestChecksum(t *testing.T) {
	cases := []struct {
		in  []byte
		out uint32
	}{
		{nil, 0},
		{[]byte{0, 0, 0, 1}, 1},
		{[]byte{1}, 0x01000000},
		{[]byte{0, 0, 0, 1, 0, 0, 0, 2}, 3},
		{[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 1}, 0},
	}
	for i, test := range cases {
		if got := checksum(test.in); got != test.out {
			t.Errorf("%d: checksum = %08x, expected %08x", i, got, test.out)
		}
	}
}

func TestWriteRead(t *testing.T) {
	tables := map[string]([]byte){
		"head": make([]byte, 54),
		"maxp": {0, 0, 0x50, 0, 0, 3},
		"cmap": {1, 2, 3, 4, 5},
		"name": {},
	}
	buf := &bytes.Buffer{}
	n, err := Write(buf, ScalerTypeTrueType, tables)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("reported size %d, wrote %d bytes", n, buf.Len())
	}
	if buf.Len()%4 != 0 {
		t.Errorf("font size %d is not a multiple of 4", buf.Len())
	}

	h, err := ReadHeader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if h.ScalerType != ScalerTypeTrueType {
		t.Errorf("wrong scaler type %08x", h.ScalerType)
	}
	if len(h.Toc) != 3 {
		t.Errorf("expected 3 tables, got %d", len(h.Toc))
	}
	if h.Has("name") {
		t.Error("empty table was written")
	}

	body, err := h.ReadTableBytes(bytes.NewReader(buf.Bytes()), "cmap")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(body, tables["cmap"]) {
		t.Errorf("cmap contents %v, expected %v", body, tables["cmap"])
	}
}

func TestDirectoryOrder(t *testing.T) {
	tables := map[string]([]byte){
		"head": make([]byte, 54),
		"hhea": make([]byte, 36),
		"maxp": {0, 0, 0x50, 0, 0, 3},
		"OS/2": make([]byte, 96),
		"hmtx": {0, 100, 0, 10},
		"cmap": {1, 2, 3, 4, 5},
		"loca": {0, 0, 0, 1},
		"glyf": {1, 2, 3, 4},
	}
	buf := &bytes.Buffer{}
	_, err := Write(buf, ScalerTypeTrueType, tables)
	if err != nil {
		t.Fatal(err)
	}
	body := buf.Bytes()

	// Directory entries must be sorted by tag for binary search.
	var prevTag string
	offsets := make(map[string]uint32)
	for i := 0; i < len(tables); i++ {
		p := 12 + 16*i
		tag := string(body[p : p+4])
		if tag <= prevTag {
			t.Errorf("directory entry %d: tag %q after %q", i, tag, prevTag)
		}
		prevTag = tag
		offsets[tag] = uint32(body[p+8])<<24 | uint32(body[p+9])<<16 |
			uint32(body[p+10])<<8 | uint32(body[p+11])
	}

	// Table bodies keep the recommended physical layout.
	if offsets["head"] >= offsets["glyf"] {
		t.Errorf("head at %d, glyf at %d", offsets["head"], offsets["glyf"])
	}
	if offsets["loca"] >= offsets["glyf"] {
		t.Errorf("loca at %d, glyf at %d", offsets["loca"], offsets["glyf"])
	}

	// The directory must still resolve every table.
	h, err := ReadHeader(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	got, err := h.ReadTableBytes(bytes.NewReader(body), "glyf")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, tables["glyf"]) {
		t.Errorf("glyf contents %v, expected %v", got, tables["glyf"])
	}
}

func TestChecksumAdjustment(t *testing.T) {
	head := make([]byte, 54)
	head[12] = 0x5F // magic number
	head[13] = 0x0F
	head[14] = 0x3C
	head[15] = 0xF5
	tables := map[string]([]byte){
		"head": head,
		"glyf": {1, 2, 3, 4, 5, 6},
	}
	buf := &bytes.Buffer{}
	_, err := Write(buf, ScalerTypeTrueType, tables)
	if err != nil {
		t.Fatal(err)
	}

	// After patching, the checksum of the whole file must come out as
	// the magic constant.
	if got := checksum(buf.Bytes()); got != 0xB1B0AFBA {
		t.Errorf("file checksum %08x, expected B1B0AFBA", got)
	}
}

func TestReadHeaderInvalid(t *testing.T) {
	// wrong scaler type
	data := make([]byte, 12)
	if _, err := ReadHeader(bytes.NewReader(data)); err == nil {
		t.Error("invalid scaler type not detected")
	}

	// overlapping tables
	buf := &bytes.Buffer{}
	_, err := Write(buf, ScalerTypeTrueType, map[string][]byte{
		"glyf": {1, 2, 3, 4},
		"loca": {0, 0, 0, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	body := buf.Bytes()
	// point the second table at the first table's data
	copy(body[12+16+8:], body[12+8:12+12])
	if _, err := ReadHeader(bytes.NewReader(body)); err == nil {
		t.Error("overlapping tables not detected")
	}
}
