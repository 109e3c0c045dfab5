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

package name

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	// records are listed in the order Encode stores them, so that the
	// decoded table compares equal
	in := Table{
		{1, 0, LangMacEnglish, IDFamily, "ENS Font"},
		{1, 0, LangMacChineseTrad, IDSampleText, "The quick brown fox"},
		{3, 1, LangChineseTW, IDFamily, "ENS Font"},
		{3, 1, LangChineseTW, IDSampleText, "微風迴旋"},
		{3, 1, LangEnglishUS, IDFamily, "ENS Font"},
		{3, 1, LangEnglishUS, IDSubfamily, "Regular"},
	}

	out, err := Decode(in.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("records differ (-in +out):\n%s", d)
	}
}

func TestGet(t *testing.T) {
	tbl := Table{
		{1, 0, LangMacEnglish, IDVersion, "Version 0.9"},
		{3, 1, LangChineseTW, IDVersion, "Version 1.0"},
		{3, 1, LangEnglishUS, IDVersion, "Version 1.1"},
	}
	if got := tbl.Get(IDVersion); got != "Version 1.1" {
		t.Errorf("Get returned %q, expected the en-US record", got)
	}
	if got := tbl.Get(IDTrademark); got != "" {
		t.Errorf("Get returned %q for a missing ID", got)
	}
}

func TestStorageDedup(t *testing.T) {
	tbl := Table{
		{3, 1, LangEnglishUS, IDFamily, "ENS Font"},
		{3, 1, LangChineseTW, IDFamily, "ENS Font"},
	}
	data := tbl.Encode()
	// header + 2 records + one copy of the UTF-16 string
	if expect := 6 + 2*12 + 2*len("ENS Font"); len(data) != expect {
		t.Errorf("table has %d bytes, expected %d", len(data), expect)
	}
}

func TestMacRomanRecords(t *testing.T) {
	in := Table{
		{1, 0, LangMacEnglish, IDCopyright, "Copyright © 2026"},
	}
	out, err := Decode(in.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Value != in[0].Value {
		t.Errorf("got %v", out)
	}
}
