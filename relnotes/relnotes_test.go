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

package relnotes

import (
	"strings"
	"testing"
)

func testParams() *Params {
	return &Params{
		Version:     "1.2.0",
		LxgwTag:     "v1.521",
		NerdTag:     "v3.4.0",
		LxgwBody:    "- new hanzi\n- kerning fixes",
		NerdBody:    "- new icons",
		LxgwChanged: true,
		NerdChanged: true,
	}
}

func TestBuild(t *testing.T) {
	doc := Build(testParams())

	for _, want := range []string{
		"## ENS Font v1.2.0",
		"[v1.521](https://github.com/lxgw/LxgwWenKai/releases/tag/v1.521)",
		"[v3.4.0](https://github.com/ryanoasis/nerd-fonts/releases/tag/v3.4.0)",
		"`ENSFont-1.2.0.zip`",
		"### LXGW WenKai Mono v1.521",
		"- new hanzi\n- kerning fixes",
		"- new icons",
		"Elegant Nerd Sino",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document does not contain %q", want)
		}
	}
}

func TestBuildUnchangedUpstream(t *testing.T) {
	p := testParams()
	p.NerdChanged = false

	doc := Build(p)
	if !strings.Contains(doc, "_（此版本無變更）_") {
		t.Error("missing unchanged note")
	}
	if strings.Contains(doc, "- new icons") {
		t.Error("unchanged upstream's changelog still included")
	}
	if !strings.Contains(doc, "- new hanzi") {
		t.Error("changed upstream's changelog dropped")
	}
}

func TestBuildEmptyBody(t *testing.T) {
	p := testParams()
	p.LxgwBody = "   \n  "

	doc := Build(p)
	if !strings.Contains(doc, "_（無變更記錄）_") {
		t.Error("missing empty-changelog note")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("line\n", 80)
	got := truncate(long)

	lines := strings.Split(got, "\n")
	// 50 content lines plus the blank line and the truncation note
	if len(lines) != 52 {
		t.Errorf("got %d lines, want 52", len(lines))
	}
	if !strings.HasSuffix(got, "_...（完整內容請見上游 Release 頁面）_") {
		t.Error("missing truncation note")
	}

	short := "a\nb\nc"
	if truncate(short) != short {
		t.Error("short body modified")
	}
}
