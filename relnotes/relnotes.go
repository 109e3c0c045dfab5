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

// Package relnotes assembles the bilingual Markdown release document
// for an ENS Font release, combining the package metadata with the
// upstream changelogs.
package relnotes

import (
	"context"
	"strings"
	"text/template"

	"github.com/enstw/ensfont/upstream"
)

// maxBodyLines limits how much of an upstream changelog is quoted.
const maxBodyLines = 50

// Params describes one release document.
type Params struct {
	Version string // e.g. "1.2.0"
	LxgwTag string // e.g. "v1.521"
	NerdTag string // e.g. "v3.4.0"

	// Upstream changelog bodies, possibly empty.
	LxgwBody string
	NerdBody string

	// Which upstreams changed in this release.  An unchanged
	// upstream's changelog section is replaced by a short note.
	LxgwChanged bool
	NerdChanged bool
}

// FetchBody fetches the release body of an upstream tag.  A missing
// or unreachable release is not fatal; the document is published
// without the changelog, so the error is returned alongside an empty
// body for the caller to log.
func FetchBody(ctx context.Context, src upstream.ReleaseSource, repo, tag string) (string, error) {
	rel, err := src.ReleaseByTag(ctx, repo, tag)
	if err != nil {
		return "", err
	}
	return rel.Body, nil
}

// truncate limits a changelog to maxBodyLines lines, with a pointer
// to the upstream release page when cut short.
func truncate(body string) string {
	lines := strings.Split(body, "\n")
	if len(lines) <= maxBodyLines {
		return body
	}
	return strings.Join(lines[:maxBodyLines], "\n") +
		"\n\n_...（完整內容請見上游 Release 頁面）_"
}

// section renders one upstream's changelog section.
func section(body string, changed bool) string {
	if !changed {
		return "_（此版本無變更）_"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return "_（無變更記錄）_"
	}
	return truncate(body)
}

var notesTemplate = template.Must(template.New("notes").Parse(`## ENS Font v{{.Version}}

**Elegant · Nerd · Sino** — 終端機專用中英混排字體

| 來源 | 版本 | 用途 |
|------|------|------|
| LXGW WenKai Mono | [{{.LxgwTag}}]({{.LxgwURL}}) | CJK 字元基底 |
| MesloLGM Nerd Font | [{{.NerdTag}}]({{.NerdURL}}) | ASCII 優先 + Nerd 圖標 |

### 字元優先權
1. **MesloLGM** — ASCII (U+0020–U+007E)、拉丁字元、Box Drawing、箭頭
2. **Nerd Fonts** — PUA 圖標 (E000–F8FF)、Powerline 符號
3. **LXGW WenKai** — CJK (U+4E00–U+9FFF)、平假名、片假名、全形標點

### 字體檔案

| 檔案 | 字重 |
|------|------|
| ` + "`ENSFont-Regular.ttf`" + `    | Regular     |
| ` + "`ENSFont-Bold.ttf`" + `       | Bold        |
| ` + "`ENSFont-Italic.ttf`" + `     | Italic      |
| ` + "`ENSFont-BoldItalic.ttf`" + ` | Bold Italic |

下載 ` + "`ENSFont-{{.Version}}.zip`" + ` 取得所有字重。

### 授權
- 最終字體：[SIL OFL 1.1](https://openfontlicense.org)
- ASCII/拉丁字形（MesloLGM）：[Apache License 2.0](https://www.apache.org/licenses/LICENSE-2.0)
- PUA 圖標（Nerd Fonts）：[MIT License](https://github.com/ryanoasis/nerd-fonts/blob/master/LICENSE)

保留字型名稱：**"ENS Font"** 與 **"Elegant Nerd Sino"**。
原始保留名稱 "LXGW"、"霞鶩"、"Klee"、"Meslo" 均**未使用**於本衍生字體。

---

## 上游變更記錄

### LXGW WenKai Mono {{.LxgwTag}}

{{.LxgwSection}}

> 完整內容：[{{.LxgwURL}}]({{.LxgwURL}})

---

### Nerd Fonts {{.NerdTag}}

{{.NerdSection}}

> 完整內容：[{{.NerdURL}}]({{.NerdURL}})
`))

// Build renders the release document.
func Build(p *Params) string {
	data := struct {
		Version, LxgwTag, NerdTag string
		LxgwURL, NerdURL          string
		LxgwSection, NerdSection  string
	}{
		Version:     p.Version,
		LxgwTag:     p.LxgwTag,
		NerdTag:     p.NerdTag,
		LxgwURL:     "https://github.com/" + upstream.LxgwRepo + "/releases/tag/" + p.LxgwTag,
		NerdURL:     "https://github.com/" + upstream.NerdRepo + "/releases/tag/" + p.NerdTag,
		LxgwSection: section(p.LxgwBody, p.LxgwChanged),
		NerdSection: section(p.NerdBody, p.NerdChanged),
	}

	buf := &strings.Builder{}
	err := notesTemplate.Execute(buf, data)
	if err != nil {
		// The template and data are fixed at compile time.
		panic(err)
	}
	return buf.String()
}
