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

// Package upstream tracks the upstream font releases the ENS Font
// build consumes.  State lives in versions.json; release information
// comes from the GitHub API.
package upstream

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// The two upstream repositories.
const (
	LxgwRepo = "lxgw/LxgwWenKai"
	NerdRepo = "ryanoasis/nerd-fonts"
)

// UpstreamRef records the last seen release of one upstream.
type UpstreamRef struct {
	Repo        string `json:"repo,omitempty"`
	Tag         string `json:"tag"`
	ReleaseDate string `json:"release_date,omitempty"`
}

// Packaging records the state of the ENS Font packaging itself.
type Packaging struct {
	Version     string `json:"version"`
	GitTag      string `json:"git_tag"`
	LastBuilt   string `json:"last_built,omitempty"`
	PrevLxgwTag string `json:"prev_lxgw_tag,omitempty"`
	PrevNerdTag string `json:"prev_nerd_tag,omitempty"`
}

// Versions is the versions.json state file.
type Versions struct {
	Upstream struct {
		LxgwWenKai UpstreamRef `json:"lxgw_wenkai"`
		MesloNerd  UpstreamRef `json:"meslo_nerd"`
	} `json:"upstream"`
	Packaging Packaging `json:"packaging"`
}

// LoadVersions reads a versions.json file.
func LoadVersions(fname string) (*Versions, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	v := &Versions{}
	err = json.Unmarshal(data, v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return v, nil
}

// Save writes the state back to a versions.json file.
func (v *Versions) Save(fname string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(fname, data, 0o644)
}

// BumpMinor increments the minor part of an X.Y.Z version and resets
// the patch part: "1.0.3" becomes "1.1.0".
func BumpMinor(version string) (string, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid version format (expected X.Y.Z): %q", version)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", version, err)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", version, err)
	}
	if _, err := strconv.Atoi(parts[2]); err != nil {
		return "", fmt.Errorf("invalid version %q: %w", version, err)
	}
	return fmt.Sprintf("%d.%d.0", major, minor+1), nil
}

// BuildGitTag constructs the git tag encoding the packaging version
// and both upstream versions.  Underscores avoid the '+' character,
// which some git clients and shell scripts mishandle.
//
//	BuildGitTag("1.2.0", "v1.521", "v3.4.0") == "v1.2.0_lxgw1521_nerd340"
func BuildGitTag(pkgVersion, lxgwTag, nerdTag string) string {
	compact := func(tag string) string {
		return strings.ReplaceAll(strings.TrimLeft(tag, "v"), ".", "")
	}
	return "v" + pkgVersion + "_lxgw" + compact(lxgwTag) + "_nerd" + compact(nerdTag)
}
