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

package upstream

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Checker compares the recorded upstream versions against the latest
// GitHub releases.
type Checker struct {
	Source ReleaseSource

	// OwnRepo is the repository the merged fonts are published in,
	// e.g. "enstw/ensfont".  When set, an unchanged state still
	// triggers a build if no release exists for the recorded git tag
	// yet (the first-run case).  Empty disables the check.
	OwnRepo string

	// Now is only used for the last_built timestamp.  nil means
	// time.Now.
	Now func() time.Time
}

// Result describes the outcome of one version check.
type Result struct {
	// Changed reports whether a build should be triggered.
	Changed bool

	// FirstRun is set when the trigger is a missing initial release
	// rather than an upstream change.
	FirstRun bool

	Version string // packaging version to build
	GitTag  string // git tag to publish under
	LxgwTag string
	NerdTag string

	// Previous upstream tags, so the release workflow can tell which
	// upstream actually changed.  Empty on a first run.
	PrevLxgwTag string
	PrevNerdTag string

	// Warnings collects non-fatal problems, e.g. one upstream not
	// being reachable.
	Warnings []string
}

// Check queries both upstreams and updates v in place when either has
// a new release: the new tags are recorded, the packaging version's
// minor part is bumped and the git tag is rebuilt.  The caller is
// responsible for persisting v if Result.Changed is set.
func (c *Checker) Check(ctx context.Context, v *Versions) (*Result, error) {
	prevLxgw := v.Upstream.LxgwWenKai.Tag
	prevNerd := v.Upstream.MesloNerd.Tag

	res := &Result{
		Version: v.Packaging.Version,
		GitTag:  v.Packaging.GitTag,
		LxgwTag: prevLxgw,
		NerdTag: prevNerd,
	}

	changed := false
	if rel, err := c.Source.LatestRelease(ctx, LxgwRepo); err != nil {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("could not check LXGW WenKai: %v", err))
	} else if rel.TagName != prevLxgw {
		v.Upstream.LxgwWenKai.Tag = rel.TagName
		v.Upstream.LxgwWenKai.ReleaseDate = rel.PublishedAt
		changed = true
	}
	if rel, err := c.Source.LatestRelease(ctx, NerdRepo); err != nil {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("could not check Nerd Fonts: %v", err))
	} else if rel.TagName != prevNerd {
		v.Upstream.MesloNerd.Tag = rel.TagName
		v.Upstream.MesloNerd.ReleaseDate = rel.PublishedAt
		changed = true
	}

	if !changed {
		// Even with no upstream change, a brand-new repository has a
		// pre-populated versions.json but no published release yet.
		if c.OwnRepo != "" {
			published, err := ReleaseTagExists(ctx, c.Source, c.OwnRepo,
				v.Packaging.GitTag)
			if err != nil {
				return nil, err
			}
			if !published {
				res.Changed = true
				res.FirstRun = true
				return res, nil
			}
		}
		return res, nil
	}

	newVersion, err := BumpMinor(v.Packaging.Version)
	if err != nil {
		return nil, err
	}
	newTag := BuildGitTag(newVersion,
		v.Upstream.LxgwWenKai.Tag, v.Upstream.MesloNerd.Tag)

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	v.Packaging.PrevLxgwTag = prevLxgw
	v.Packaging.PrevNerdTag = prevNerd
	v.Packaging.Version = newVersion
	v.Packaging.GitTag = newTag
	v.Packaging.LastBuilt = now().UTC().Format(time.RFC3339)

	res.Changed = true
	res.Version = newVersion
	res.GitTag = newTag
	res.LxgwTag = v.Upstream.LxgwWenKai.Tag
	res.NerdTag = v.Upstream.MesloNerd.Tag
	res.PrevLxgwTag = prevLxgw
	res.PrevNerdTag = prevNerd
	return res, nil
}

// WriteActionsOutput writes the result in the key=value format of a
// GitHub Actions output file.
func (r *Result) WriteActionsOutput(w io.Writer) error {
	pairs := [][2]string{
		{"VERSIONS_CHANGED", fmt.Sprintf("%t", r.Changed)},
	}
	if r.Changed {
		pairs = append(pairs,
			[2]string{"NEW_VERSION", r.Version},
			[2]string{"GIT_TAG", r.GitTag},
			[2]string{"LXGW_TAG", r.LxgwTag},
			[2]string{"NERD_TAG", r.NerdTag},
			[2]string{"PREV_LXGW_TAG", r.PrevLxgwTag},
			[2]string{"PREV_NERD_TAG", r.PrevNerdTag},
		)
	}
	for _, kv := range pairs {
		_, err := fmt.Fprintf(w, "%s=%s\n", kv[0], kv[1])
		if err != nil {
			return err
		}
	}
	return nil
}
