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

// Ensfont-relnotes assembles the GitHub release body for an ENS Font
// release from the package metadata and the upstream changelogs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/enstw/ensfont/relnotes"
	"github.com/enstw/ensfont/upstream"
)

func main() {
	version := flag.String("version", "", "ENS Font packaging version (e.g. 1.2.0)")
	lxgwTag := flag.String("lxgw-tag", "", "LXGW WenKai release tag (e.g. v1.521)")
	nerdTag := flag.String("nerd-tag", "", "Nerd Fonts release tag (e.g. v3.4.0)")
	lxgwChanged := flag.String("lxgw-changed", "true",
		"include the LXGW WenKai changelog (true/false)")
	nerdChanged := flag.String("nerd-changed", "true",
		"include the Nerd Fonts changelog (true/false)")
	output := flag.String("output", "", "output file for the release notes Markdown")
	githubToken := flag.String("github-token", os.Getenv("GITHUB_TOKEN"),
		"GitHub API token (or set GITHUB_TOKEN)")
	flag.Parse()

	if *version == "" || *lxgwTag == "" || *nerdTag == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "usage: ensfont-relnotes -version V -lxgw-tag T -nerd-tag T -output FILE [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	params := &relnotes.Params{
		Version:     *version,
		LxgwTag:     *lxgwTag,
		NerdTag:     *nerdTag,
		LxgwChanged: parseBool(*lxgwChanged),
		NerdChanged: parseBool(*nerdChanged),
	}

	client := &upstream.Client{Token: *githubToken}
	ctx := context.Background()

	if params.LxgwChanged {
		fmt.Printf("Fetching LXGW WenKai changelog for %s...\n", *lxgwTag)
		body, err := relnotes.FetchBody(ctx, client, upstream.LxgwRepo, *lxgwTag)
		if err != nil {
			fmt.Fprintln(os.Stderr, "WARNING:", err)
		}
		params.LxgwBody = body
	} else {
		fmt.Printf("LXGW WenKai %s: no change, skipping fetch.\n", *lxgwTag)
	}
	if params.NerdChanged {
		fmt.Printf("Fetching Nerd Fonts changelog for %s...\n", *nerdTag)
		body, err := relnotes.FetchBody(ctx, client, upstream.NerdRepo, *nerdTag)
		if err != nil {
			fmt.Fprintln(os.Stderr, "WARNING:", err)
		}
		params.NerdBody = body
	} else {
		fmt.Printf("Nerd Fonts %s: no change, skipping fetch.\n", *nerdTag)
	}

	notes := relnotes.Build(params)

	err := os.MkdirAll(filepath.Dir(*output), 0o755)
	if err == nil {
		err = os.WriteFile(*output, []byte(notes), 0o644)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}
	fmt.Printf("Release notes written to %s (%d chars)\n", *output, len(notes))
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	}
	return false
}
