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

// Ensfont-versions polls the upstream GitHub releases and updates
// versions.json.
//
// Exit codes:
//
//	0  no upstream changes (skip build)
//	1  upstream changed (trigger build)
//	2  error (bad state file, network failure, ...)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/enstw/ensfont/upstream"
)

func main() {
	versionsFile := flag.String("versions-file", "versions.json",
		"path to versions.json")
	githubToken := flag.String("github-token", os.Getenv("GITHUB_TOKEN"),
		"GitHub API token (or set GITHUB_TOKEN)")
	dryRun := flag.Bool("dry-run", false,
		"print what would change without writing versions.json")
	flag.Parse()

	err := run(*versionsFile, *githubToken, *dryRun)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}
}

func run(versionsFile, token string, dryRun bool) error {
	v, err := upstream.LoadVersions(versionsFile)
	if err != nil {
		return err
	}
	fmt.Printf("Current versions: lxgw=%s, nerd=%s\n",
		v.Upstream.LxgwWenKai.Tag, v.Upstream.MesloNerd.Tag)
	fmt.Println("Checking upstream releases...")

	checker := &upstream.Checker{
		Source:  &upstream.Client{Token: token},
		OwnRepo: os.Getenv("GITHUB_REPOSITORY"),
	}
	res, err := checker.Check(context.Background(), v)
	if err != nil {
		return err
	}
	for _, warning := range res.Warnings {
		fmt.Fprintln(os.Stderr, "WARNING:", warning)
	}

	switch {
	case !res.Changed:
		fmt.Println("No upstream changes detected. Build not triggered.")
	case res.FirstRun:
		fmt.Printf("No upstream changes, but release %q not found.\n", res.GitTag)
		fmt.Println("Triggering initial build...")
	default:
		fmt.Printf("Packaging version: -> %s\n", res.Version)
		fmt.Printf("New git tag:       %s\n", res.GitTag)
		if dryRun {
			fmt.Println("[DRY RUN] versions.json not written")
		} else {
			err = v.Save(versionsFile)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", versionsFile)
		}
	}

	err = writeOutputs(res)
	if err != nil {
		return err
	}

	if res.Changed {
		os.Exit(1)
	}
	return nil
}

// writeOutputs appends the result to the GitHub Actions output file,
// or prints it when running outside of Actions.
func writeOutputs(res *upstream.Result) error {
	fname := os.Getenv("GITHUB_OUTPUT")
	if fname == "" {
		fmt.Println("[GHA Output]")
		return res.WriteActionsOutput(os.Stdout)
	}
	fd, err := os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	err = res.WriteActionsOutput(fd)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
