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

// Ensfont-merge merges one style of LXGW WenKai Mono and MesloLGM
// Nerd Font into an ENS Font binary.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/enstw/ensfont/merge"
	"github.com/enstw/ensfont/sfnt"
)

func main() {
	wenkaiPath := flag.String("wenkai", "", "path to LXGWWenKaiMono-*.ttf")
	mesloPath := flag.String("meslo", "", "path to MesloLGMNerdFont-*.ttf")
	outputPath := flag.String("output", "", "output .ttf path")
	styleLabel := flag.String("style", "Regular",
		`font style ("Regular", "Bold", "Italic" or "Bold Italic")`)
	version := flag.String("version", "", "packaging version (e.g. 1.2.0)")
	lxgwVersion := flag.String("lxgw-version", "", "LXGW WenKai upstream version")
	nerdVersion := flag.String("nerd-version", "", "Nerd Fonts upstream version")
	flag.Parse()

	logger := log.New(os.Stderr, "", 0)

	if *wenkaiPath == "" || *mesloPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ensfont-merge -wenkai base.ttf -meslo donor.ttf -output out.ttf [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	style, err := merge.ParseStyle(*styleLabel)
	if err != nil {
		logger.Fatal(err)
	}

	logger.Printf("=== ENS Font build: %s ===", style)
	logger.Printf("loading base: %s", *wenkaiPath)
	base, err := sfnt.ReadFile(*wenkaiPath)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Printf("loading donor: %s", *mesloPath)
	donor, err := sfnt.ReadFile(*mesloPath)
	if err != nil {
		logger.Fatal(err)
	}

	opt := &merge.Options{
		Style:        style,
		Version:      *version,
		BaseVersion:  *lxgwVersion,
		DonorVersion: *nerdVersion,
	}
	_, err = merge.Merge(base, donor, opt, logger)
	if err != nil {
		logger.Fatal(err)
	}

	err = os.MkdirAll(filepath.Dir(*outputPath), 0o755)
	if err != nil {
		logger.Fatal(err)
	}
	err = base.WriteFile(*outputPath)
	if err != nil {
		logger.Fatal(err)
	}

	fi, err := os.Stat(*outputPath)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Printf("=== done: %s (%d KB) ===", *outputPath, fi.Size()/1024)
}
