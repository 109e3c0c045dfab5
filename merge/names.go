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

package merge

import (
	"fmt"
	"strings"

	"github.com/enstw/ensfont/sfnt"
	"github.com/enstw/ensfont/sfnt/name"
)

// Identity strings of the merged font.  The OFL forbids reusing the
// upstream reserved names "LXGW", "霞鶩", "Klee" and "Meslo"; the
// derivative's own reserved names are "ENS Font" and
// "Elegant Nerd Sino".
const (
	familyName   = "ENS Font"
	manufacturer = "enstw"
	vendorURL    = "https://ens.tw/font"
	licenseURL   = "https://openfontlicense.org"

	sampleText = "Elegant Nerd Sino Font：終端機字體預覽，English + 繁體中文 + 1234567890。"
)

const copyrightNotice = "ENS Font (Elegant Nerd Sino) is a derivative work.\n" +
	"CJK glyphs: LXGW WenKai Mono (c) 2021 Xiaocheng Liao, SIL OFL 1.1\n" +
	"Latin/ASCII glyphs: MesloLGM (c) 2009-2013 Andre Berg, Apache License 2.0\n" +
	"PUA icons: Nerd Fonts (c) 2014 Ryan L McIntyre, MIT License\n" +
	"Compiled font: (c) 2026 enstw (https://ens.tw/font), SIL OFL 1.1\n" +
	"Reserved Font Names: \"ENS Font\" and \"Elegant Nerd Sino\".\n" +
	"The names \"LXGW\", \"霞鶩\", \"Klee\", and \"Meslo\" are NOT used by this derivative."

const licenseText = "This Font Software is licensed under the SIL Open Font License, Version 1.1. " +
	"This license is available with a FAQ at: https://openfontlicense.org. " +
	"ASCII/Latin glyphs derived from MesloLGM are used under the Apache License 2.0."

// setMetadata replaces the identity records of the name table for the
// merged font.  Records are written for Windows zh-TW, Windows en-US
// and Mac Traditional Chinese, so that font managers classify the
// family as Traditional Chinese while English-only applications still
// see a usable name.
func setMetadata(f *sfnt.Font, opt *Options) {
	style := opt.Style.String()
	psStyle := strings.ReplaceAll(style, " ", "")
	fullName := familyName + " " + style
	psName := "ENSFont-" + psStyle
	versionStr := fmt.Sprintf("Version %s; lxgw%s; nerd%s",
		opt.Version, opt.BaseVersion, opt.DonorVersion)
	uniqueID := versionStr + "; " + psName

	entries := []struct {
		id    uint16
		value string
	}{
		{name.IDCopyright, copyrightNotice},
		{name.IDFamily, familyName},
		{name.IDSubfamily, style},
		{name.IDUniqueID, uniqueID},
		{name.IDFullName, fullName},
		{name.IDVersion, versionStr},
		{name.IDPostScriptName, psName},
		{name.IDManufacturer, manufacturer},
		{name.IDVendorURL, vendorURL},
		{name.IDLicense, licenseText},
		{name.IDLicenseURL, licenseURL},
		{name.IDSampleText, sampleText},
	}

	// The builder owns the name IDs it writes.
	replaced := make(map[uint16]bool, len(entries))
	for _, e := range entries {
		replaced[e.id] = true
	}
	var kept name.Table
	for _, rec := range f.Name {
		if !replaced[rec.NameID] {
			kept = append(kept, rec)
		}
	}

	triples := []struct {
		platformID, encodingID, languageID uint16
	}{
		{3, 1, name.LangChineseTW},
		{3, 1, name.LangEnglishUS},
		{1, 0, name.LangMacChineseTrad},
	}
	for _, e := range entries {
		for _, tr := range triples {
			kept = append(kept, name.Record{
				PlatformID: tr.platformID,
				EncodingID: tr.encodingID,
				LanguageID: tr.languageID,
				NameID:     e.id,
				Value:      e.value,
			})
		}
	}

	f.Name = kept
}
