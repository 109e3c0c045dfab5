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
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

func utf16Encode(s string) []byte {
	res, err := utf16be.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return res
}

func utf16Decode(b []byte) string {
	res, err := utf16be.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(res)
}

func macEncode(s string) []byte {
	enc := encoding.ReplaceUnsupported(charmap.Macintosh.NewEncoder())
	res, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return res
}

func macDecode(b []byte) string {
	res, err := charmap.Macintosh.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(res)
}
