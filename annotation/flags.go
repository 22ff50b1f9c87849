// seehuhn.de/go/annotate - add annotations to PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

package annotation

import (
	"fmt"
	"strings"
)

// Flags is the value of the /F entry of an annotation dictionary.
type Flags uint16

// The annotation flags, with the PDF version which introduced them.
const (
	FlagInvisible      Flags = 1 << 0 // hide if no handler is available
	FlagHidden         Flags = 1 << 1 // PDF 1.2
	FlagPrint          Flags = 1 << 2 // PDF 1.2
	FlagNoZoom         Flags = 1 << 3 // PDF 1.3
	FlagNoRotate       Flags = 1 << 4 // PDF 1.3
	FlagNoView         Flags = 1 << 5 // PDF 1.3
	FlagReadOnly       Flags = 1 << 6 // PDF 1.3
	FlagLocked         Flags = 1 << 7 // PDF 1.4
	FlagToggleNoView   Flags = 1 << 8 // PDF 1.5
	FlagLockedContents Flags = 1 << 9 // PDF 1.7
)

var flagNames = []string{
	"Invisible", "Hidden", "Print", "NoZoom", "NoRotate",
	"NoView", "ReadOnly", "Locked", "ToggleNoView", "LockedContents",
}

// String lists the names of the set flags, separated by "|".
func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if rest := f &^ (1<<len(flagNames) - 1); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%04x", uint16(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseFlags converts a list of flag names, as returned by [Flags.String],
// into a Flags value.  Names are matched case-insensitively.
func ParseFlags(names ...string) (Flags, error) {
	var res Flags
	for _, name := range names {
		found := false
		for i, fName := range flagNames {
			if strings.EqualFold(fName, strings.TrimSpace(name)) {
				res |= 1 << i
				found = true
				break
			}
		}
		if !found {
			return 0, &ValidationError{Field: "F", Reason: "unknown flag " + name}
		}
	}
	return res, nil
}
