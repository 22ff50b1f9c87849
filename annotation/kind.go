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
	"strconv"
	"strings"

	"seehuhn.de/go/annotate/pdf"
)

// Kind selects the compiler used for an annotation.
type Kind int

// These are the supported annotation kinds.
const (
	Square Kind = iota + 1
	Circle
	Line
	Polygon
	Polyline
	Ink
	Text
	Image
	Stamp
)

var kindNames = map[Kind]string{
	Square:   "square",
	Circle:   "circle",
	Line:     "line",
	Polygon:  "polygon",
	Polyline: "polyline",
	Ink:      "ink",
	Text:     "text",
	Image:    "image",
	Stamp:    "stamp",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Subtype returns the value of the /Subtype entry in the annotation
// dictionary.  Image annotations are written as square annotations
// carrying an image appearance.
func (k Kind) Subtype() pdf.Name {
	switch k {
	case Square, Image:
		return "Square"
	case Circle:
		return "Circle"
	case Line:
		return "Line"
	case Polygon:
		return "Polygon"
	case Polyline:
		return "PolyLine"
	case Ink:
		return "Ink"
	case Text:
		return "FreeText"
	case Stamp:
		return "Stamp"
	}
	return ""
}

// IsRect reports whether annotations of this kind are placed using a
// rectangle location.
func (k Kind) IsRect() bool {
	switch k {
	case Square, Circle, Text, Image, Stamp:
		return true
	}
	return false
}

// ParseKind converts a kind name like "square" or "polyline" into a Kind.
// The comparison ignores case.
func ParseKind(name string) (Kind, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "freetext" {
		return Text, nil
	}
	for k, kName := range kindNames {
		if kName == lower {
			return k, nil
		}
	}
	return 0, &UnsupportedKindError{Name: name}
}
