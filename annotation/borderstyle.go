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
	"errors"

	"seehuhn.de/go/annotate/pdf"
)

// BorderStyle describes the /BS entry of an annotation.
type BorderStyle struct {
	// Width is the border width in points.
	// If 0, no border is drawn.
	Width float64

	// Style is the border style.
	//  - "S" (Solid) is the default.
	//  - "D" (Dashed) specifies a dashed line.
	//  - "B" (Beveled) specifies a beveled line.
	//  - "I" (Inset) specifies an inset line.
	//  - "U" (Underline) specifies an underline.
	Style pdf.Name

	// DashArray (optional) defines a pattern of dashes and gaps for drawing
	// the border when Style is "D".  If this is empty, viewers use [3].
	DashArray []float64
}

func (a Appearance) borderStyle() *BorderStyle {
	return &BorderStyle{
		Width:     a.StrokeWidth,
		Style:     a.BorderStyle,
		DashArray: a.DashArray,
	}
}

// AsDict returns the border style dictionary.
func (b *BorderStyle) AsDict() (pdf.Dict, error) {
	if b.Width < 0 {
		return nil, errNegativeWidth
	}

	style := b.Style
	if style == "" {
		style = "S"
	}
	d := pdf.Dict{
		"Type": pdf.Name("Border"),
		"W":    pdf.Number(b.Width),
		"S":    style,
	}

	if style == "D" {
		if len(b.DashArray) > 0 {
			a := make(pdf.Array, len(b.DashArray))
			for i, x := range b.DashArray {
				if x < 0 {
					return nil, errNegativeDash
				}
				a[i] = pdf.Number(x)
			}
			d["D"] = a
		}
	} else if b.DashArray != nil {
		return nil, errUnexpectedDash
	}

	return d, nil
}

var (
	errNegativeWidth  = errors.New("negative border width")
	errNegativeDash   = errors.New("negative dash value")
	errUnexpectedDash = errors.New("dash array requires border style D")
)
