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

package graphics

import (
	"errors"

	"seehuhn.de/go/annotate/pdf"
)

type opInfo struct {
	Since      pdf.Version // PDF version when introduced
	Deprecated pdf.Version // PDF version when deprecated (0 if not deprecated)
}

// operators lists the operators which can be represented by a [Command].
var operators = map[string]*opInfo{
	// General Graphics State
	"q":  {Since: pdf.V1_0},
	"Q":  {Since: pdf.V1_0},
	"cm": {Since: pdf.V1_0},
	"w":  {Since: pdf.V1_0},
	"J":  {Since: pdf.V1_0},
	"j":  {Since: pdf.V1_0},
	"M":  {Since: pdf.V1_0},
	"d":  {Since: pdf.V1_0},
	"gs": {Since: pdf.V1_2},

	// Path Construction
	"m":  {Since: pdf.V1_0},
	"l":  {Since: pdf.V1_0},
	"c":  {Since: pdf.V1_0},
	"h":  {Since: pdf.V1_0},
	"re": {Since: pdf.V1_0},

	// Path Painting
	"S":  {Since: pdf.V1_0},
	"f":  {Since: pdf.V1_0},
	"f*": {Since: pdf.V1_0},
	"B":  {Since: pdf.V1_0},
	"n":  {Since: pdf.V1_0},

	// Clipping Paths
	"W": {Since: pdf.V1_0},

	// Text Objects
	"BT": {Since: pdf.V1_0},
	"ET": {Since: pdf.V1_0},

	// Text State, Positioning and Showing
	"Tf": {Since: pdf.V1_0},
	"Tm": {Since: pdf.V1_0},
	"Tj": {Since: pdf.V1_0},

	// Colour
	"RG": {Since: pdf.V1_0},
	"rg": {Since: pdf.V1_0},

	// XObjects
	"Do": {Since: pdf.V1_0},
}

// Errors returned by [ContentStream.Validate].
var (
	ErrUnknown    = errors.New("unknown operator")
	ErrVersion    = errors.New("operator not supported in this PDF version")
	ErrDeprecated = errors.New("deprecated operator")
)

func checkOperator(name string, v pdf.Version) error {
	info, ok := operators[name]
	if !ok {
		return ErrUnknown
	}
	if v == 0 {
		return nil
	}
	if v < info.Since {
		return ErrVersion
	}
	if info.Deprecated != 0 && v >= info.Deprecated {
		return ErrDeprecated
	}
	return nil
}
