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
	"strconv"
)

// ValidationError is returned when an appearance or metadata setting is
// out of range or inconsistent with other settings.
type ValidationError struct {
	Field  string
	Reason string
}

func (err *ValidationError) Error() string {
	return "invalid " + err.Field + ": " + err.Reason
}

// GeometryError is returned when a location cannot be used for the
// requested annotation kind.
type GeometryError struct {
	Kind   Kind
	Reason string
}

func (err *GeometryError) Error() string {
	if err.Kind == 0 {
		return "invalid location: " + err.Reason
	}
	return fmt.Sprintf("invalid location for %s annotation: %s", err.Kind, err.Reason)
}

// UnsupportedKindError is returned for annotation kinds which have no
// compiler.
type UnsupportedKindError struct {
	Name string
	Kind Kind
}

func (err *UnsupportedKindError) Error() string {
	if err.Name != "" {
		return "unsupported annotation kind " + strconv.Quote(err.Name)
	}
	return "unsupported annotation kind " + err.Kind.String()
}

// ImageError is returned when the image for an image or stamp annotation
// cannot be loaded.
type ImageError struct {
	Err error
}

func (err *ImageError) Error() string {
	return "loading image: " + err.Err.Error()
}

func (err *ImageError) Unwrap() error {
	return err.Err
}
