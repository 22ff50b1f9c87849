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

package font

import "golang.org/x/text/unicode/norm"

// Metrics measures text set in a font.
//
// Implementations must be deterministic and safe for concurrent use.
type Metrics interface {
	// Measure returns the width of text, set at the given font size,
	// in PDF units.
	Measure(text string, size float64) float64
}

// Normalize returns the NFC normal form of text.
//
// Text is normalized before it is measured, and before it is written
// into a content stream, so that both use the same characters.
func Normalize(text string) string {
	return norm.NFC.String(text)
}
