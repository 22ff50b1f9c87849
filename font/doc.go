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

// Package font provides font metrics for laying out text in annotations.
//
// A [Metrics] value measures the width of a string of text at a given font
// size.  Three implementations are available: the built-in metrics of the
// standard Helvetica font ([Helvetica]), metrics read from AFM files
// ([ReadAFM]), and metrics of TrueType and OpenType fonts ([LoadTrueType],
// [OpenTrueType], [GoRegular]).
//
// Loaded fonts can be shared between annotations using a [Cache].
package font
