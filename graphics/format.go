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
	"math"
	"strconv"
	"strings"
)

// FormatNumber formats x for use as an operand in a content stream.
//
// Integers are written without a decimal point.  Other values are written
// with at most 10 digits after the decimal point, with trailing zeros
// removed.  Values within 1e-14 of zero are written as "0".
func FormatNumber(x float64) string {
	if math.Abs(x) <= 1e-14 {
		return "0"
	}
	if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
		return strconv.FormatInt(int64(x), 10)
	}
	s := strconv.FormatFloat(x, 'f', 10, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func formatNumbers(xx ...float64) string {
	parts := make([]string, len(xx))
	for i, x := range xx {
		parts[i] = FormatNumber(x)
	}
	return strings.Join(parts, " ")
}
