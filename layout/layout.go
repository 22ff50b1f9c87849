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

// Package layout implements line breaking and placement of text inside
// a rectangle.
package layout

import (
	"fmt"

	"seehuhn.de/go/geom/rect"
)

// Padding is the horizontal inset, in PDF units, between the edge of the
// text box and the text.
const Padding = 1

// Align describes the horizontal alignment of text lines.
type Align int

// Supported horizontal alignments.
const (
	Left Align = iota
	Center
	Right
)

func (a Align) String() string {
	switch a {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("layout.Align(%d)", int(a))
	}
}

// ParseAlign converts "left", "center" or "right" into an [Align] value.
func ParseAlign(s string) (Align, error) {
	switch s {
	case "left":
		return Left, nil
	case "center":
		return Center, nil
	case "right":
		return Right, nil
	}
	return 0, &UnknownValueError{Kind: "text alignment", Value: s}
}

// Baseline describes the vertical anchoring of a block of text lines.
type Baseline int

// Supported vertical anchors.
const (
	Top Baseline = iota
	Middle
	Bottom
)

func (b Baseline) String() string {
	switch b {
	case Top:
		return "top"
	case Middle:
		return "middle"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("layout.Baseline(%d)", int(b))
	}
}

// ParseBaseline converts "top", "middle" or "bottom" into a [Baseline]
// value.
func ParseBaseline(s string) (Baseline, error) {
	switch s {
	case "top":
		return Top, nil
	case "middle":
		return Middle, nil
	case "bottom":
		return Bottom, nil
	}
	return 0, &UnknownValueError{Kind: "text baseline", Value: s}
}

// UnknownValueError is returned when parsing an unknown alignment or
// baseline keyword.
type UnknownValueError struct {
	Kind  string
	Value string
}

func (err *UnknownValueError) Error() string {
	return fmt.Sprintf("unknown %s %q", err.Kind, err.Value)
}

// BaselineY returns the baseline y-coordinates of n lines of text inside
// box.  The distance between consecutive baselines is fontSize*lineSpacing.
//
// For Top, the first baseline is one line height below the top of the box.
// For Bottom, the last line is placed one line height above the bottom,
// less the font size.  For Middle, the block of lines is centred around the
// middle of the box.
func BaselineY(n int, box rect.Rect, fontSize, lineSpacing float64, baseline Baseline) []float64 {
	ls := fontSize * lineSpacing

	var first float64
	switch baseline {
	case Top:
		first = box.URy - ls
	case Middle:
		mid := (box.LLy + box.URy) / 2
		first = mid - (ls - fontSize) + float64(n-1)/2*ls
	default: // Bottom
		first = box.LLy + (ls - fontSize) + ls*float64(n-1)
	}

	res := make([]float64, n)
	for i := range res {
		res[i] = first - float64(i)*ls
	}
	return res
}

// LineX returns the x-coordinate where a line of the given width starts.
func LineX(lineWidth float64, box rect.Rect, align Align) float64 {
	w := box.URx - box.LLx
	switch align {
	case Center:
		return box.LLx + (w-lineWidth)/2 - Padding
	case Right:
		return box.LLx + w - lineWidth - Padding
	default: // Left
		return box.LLx + Padding
	}
}
