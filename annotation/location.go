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
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate/graphics"
)

// Location gives the page and the geometry of an annotation.
//
// A location is either a rectangle, used by square, circle, text, image and
// stamp annotations, or a list of points, used by line, polygon, polyline and
// ink annotations.  Locations are values; methods return modified copies.
type Location struct {
	// Page is the zero-based page index.
	Page int

	box    rect.Rect
	points []vec.Vec2
	isRect bool
}

// Rect returns a rectangle location with corners (x1, y1) and (x2, y2).
// The corners may be given in any order.
func Rect(page int, x1, y1, x2, y2 float64) Location {
	return Location{
		Page:   page,
		box:    rect.Rect{LLx: x1, LLy: y1, URx: x2, URy: y2},
		isRect: true,
	}
}

// Points returns a point-list location.
func Points(page int, pts ...vec.Vec2) Location {
	return Location{
		Page:   page,
		points: slices.Clone(pts),
	}
}

// IsRect reports whether l is a rectangle location.
func (l Location) IsRect() bool {
	return l.isRect
}

// Rect returns the rectangle of a rectangle location, as given by the
// caller.  For point-list locations, the bounding box of the points is
// returned.
func (l Location) Rect() rect.Rect {
	if l.isRect {
		return l.box
	}
	if len(l.points) == 0 {
		return rect.Rect{}
	}
	res := rect.Rect{
		LLx: math.Inf(+1), LLy: math.Inf(+1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, p := range l.points {
		res.LLx = min(res.LLx, p.X)
		res.LLy = min(res.LLy, p.Y)
		res.URx = max(res.URx, p.X)
		res.URy = max(res.URy, p.Y)
	}
	return res
}

// Points returns a copy of the points of a point-list location.
// For rectangle locations, nil is returned.
func (l Location) Points() []vec.Vec2 {
	return slices.Clone(l.points)
}

// Sorted returns a copy of l where the rectangle corners are ordered so that
// the first corner is the lower left one.  Point-list locations are returned
// unchanged.
func (l Location) Sorted() Location {
	if !l.isRect {
		return l
	}
	b := l.box
	l.box = rect.Rect{
		LLx: min(b.LLx, b.URx),
		LLy: min(b.LLy, b.URy),
		URx: max(b.LLx, b.URx),
		URy: max(b.LLy, b.URy),
	}
	return l
}

// Transform maps the location through M.
//
// A rectangle is replaced by the axis-aligned bounding box of its image.
// For the matrices used to map into page space (rotations by multiples of
// 90 degrees, axis scaling and translation) this is exact.
func (l Location) Transform(M graphics.Matrix) Location {
	if l.isRect {
		l.box = graphics.TransformRect(l.box, M)
		return l
	}
	pts := make([]vec.Vec2, len(l.points))
	for i, p := range l.points {
		pts[i] = graphics.ApplyToPoint(p, M)
	}
	l.points = pts
	return l
}

// Validate checks that the location describes some geometry.
func (l Location) Validate() error {
	if l.Page < 0 {
		return &GeometryError{Reason: "negative page index"}
	}
	if l.isRect {
		b := l.box
		for _, x := range []float64{b.LLx, b.LLy, b.URx, b.URy} {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return &GeometryError{Reason: "rectangle coordinates must be finite"}
			}
		}
		return nil
	}
	if len(l.points) == 0 {
		return &GeometryError{Reason: "no points given"}
	}
	for _, p := range l.points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return &GeometryError{Reason: "point coordinates must be finite"}
		}
	}
	return nil
}
