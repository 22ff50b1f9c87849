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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate/graphics"
	"seehuhn.de/go/annotate/pdf"
)

// bezierCircle is the distance of the control points from the end points,
// relative to the radius, for a four-segment Bezier circle.
const bezierCircle = 0.552284749831

// compileRect compiles square and circle annotations.
//
// The rectangle is mapped into page space before the path is constructed,
// so that the padding for the line width is measured in page units.
// Rounded corners are the exception: their radius is given in caller
// units, so this path is built in caller space and then transformed.
func compileRect(kind Kind, loc Location, app Appearance, ctx *Context) (*Compiled, error) {
	if err := requireRect(kind, loc); err != nil {
		return nil, err
	}
	r := loc.Transform(ctx.matrix()).Sorted().Rect()
	sw := app.StrokeWidth

	bbox := pad(r, sw)
	if bbox.Dx() <= 0 || bbox.Dy() <= 0 {
		return nil, &GeometryError{Kind: kind, Reason: "empty rectangle"}
	}

	s := &graphics.ContentStream{}
	setAppearanceState(s, app)
	switch {
	case kind == Circle:
		addCircle(s, r)
	case app.CornerRadius > 0:
		path := &graphics.ContentStream{}
		addRoundedRect(path, loc.Sorted().Rect(), app.CornerRadius)
		s.Extend(path.Transform(ctx.matrix()).Commands()...)
	default:
		s.Add(graphics.Rect{X: r.LLx, Y: r.LLy, Width: r.Dx(), Height: r.Dy()})
	}
	s.Add(strokeOrFill(app))

	extra, err := borderEntries(app)
	if err != nil {
		return nil, err
	}
	if app.Fill != nil && pdf.CheckVersion(ctx.version(), "interior color", pdf.V1_4) == nil {
		extra["IC"] = app.Fill.asArray()
	}
	extra["RD"] = pdf.NumberArray(sw/2, sw/2, sw/2, sw/2)

	return &Compiled{
		Rect:   bbox,
		Stream: s,
		Extra:  extra,
	}, nil
}

// addCircle adds an ellipse inscribed in r, starting at the bottom centre
// and going counter-clockwise.
func addCircle(s *graphics.ContentStream, r rect.Rect) {
	x1, y1, x2, y2 := r.LLx, r.LLy, r.URx, r.URy
	bx := x1 + (x2-x1)/2
	ly := y1 + (y2-y1)/2
	k := bezierCircle

	s.Extend(
		graphics.Move{X: bx, Y: y1},
		graphics.Bezier{
			X1: bx + (x2-bx)*k, Y1: y1,
			X2: x2, Y2: ly - (ly-y1)*k,
			X3: x2, Y3: ly,
		},
		graphics.Bezier{
			X1: x2, Y1: ly + (y2-ly)*k,
			X2: bx + (x2-bx)*k, Y2: y2,
			X3: bx, Y3: y2,
		},
		graphics.Bezier{
			X1: bx - (bx-x1)*k, Y1: y2,
			X2: x1, Y2: ly + (y2-ly)*k,
			X3: x1, Y3: ly,
		},
		graphics.Bezier{
			X1: x1, Y1: ly - (ly-y1)*k,
			X2: bx - (bx-x1)*k, Y2: y1,
			X3: bx, Y3: y1,
		},
		graphics.Close,
	)
}

// addRoundedRect adds the outline of r with corners rounded by quadratic
// curves.  The radius is limited to half the width and height.
func addRoundedRect(s *graphics.ContentStream, r rect.Rect, radius float64) {
	x, y, w, h := r.LLx, r.LLy, r.Dx(), r.Dy()
	rx := min(radius, w/2)
	ry := min(radius, h/2)

	corner := func(from, ctrl, to vec.Vec2) graphics.Command {
		return graphics.QuadraticToCubic(from, ctrl, to)
	}
	s.Extend(
		graphics.Move{X: x + rx, Y: y},
		graphics.Line{X: x + w - rx, Y: y},
		corner(vec.Vec2{X: x + w - rx, Y: y}, vec.Vec2{X: x + w, Y: y}, vec.Vec2{X: x + w, Y: y + ry}),
		graphics.Line{X: x + w, Y: y + h - ry},
		corner(vec.Vec2{X: x + w, Y: y + h - ry}, vec.Vec2{X: x + w, Y: y + h}, vec.Vec2{X: x + w - rx, Y: y + h}),
		graphics.Line{X: x + rx, Y: y + h},
		corner(vec.Vec2{X: x + rx, Y: y + h}, vec.Vec2{X: x, Y: y + h}, vec.Vec2{X: x, Y: y + h - ry}),
		graphics.Line{X: x, Y: y + ry},
		corner(vec.Vec2{X: x, Y: y + ry}, vec.Vec2{X: x, Y: y}, vec.Vec2{X: x + rx, Y: y}),
		graphics.Close,
	)
}
