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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate/graphics"
	"seehuhn.de/go/annotate/pdf"
)

// compilePoints compiles line, polygon, polyline and ink annotations.
// The points are mapped into page space first.
func compilePoints(kind Kind, loc Location, app Appearance, ctx *Context) (*Compiled, error) {
	if err := requireRect(kind, loc); err != nil {
		return nil, err
	}
	v := ctx.version()
	switch kind {
	case Polygon:
		if err := pdf.CheckVersion(v, "polygon annotations", pdf.V1_5); err != nil {
			return nil, err
		}
	case Polyline:
		if err := pdf.CheckVersion(v, "polyline annotations", pdf.V1_5); err != nil {
			return nil, err
		}
	}

	pp := loc.Transform(ctx.matrix()).Points()
	if kind == Line && len(pp) != 2 {
		return nil, &GeometryError{Kind: kind, Reason: "need exactly two points"}
	}

	bbox := pad(Points(loc.Page, pp...).Rect(), app.StrokeWidth)
	if bbox.Dx() <= 0 || bbox.Dy() <= 0 {
		return nil, &GeometryError{Kind: kind, Reason: "empty bounding box"}
	}

	s := &graphics.ContentStream{}
	s.Add(graphics.Save)
	setAppearanceState(s, app)
	s.Add(graphics.Move{X: pp[0].X, Y: pp[0].Y})
	for _, p := range pp[1:] {
		s.Add(graphics.Line{X: p.X, Y: p.Y})
	}
	switch kind {
	case Line:
		s.Add(strokeOrFill(app))
	case Polygon:
		s.Add(graphics.Close)
		s.Add(strokeOrFill(app))
	default:
		s.Add(graphics.Stroke)
	}
	s.Add(graphics.Restore)

	extra, err := borderEntries(app)
	if err != nil {
		return nil, err
	}
	switch kind {
	case Line:
		extra["L"] = flatten(pp)
	case Polygon:
		extra["Vertices"] = flatten(pp)
		if app.Fill != nil {
			extra["IC"] = app.Fill.asArray()
		}
	case Polyline:
		extra["Vertices"] = flatten(pp)
	case Ink:
		extra["InkList"] = pdf.Array{flatten(pp)}
	}

	return &Compiled{
		Rect:   bbox,
		Stream: s,
		Extra:  extra,
	}, nil
}

func flatten(pp []vec.Vec2) pdf.Array {
	res := make(pdf.Array, 0, 2*len(pp))
	for _, p := range pp {
		res = append(res, pdf.Number(p.X), pdf.Number(p.Y))
	}
	return res
}
