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

	"seehuhn.de/go/annotate/graphics"
	"seehuhn.de/go/annotate/pdf"
)

// ImageName is the XObject resource name of the image drawn by image and
// stamp annotations.
const ImageName pdf.Name = "Image"

// imageStream returns a stream which draws the image scaled to fill box.
// Drawing is clipped to the box.
func imageStream(box rect.Rect, app Appearance) *graphics.ContentStream {
	s := &graphics.ContentStream{}
	s.Add(graphics.Save)
	setAppearanceState(s, app)
	s.Extend(
		graphics.Rect{X: box.LLx, Y: box.LLy, Width: box.Dx(), Height: box.Dy()},
		graphics.Clip,
		graphics.EndPath,
		graphics.CTM{M: graphics.Multiply(
			graphics.Translate(box.LLx, box.LLy),
			graphics.Scale(box.Dx(), box.Dy()),
		)},
		graphics.XObject{Name: ImageName},
		graphics.Restore,
	)
	return s
}

func loadImage(app Appearance, ctx *Context) (pdf.Dict, error) {
	res, err := ctx.images().Resolve(app.Image)
	if err != nil {
		return nil, &ImageError{Err: err}
	}
	return pdf.Dict{ImageName: res.XObject}, nil
}

// compileImage compiles image annotations.  These are written as square
// annotations whose appearance shows the image.
func compileImage(loc Location, app Appearance, ctx *Context) (*Compiled, error) {
	if err := requireRect(Image, loc); err != nil {
		return nil, err
	}
	if app.Image == nil {
		return nil, &ValidationError{Field: "Image", Reason: "required for image annotations"}
	}
	box := loc.Sorted().Rect()
	if box.Dx() <= 0 || box.Dy() <= 0 {
		return nil, &GeometryError{Kind: Image, Reason: "empty rectangle"}
	}

	xObjects, err := loadImage(app, ctx)
	if err != nil {
		return nil, err
	}
	extra, err := borderEntries(app)
	if err != nil {
		return nil, err
	}

	M := ctx.matrix()
	return &Compiled{
		Rect:      graphics.TransformRect(box, M),
		Stream:    imageStream(box, app).Transform(M),
		Extra:     extra,
		Resources: Resources{XObject: xObjects},
	}, nil
}

// compileStamp compiles rubber stamp annotations.  The appearance is either
// given explicitly as a stream, or is an image.
func compileStamp(loc Location, app Appearance, ctx *Context) (*Compiled, error) {
	if err := requireRect(Stamp, loc); err != nil {
		return nil, err
	}
	if app.Stream == nil && app.Image == nil {
		return nil, &ValidationError{
			Field:  "Stream",
			Reason: "stamp annotations need an appearance stream or an image",
		}
	}
	box := loc.Sorted().Rect()
	if box.Dx() <= 0 || box.Dy() <= 0 {
		return nil, &GeometryError{Kind: Stamp, Reason: "empty rectangle"}
	}

	M := ctx.matrix()
	c := &Compiled{
		Rect:   graphics.TransformRect(box, M),
		Stream: &graphics.ContentStream{},
		Extra:  pdf.Dict{},
	}
	if app.Image != nil {
		xObjects, err := loadImage(app, ctx)
		if err != nil {
			return nil, err
		}
		c.Resources.XObject = xObjects
		c.Stream = imageStream(box, app).Transform(M)
	}
	if app.Icon != "" {
		c.Extra["Name"] = app.Icon
	}
	return c, nil
}
