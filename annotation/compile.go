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

	"seehuhn.de/go/annotate/font"
	"seehuhn.de/go/annotate/graphics"
	"seehuhn.de/go/annotate/image"
	"seehuhn.de/go/annotate/pdf"
)

// ImageResolver turns the image reference of an [Appearance] into an image
// XObject.
type ImageResolver interface {
	Resolve(ref any) (*image.Resource, error)
}

// Context holds the information a compiler needs beyond the location and
// the appearance.
type Context struct {
	// Matrix maps caller coordinates to page space.  The zero value is
	// treated as the identity.
	Matrix graphics.Matrix

	// Version is the PDF version of the output.  Version 0 allows all
	// features.
	Version pdf.Version

	// Metrics is used to lay out text annotations.  If this is nil,
	// Helvetica metrics are used.
	Metrics font.Metrics

	// Images loads the images of image and stamp annotations.  If this is
	// nil, a new [image.Resolver] is used.
	Images ImageResolver
}

func (ctx *Context) matrix() graphics.Matrix {
	if ctx == nil || ctx.Matrix == (graphics.Matrix{}) {
		return graphics.Identity()
	}
	return ctx.Matrix
}

func (ctx *Context) version() pdf.Version {
	if ctx == nil {
		return 0
	}
	return ctx.Version
}

func (ctx *Context) metrics() font.Metrics {
	if ctx == nil || ctx.Metrics == nil {
		return font.Helvetica()
	}
	return ctx.Metrics
}

func (ctx *Context) images() ImageResolver {
	if ctx == nil || ctx.Images == nil {
		return image.NewResolver()
	}
	return ctx.Images
}

// Resources lists the resources needed by a compiled appearance stream,
// beyond the ones given in the [Appearance].
type Resources struct {
	ExtGState pdf.Dict
	XObject   pdf.Dict
	Font      pdf.Dict
}

// Compiled is the result of compiling an annotation.
// All coordinates are in page space.
type Compiled struct {
	// Rect is the annotation rectangle.
	Rect rect.Rect

	// Stream is the appearance stream.
	Stream *graphics.ContentStream

	// Extra holds kind-specific entries for the annotation dictionary.
	Extra pdf.Dict

	Resources Resources
}

// Compile converts an annotation description into page-space geometry,
// an appearance stream and the kind-specific dictionary entries.
//
// The location and appearance are validated first.  If app.Stream is set,
// it replaces the generated appearance stream; the stream is mapped into
// page space using the context matrix.
func Compile(kind Kind, loc Location, app Appearance, ctx *Context) (*Compiled, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if err := app.graphicsState().CheckVersion(ctx.version()); err != nil {
		return nil, err
	}

	var c *Compiled
	var err error
	switch kind {
	case Square, Circle:
		c, err = compileRect(kind, loc, app, ctx)
	case Line, Polygon, Polyline, Ink:
		c, err = compilePoints(kind, loc, app, ctx)
	case Text:
		c, err = compileText(loc, app, ctx)
	case Image:
		c, err = compileImage(loc, app, ctx)
	case Stamp:
		c, err = compileStamp(loc, app, ctx)
	default:
		return nil, &UnsupportedKindError{Kind: kind}
	}
	if err != nil {
		return nil, err
	}

	if app.Stream != nil {
		c.Stream = app.Stream.Transform(ctx.matrix())
	}
	if err := c.Stream.Validate(ctx.version()); err != nil {
		return nil, err
	}
	return c, nil
}

func requireRect(kind Kind, loc Location) error {
	if kind.IsRect() && !loc.IsRect() {
		return &GeometryError{Kind: kind, Reason: "need a rectangle location"}
	} else if !kind.IsRect() && loc.IsRect() {
		return &GeometryError{Kind: kind, Reason: "need a point-list location"}
	}
	return nil
}

// setAppearanceState adds the commands which set up the graphics state for
// drawing with app.
func setAppearanceState(s *graphics.ContentStream, app Appearance) {
	if app.graphicsState().HasContent() {
		s.Add(graphics.GraphicsState{Name: GraphicsStateName})
	}
	r, g, b := app.StrokeColor.rgb()
	s.Add(graphics.StrokeColor{R: r, G: g, B: b})
	s.Add(graphics.StrokeWidth{Width: app.StrokeWidth})
	if app.Fill != nil {
		r, g, b := app.Fill.rgb()
		s.Add(graphics.FillColor{R: r, G: g, B: b})
	}
}

// strokeOrFill returns the path painting operator for app.
func strokeOrFill(app Appearance) graphics.Command {
	if app.Fill != nil {
		return graphics.StrokeAndFill
	}
	return graphics.Stroke
}

// borderEntries returns the /BS and /C entries shared by most kinds.
func borderEntries(app Appearance) (pdf.Dict, error) {
	bs, err := app.borderStyle().AsDict()
	if err != nil {
		return nil, &ValidationError{Field: "BorderStyle", Reason: err.Error()}
	}
	return pdf.Dict{
		"BS": bs,
		"C":  app.StrokeColor.asArray(),
	}, nil
}

// pad enlarges r by d in all directions.
func pad(r rect.Rect, d float64) rect.Rect {
	return rect.Rect{LLx: r.LLx - d, LLy: r.LLy - d, URx: r.URx + d, URy: r.URy + d}
}
