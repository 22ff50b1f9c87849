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
	"maps"
	"math"
	"slices"

	"seehuhn.de/go/annotate/graphics"
	"seehuhn.de/go/annotate/layout"
	"seehuhn.de/go/annotate/pdf"
)

// Color is an RGB or RGBA color.  All components are in the range [0, 1].
// The optional fourth component is the opacity.
type Color []float64

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// RGBA returns a color with the given opacity.
func RGBA(r, g, b, alpha float64) Color {
	return Color{r, g, b, alpha}
}

// Black is the default stroke color.
var Black = RGB(0, 0, 0)

func (c Color) rgb() (r, g, b float64) {
	if len(c) < 3 {
		return 0, 0, 0
	}
	return c[0], c[1], c[2]
}

// alpha returns the opacity of c and whether it differs from 1.
func (c Color) alpha() (float64, bool) {
	if len(c) < 4 || c[3] >= 1 {
		return 1, false
	}
	return c[3], true
}

func (c Color) asArray() pdf.Array {
	r, g, b := c.rgb()
	return pdf.NumberArray(r, g, b)
}

func (c Color) validate(field string) error {
	if len(c) != 3 && len(c) != 4 {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("need 3 or 4 components, got %d", len(c)),
		}
	}
	for _, x := range c {
		if !(x >= 0 && x <= 1) {
			return &ValidationError{
				Field:  field,
				Reason: fmt.Sprintf("component %g not in [0, 1]", x),
			}
		}
	}
	return nil
}

// Appearance collects all settings which influence how an annotation is
// drawn.
//
// Appearance values are immutable by convention: use [Appearance.With] to
// obtain a modified copy.  The zero value is not useful; start from
// [DefaultAppearance].
type Appearance struct {
	StrokeColor Color
	StrokeWidth float64

	// BorderStyle is one of S (solid), D (dashed), B (beveled), I (inset)
	// and U (underline).
	BorderStyle pdf.Name

	// DashArray can only be used with border style D.
	DashArray []float64
	DashPhase float64

	// LineCap and LineJoin are nil when not set.
	LineCap  *int
	LineJoin *int

	// MiterLimit is 0 when not set.
	MiterLimit float64

	// StrokeTransparency and FillTransparency are opacities in [0, 1].  If
	// set, they take precedence over the alpha component of the colors.
	StrokeTransparency *float64
	Fill               Color
	FillTransparency   *float64

	// Fields for text annotations.
	Content      string
	FontSize     float64
	TextAlign    layout.Align
	TextBaseline layout.Baseline
	LineSpacing  float64
	WrapText     bool

	// Image is the image shown by image and stamp annotations: a file
	// name, an image.Image, or the contents of an image file.
	Image any

	// Stream, if set, replaces the generated appearance stream.
	Stream *graphics.ContentStream

	// Additional resources, referenced by name from Stream.
	XObjects       map[pdf.Name]pdf.Object
	GraphicsStates map[pdf.Name]*GraphicsState
	Fonts          map[pdf.Name]pdf.Object

	// CornerRadius gives rounded corners to square annotations.
	CornerRadius float64

	// Icon is written as the /Name entry of stamp annotations.
	Icon pdf.Name
}

// DefaultAppearance returns the appearance used when no options are given:
// a solid black line of width 1, and left-aligned, vertically centred 12pt
// text which wraps at the box boundary.
func DefaultAppearance() Appearance {
	return Appearance{
		StrokeColor:  Black,
		StrokeWidth:  1,
		BorderStyle:  "S",
		FontSize:     12,
		TextAlign:    layout.Left,
		TextBaseline: layout.Middle,
		LineSpacing:  1.2,
		WrapText:     true,
	}
}

// An Option modifies an [Appearance].
type Option func(*Appearance)

// With returns a copy of a with the given options applied.  The receiver is
// not modified.
func (a Appearance) With(opts ...Option) Appearance {
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// WithStrokeColor sets the line color.
func WithStrokeColor(c Color) Option {
	c = slices.Clone(c)
	return func(a *Appearance) { a.StrokeColor = c }
}

// WithStrokeWidth sets the line width.
func WithStrokeWidth(w float64) Option {
	return func(a *Appearance) { a.StrokeWidth = w }
}

// WithBorderStyle sets the border style name.
func WithBorderStyle(style pdf.Name) Option {
	return func(a *Appearance) { a.BorderStyle = style }
}

// WithDash sets a dash pattern and switches the border style to D.
func WithDash(phase float64, array ...float64) Option {
	array = slices.Clone(array)
	return func(a *Appearance) {
		a.BorderStyle = "D"
		a.DashArray = array
		a.DashPhase = phase
	}
}

// WithLineCap sets the line cap style (0 butt, 1 round, 2 square).
func WithLineCap(style int) Option {
	return func(a *Appearance) { a.LineCap = &style }
}

// WithLineJoin sets the line join style (0 miter, 1 round, 2 bevel).
func WithLineJoin(style int) Option {
	return func(a *Appearance) { a.LineJoin = &style }
}

// WithMiterLimit sets the miter limit.
func WithMiterLimit(limit float64) Option {
	return func(a *Appearance) { a.MiterLimit = limit }
}

// WithStrokeTransparency sets the opacity used for stroking.
func WithStrokeTransparency(alpha float64) Option {
	return func(a *Appearance) { a.StrokeTransparency = &alpha }
}

// WithFill sets the fill color.  For text annotations this is the text
// color.  A nil color removes the fill.
func WithFill(c Color) Option {
	c = slices.Clone(c)
	return func(a *Appearance) { a.Fill = c }
}

// WithFillTransparency sets the opacity used for filling.
func WithFillTransparency(alpha float64) Option {
	return func(a *Appearance) { a.FillTransparency = &alpha }
}

// WithContent sets the text of a text annotation.
func WithContent(text string) Option {
	return func(a *Appearance) { a.Content = text }
}

// WithFontSize sets the font size in PDF units.
func WithFontSize(size float64) Option {
	return func(a *Appearance) { a.FontSize = size }
}

// WithTextAlign sets the horizontal text alignment.
func WithTextAlign(align layout.Align) Option {
	return func(a *Appearance) { a.TextAlign = align }
}

// WithTextBaseline sets the vertical text anchor.
func WithTextBaseline(baseline layout.Baseline) Option {
	return func(a *Appearance) { a.TextBaseline = baseline }
}

// WithLineSpacing sets the distance between baselines, as a multiple of the
// font size.
func WithLineSpacing(spacing float64) Option {
	return func(a *Appearance) { a.LineSpacing = spacing }
}

// WithWrapText controls whether long lines are broken at the box boundary.
func WithWrapText(wrap bool) Option {
	return func(a *Appearance) { a.WrapText = wrap }
}

// WithImage sets the image for image and stamp annotations.
func WithImage(ref any) Option {
	return func(a *Appearance) { a.Image = ref }
}

// WithStream replaces the generated appearance stream.
func WithStream(s *graphics.ContentStream) Option {
	return func(a *Appearance) { a.Stream = s }
}

// WithXObject adds an XObject resource for use by an explicit stream.
func WithXObject(name pdf.Name, obj pdf.Object) Option {
	return func(a *Appearance) {
		a.XObjects = maps.Clone(a.XObjects)
		if a.XObjects == nil {
			a.XObjects = make(map[pdf.Name]pdf.Object)
		}
		a.XObjects[name] = obj
	}
}

// WithGraphicsState adds an ExtGState resource for use by an explicit stream.
func WithGraphicsState(name pdf.Name, gs *GraphicsState) Option {
	return func(a *Appearance) {
		a.GraphicsStates = maps.Clone(a.GraphicsStates)
		if a.GraphicsStates == nil {
			a.GraphicsStates = make(map[pdf.Name]*GraphicsState)
		}
		a.GraphicsStates[name] = gs
	}
}

// WithFont adds a font resource.  Registering a font under the name
// [TextFontName] replaces the Helvetica font used by text annotations.
func WithFont(name pdf.Name, obj pdf.Object) Option {
	return func(a *Appearance) {
		a.Fonts = maps.Clone(a.Fonts)
		if a.Fonts == nil {
			a.Fonts = make(map[pdf.Name]pdf.Object)
		}
		a.Fonts[name] = obj
	}
}

// WithCornerRadius sets the corner radius for square annotations.
func WithCornerRadius(r float64) Option {
	return func(a *Appearance) { a.CornerRadius = r }
}

// WithIcon sets the icon name of a stamp annotation, for example "Approved".
func WithIcon(name pdf.Name) Option {
	return func(a *Appearance) { a.Icon = name }
}

// Validate checks that all settings are in range and consistent.
// The returned error, if any, is a [*ValidationError].
func (a Appearance) Validate() error {
	if err := a.StrokeColor.validate("StrokeColor"); err != nil {
		return err
	}
	if !(a.StrokeWidth >= 0) || math.IsInf(a.StrokeWidth, 0) {
		return &ValidationError{Field: "StrokeWidth", Reason: "must be non-negative"}
	}

	switch a.BorderStyle {
	case "S", "D", "B", "I", "U":
		// pass
	default:
		return &ValidationError{
			Field:  "BorderStyle",
			Reason: fmt.Sprintf("unknown style %q", string(a.BorderStyle)),
		}
	}
	if len(a.DashArray) > 0 {
		if a.BorderStyle != "D" {
			return &ValidationError{Field: "DashArray", Reason: "requires border style D"}
		}
		allZero := true
		for _, d := range a.DashArray {
			if !(d >= 0) {
				return &ValidationError{Field: "DashArray", Reason: "entries must be non-negative"}
			}
			if d != 0 {
				allZero = false
			}
		}
		if allZero {
			return &ValidationError{Field: "DashArray", Reason: "entries must not all be zero"}
		}
	}

	if a.LineCap != nil && (*a.LineCap < 0 || *a.LineCap > 2) {
		return &ValidationError{Field: "LineCap", Reason: fmt.Sprintf("invalid style %d", *a.LineCap)}
	}
	if a.LineJoin != nil && (*a.LineJoin < 0 || *a.LineJoin > 2) {
		return &ValidationError{Field: "LineJoin", Reason: fmt.Sprintf("invalid style %d", *a.LineJoin)}
	}
	if a.MiterLimit != 0 && !(a.MiterLimit >= 1) {
		return &ValidationError{Field: "MiterLimit", Reason: "must be at least 1"}
	}
	if err := checkUnit("StrokeTransparency", a.StrokeTransparency); err != nil {
		return err
	}

	if a.Fill != nil {
		if err := a.Fill.validate("Fill"); err != nil {
			return err
		}
	}
	if err := checkUnit("FillTransparency", a.FillTransparency); err != nil {
		return err
	}

	if !(a.FontSize > 0) {
		return &ValidationError{Field: "FontSize", Reason: "must be positive"}
	}
	if !(a.LineSpacing > 0) {
		return &ValidationError{Field: "LineSpacing", Reason: "must be positive"}
	}
	if a.TextAlign < layout.Left || a.TextAlign > layout.Right {
		return &ValidationError{Field: "TextAlign", Reason: "unknown value " + a.TextAlign.String()}
	}
	if a.TextBaseline < layout.Top || a.TextBaseline > layout.Bottom {
		return &ValidationError{Field: "TextBaseline", Reason: "unknown value " + a.TextBaseline.String()}
	}
	if !(a.CornerRadius >= 0) {
		return &ValidationError{Field: "CornerRadius", Reason: "must be non-negative"}
	}

	for name, gs := range a.GraphicsStates {
		if gs == nil {
			return &ValidationError{Field: "GraphicsStates", Reason: "missing state " + string(name)}
		}
		if err := gs.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func checkUnit(field string, x *float64) error {
	if x != nil && !(*x >= 0 && *x <= 1) {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("%g not in [0, 1]", *x)}
	}
	return nil
}

// strokeAlpha returns the stroking opacity, if it differs from 1.
func (a Appearance) strokeAlpha() (float64, bool) {
	if a.StrokeTransparency != nil {
		return *a.StrokeTransparency, true
	}
	return a.StrokeColor.alpha()
}

func (a Appearance) fillAlpha() (float64, bool) {
	if a.FillTransparency != nil {
		return *a.FillTransparency, true
	}
	return a.Fill.alpha()
}

// graphicsState returns the internal graphics state which implements the
// settings without a direct content stream operator.
func (a Appearance) graphicsState() *GraphicsState {
	gs := &GraphicsState{}
	if a.LineCap != nil {
		gs.Set |= StateLineCap
		gs.LineCap = *a.LineCap
	}
	if a.LineJoin != nil {
		gs.Set |= StateLineJoin
		gs.LineJoin = *a.LineJoin
	}
	if a.MiterLimit != 0 {
		gs.Set |= StateMiterLimit
		gs.MiterLimit = a.MiterLimit
	}
	if len(a.DashArray) > 0 {
		gs.Set |= StateDash
		gs.DashArray = slices.Clone(a.DashArray)
		gs.DashPhase = a.DashPhase
	}
	if alpha, ok := a.strokeAlpha(); ok {
		gs.Set |= StateStrokeTransparency
		gs.StrokeTransparency = alpha
	}
	if alpha, ok := a.fillAlpha(); ok {
		gs.Set |= StateFillTransparency
		gs.FillTransparency = alpha
	}
	return gs
}
