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
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate/pdf"
)

// Command is a single operator in a content stream, together with its
// operands.
type Command interface {
	// Operator returns the PDF operator name, e.g. "re" or "Tj".
	Operator() string

	// Resolve returns the PDF content stream representation of the command.
	Resolve() string

	// Transform returns a copy of the command with all coordinates mapped
	// by M.  Commands without coordinates are returned unchanged.
	Transform(M Matrix) Command
}

// StrokeColor sets the RGB stroking color.
type StrokeColor struct{ R, G, B float64 }

func (c StrokeColor) Operator() string { return "RG" }
func (c StrokeColor) Resolve() string { return formatNumbers(c.R, c.G, c.B) + " RG" }
func (c StrokeColor) Transform(Matrix) Command { return c }

// FillColor sets the RGB non-stroking color.
type FillColor struct{ R, G, B float64 }

func (c FillColor) Operator() string { return "rg" }
func (c FillColor) Resolve() string { return formatNumbers(c.R, c.G, c.B) + " rg" }
func (c FillColor) Transform(Matrix) Command { return c }

// StrokeWidth sets the line width.
type StrokeWidth struct{ Width float64 }

func (c StrokeWidth) Operator() string { return "w" }
func (c StrokeWidth) Resolve() string { return FormatNumber(c.Width) + " w" }
func (c StrokeWidth) Transform(Matrix) Command { return c }

// LineCap sets the line cap style (0 = butt, 1 = round, 2 = projecting).
type LineCap struct{ Style int }

func (c LineCap) Operator() string { return "J" }
func (c LineCap) Resolve() string { return fmt.Sprintf("%d J", c.Style) }
func (c LineCap) Transform(Matrix) Command { return c }

// LineJoin sets the line join style (0 = miter, 1 = round, 2 = bevel).
type LineJoin struct{ Style int }

func (c LineJoin) Operator() string { return "j" }
func (c LineJoin) Resolve() string { return fmt.Sprintf("%d j", c.Style) }
func (c LineJoin) Transform(Matrix) Command { return c }

// MiterLimit sets the miter limit.
type MiterLimit struct{ Limit float64 }

func (c MiterLimit) Operator() string { return "M" }
func (c MiterLimit) Resolve() string { return FormatNumber(c.Limit) + " M" }
func (c MiterLimit) Transform(Matrix) Command { return c }

// DashPattern sets the line dash pattern.
type DashPattern struct {
	Array []float64
	Phase float64
}

func (c DashPattern) Operator() string { return "d" }

func (c DashPattern) Resolve() string {
	return "[" + formatNumbers(c.Array...) + "] " + FormatNumber(c.Phase) + " d"
}

func (c DashPattern) Transform(Matrix) Command { return c }

// simple is a command without operands.
type simple string

func (c simple) Operator() string { return string(c) }
func (c simple) Resolve() string { return string(c) }
func (c simple) Transform(Matrix) Command { return c }

// Commands without operands.
var (
	BeginText     Command = simple("BT")
	EndText       Command = simple("ET")
	Stroke        Command = simple("S")
	StrokeAndFill Command = simple("B")
	Fill          Command = simple("f")
	FillEvenOdd   Command = simple("f*")
	Save          Command = simple("q")
	Restore       Command = simple("Q")
	Close         Command = simple("h")
	EndPath       Command = simple("n")
	Clip          Command = simple("W")
)

// Font selects a font resource and a font size.
type Font struct {
	Name pdf.Name
	Size float64
}

func (c Font) Operator() string { return "Tf" }

func (c Font) Resolve() string {
	return pdf.Format(c.Name) + " " + FormatNumber(c.Size) + " Tf"
}

func (c Font) Transform(Matrix) Command { return c }

// Text shows a text string.
//
// The string is encoded using [pdf.ShowString].
type Text struct{ Text string }

func (c Text) Operator() string { return "Tj" }
func (c Text) Resolve() string  { return pdf.Format(pdf.ShowString(c.Text)) + " Tj" }
func (c Text) Transform(Matrix) Command { return c }

// XObject paints an external object.
type XObject struct{ Name pdf.Name }

func (c XObject) Operator() string { return "Do" }
func (c XObject) Resolve() string { return pdf.Format(c.Name) + " Do" }
func (c XObject) Transform(Matrix) Command { return c }

// GraphicsState activates an external graphics state dictionary.
type GraphicsState struct{ Name pdf.Name }

func (c GraphicsState) Operator() string { return "gs" }
func (c GraphicsState) Resolve() string { return pdf.Format(c.Name) + " gs" }
func (c GraphicsState) Transform(Matrix) Command { return c }

// Rect appends a rectangle to the current path.
type Rect struct{ X, Y, Width, Height float64 }

func (c Rect) Operator() string { return "re" }

func (c Rect) Resolve() string {
	return formatNumbers(c.X, c.Y, c.Width, c.Height) + " re"
}

func (c Rect) Transform(M Matrix) Command {
	p := ApplyToPoint(vec.Vec2{X: c.X, Y: c.Y}, M)
	v := ApplyToVector(vec.Vec2{X: c.Width, Y: c.Height}, M)
	return Rect{X: p.X, Y: p.Y, Width: v.X, Height: v.Y}
}

// Move begins a new subpath.
type Move struct{ X, Y float64 }

func (c Move) Operator() string { return "m" }
func (c Move) Resolve() string { return formatNumbers(c.X, c.Y) + " m" }

func (c Move) Transform(M Matrix) Command {
	p := ApplyToPoint(vec.Vec2{X: c.X, Y: c.Y}, M)
	return Move{X: p.X, Y: p.Y}
}

// Line appends a straight line segment to the current path.
type Line struct{ X, Y float64 }

func (c Line) Operator() string { return "l" }
func (c Line) Resolve() string { return formatNumbers(c.X, c.Y) + " l" }

func (c Line) Transform(M Matrix) Command {
	p := ApplyToPoint(vec.Vec2{X: c.X, Y: c.Y}, M)
	return Line{X: p.X, Y: p.Y}
}

// Bezier appends a cubic Bézier curve to the current path.
type Bezier struct{ X1, Y1, X2, Y2, X3, Y3 float64 }

func (c Bezier) Operator() string { return "c" }

func (c Bezier) Resolve() string {
	return formatNumbers(c.X1, c.Y1, c.X2, c.Y2, c.X3, c.Y3) + " c"
}

func (c Bezier) Transform(M Matrix) Command {
	p1 := ApplyToPoint(vec.Vec2{X: c.X1, Y: c.Y1}, M)
	p2 := ApplyToPoint(vec.Vec2{X: c.X2, Y: c.Y2}, M)
	p3 := ApplyToPoint(vec.Vec2{X: c.X3, Y: c.Y3}, M)
	return Bezier{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y, X3: p3.X, Y3: p3.Y}
}

// QuadraticToCubic converts the quadratic Bézier curve from start to end
// with the given control point into an equivalent cubic curve.
func QuadraticToCubic(start, control, end vec.Vec2) Bezier {
	cp1 := vec.Vec2{
		X: start.X + 2*(control.X-start.X)/3,
		Y: start.Y + 2*(control.Y-start.Y)/3,
	}
	cp2 := vec.Vec2{
		X: end.X + 2*(control.X-end.X)/3,
		Y: end.Y + 2*(control.Y-end.Y)/3,
	}
	return Bezier{X1: cp1.X, Y1: cp1.Y, X2: cp2.X, Y2: cp2.Y, X3: end.X, Y3: end.Y}
}

// CTM modifies the current transformation matrix.
type CTM struct{ M Matrix }

func (c CTM) Operator() string { return "cm" }
func (c CTM) Resolve() string { return formatNumbers(c.M[:]...) + " cm" }

func (c CTM) Transform(M Matrix) Command {
	return CTM{M: Multiply(M, c.M)}
}

// TextMatrix sets the text matrix and the text line matrix.
type TextMatrix struct{ M Matrix }

func (c TextMatrix) Operator() string { return "Tm" }
func (c TextMatrix) Resolve() string { return formatNumbers(c.M[:]...) + " Tm" }

func (c TextMatrix) Transform(M Matrix) Command {
	return TextMatrix{M: Multiply(M, c.M)}
}
