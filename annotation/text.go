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
	"strings"

	"seehuhn.de/go/annotate/font"
	"seehuhn.de/go/annotate/graphics"
	"seehuhn.de/go/annotate/layout"
	"seehuhn.de/go/annotate/pdf"
)

// TextFontName is the font resource name used by text annotations.
const TextFontName pdf.Name = "PDFANNOTATORFONT1"

// helveticaDict is the font resource used by text annotations, unless the
// caller supplies a font with the name [TextFontName].
func helveticaDict() pdf.Dict {
	return pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name("Helvetica"),
		"Encoding": pdf.Name("WinAnsiEncoding"),
	}
}

// textColor returns the color used for text.  This is the fill color if
// set, and the stroke color otherwise.
func (a Appearance) textColor() graphics.FillColor {
	c := a.Fill
	if c == nil {
		c = a.StrokeColor
	}
	r, g, b := c.rgb()
	return graphics.FillColor{R: r, G: g, B: b}
}

// compileText compiles free text annotations.
//
// The text is laid out in caller coordinates and the resulting stream is
// then mapped into page space, so that rotated pages get rotated text.
func compileText(loc Location, app Appearance, ctx *Context) (*Compiled, error) {
	if err := requireRect(Text, loc); err != nil {
		return nil, err
	}
	box := loc.Sorted().Rect()
	if box.Dx() <= 0 || box.Dy() <= 0 {
		return nil, &GeometryError{Kind: Text, Reason: "empty rectangle"}
	}

	content := font.Normalize(app.Content)
	metrics := ctx.metrics()
	fontSize := app.FontSize
	measure := func(s string) float64 {
		return metrics.Measure(s, fontSize)
	}

	var lines []string
	if app.WrapText {
		lines = layout.Wrap(content, box.Dx(), measure)
	} else {
		lines = layout.Split(content)
	}
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	ys := layout.BaselineY(len(lines), box, fontSize, app.LineSpacing, app.TextBaseline)

	s := &graphics.ContentStream{}
	s.Extend(
		graphics.Save,
		graphics.BeginText,
		app.textColor(),
		graphics.Font{Name: TextFontName, Size: fontSize},
	)
	if app.graphicsState().HasContent() {
		s.Add(graphics.GraphicsState{Name: GraphicsStateName})
	}
	for i, line := range lines {
		x := layout.LineX(measure(line), box, app.TextAlign)
		s.Extend(
			graphics.TextMatrix{M: graphics.Translate(x, ys[i])},
			graphics.Text{Text: line},
		)
	}
	s.Extend(graphics.EndText, graphics.Restore)

	da := graphics.NewContentStream(
		app.textColor(),
		graphics.Font{Name: TextFontName, Size: fontSize},
	)
	extra := pdf.Dict{
		"Contents": pdf.TextString(content),
		"DA":       pdf.String(da.Resolve()),
		"C":        pdf.Array{},
		"BS": pdf.Dict{
			"Type": pdf.Name("Border"),
			"W":    pdf.Integer(0),
			"S":    pdf.Name("S"),
		},
	}

	M := ctx.matrix()
	return &Compiled{
		Rect:   graphics.TransformRect(box, M),
		Stream: s.Transform(M),
		Extra:  extra,
		Resources: Resources{
			Font: pdf.Dict{TextFontName: helveticaDict()},
		},
	}, nil
}
