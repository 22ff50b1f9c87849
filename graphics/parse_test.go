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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRoundTrip(t *testing.T) {
	s := NewContentStream(
		Save,
		GraphicsState{Name: "PdfAnnotatorGS"},
		StrokeColor{R: 1, G: 0, B: 0.5},
		StrokeWidth{Width: 2.25},
		DashPattern{Array: []float64{3, 2}, Phase: 1},
		LineCap{Style: 1},
		LineJoin{Style: 2},
		MiterLimit{Limit: 4},
		FillColor{R: 0, G: 1, B: 0},
		Move{X: 10, Y: 10},
		Line{X: 20, Y: 10},
		Bezier{X1: 1, Y1: 2, X2: 3, Y2: 4, X3: 5, Y3: 6},
		Close,
		StrokeAndFill,
		Rect{X: 0, Y: 0, Width: 5, Height: 5},
		Clip,
		EndPath,
		CTM{M: Multiply(Translate(10, 10), Scale(20, 30))},
		XObject{Name: "Image"},
		BeginText,
		Font{Name: "F1", Size: 12},
		TextMatrix{M: Translate(1, 2)},
		Text{Text: `a (nested) \ string`},
		Text{Text: "café"},
		Text{Text: "☃ snow"},
		Text{Text: "two\nlines\r"},
		EndText,
		Restore,
	)
	text := s.Resolve()

	parsed, err := ParseContentStream(text)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(s.Commands(), parsed.Commands()); d != "" {
		t.Error(d)
	}
	if got := parsed.Resolve(); got != text {
		t.Errorf("got %q, want %q", got, text)
	}
}

func TestParseWhitespaceAndComments(t *testing.T) {
	text := "% a comment\n0 0 0 RG\r\n1 w\t10 10 10 10 re\nS % trailing"
	s, err := ParseContentStream(text)
	if err != nil {
		t.Fatal(err)
	}
	want := "0 0 0 RG 1 w 10 10 10 10 re S"
	if got := s.Resolve(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"1 2 RG",           // too few operands
		"1 2 3 4 RG",       // too many operands
		"/F1 Tj",           // wrong operand type
		"1 2 3 xyz",        // unknown operator
		"10 10 m 20",       // operands without operator
		"(unterminated Tj", // unterminated string
		"[1 [2]] 0 d",      // nested array
		"1.2.3 w",          // malformed number
	}
	for _, text := range cases {
		_, err := ParseContentStream(text)
		var pErr *ParseError
		if !errors.As(err, &pErr) {
			t.Errorf("%q: expected ParseError, got %v", text, err)
		}
	}
}

func TestParseOctalEscape(t *testing.T) {
	s, err := ParseContentStream(`(\101\102C\n) Tj`)
	if err != nil {
		t.Fatal(err)
	}
	want := []Command{Text{Text: "ABC\n"}}
	if d := cmp.Diff(want, s.Commands()); d != "" {
		t.Error(d)
	}
}

func TestParseLineBreaks(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(one \\\ntwo) Tj", "one two"},
		{"(one \\\r\ntwo) Tj", "one two"},
		{"(one \\\rtwo) Tj", "one two"},
		{"(one\r\ntwo) Tj", "one\ntwo"},
		{"(one\rtwo) Tj", "one\ntwo"},
		{"(one\ntwo) Tj", "one\ntwo"},
	}
	for _, c := range cases {
		s, err := ParseContentStream(c.in)
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		want := []Command{Text{Text: c.want}}
		if d := cmp.Diff(want, s.Commands()); d != "" {
			t.Errorf("%q: %s", c.in, d)
		}

		// the parsed text survives another round trip
		again, err := ParseContentStream(s.Resolve())
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(s.Commands(), again.Commands()); d != "" {
			t.Errorf("%q: %s", c.in, d)
		}
	}
}
