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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/annotate/pdf"
)

func TestStreamResolve(t *testing.T) {
	s := NewContentStream(
		StrokeColor{R: 0, G: 0, B: 0},
		StrokeWidth{Width: 1},
		Rect{X: 10, Y: 10, Width: 10, Height: 10},
		Stroke,
	)
	want := "0 0 0 RG 1 w 10 10 10 10 re S"
	if got := s.Resolve(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	var empty ContentStream
	if got := empty.Resolve(); got != "" {
		t.Errorf("empty stream resolved to %q", got)
	}
	var nilStream *ContentStream
	if got := nilStream.Resolve(); got != "" {
		t.Errorf("nil stream resolved to %q", got)
	}
}

// TestStreamTransformDistributes checks that transforming a stream is the
// same as transforming each command separately.
func TestStreamTransformDistributes(t *testing.T) {
	cmds := []Command{
		Move{X: 1, Y: 2},
		Line{X: 3, Y: 4},
		Bezier{X1: 5, Y1: 6, X2: 7, Y2: 8, X3: 9, Y3: 10},
		Rect{X: 1, Y: 1, Width: 2, Height: 3},
		Line{X: -1, Y: 0.5},
	}
	s := NewContentStream(cmds...)
	for i, M := range testMatrices {
		got := s.Transform(M).Resolve()

		parts := make([]string, len(cmds))
		for j, cmd := range cmds {
			parts[j] = cmd.Transform(M).Resolve()
		}
		want := strings.Join(parts, " ")
		if got != want {
			t.Errorf("mat%d: got %q, want %q", i, got, want)
		}
	}
}

func TestStreamTransformIsCopy(t *testing.T) {
	s := NewContentStream(Move{X: 1, Y: 1})
	before := s.Resolve()
	_ = s.Transform(Scale(2, 2))
	if after := s.Resolve(); after != before {
		t.Errorf("original stream changed: %q -> %q", before, after)
	}
}

func TestStreamCommands(t *testing.T) {
	s := &ContentStream{}
	s.Add(Save)
	s.Extend(Move{X: 0, Y: 0}, Line{X: 1, Y: 1}, Stroke)
	s.Add(Restore)

	if s.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", s.Len())
	}
	cmds := s.Commands()
	cmds[0] = Stroke // must not modify s
	want := []Command{Save, Move{X: 0, Y: 0}, Line{X: 1, Y: 1}, Stroke, Restore}
	if d := cmp.Diff(want, s.Commands()); d != "" {
		t.Error(d)
	}
}

func TestStreamValidate(t *testing.T) {
	s := NewContentStream(GraphicsState{Name: "GS"}, Rect{Width: 1, Height: 1}, Stroke)
	if err := s.Validate(pdf.V1_7); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := s.Validate(0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := s.Validate(pdf.V1_1); !errors.Is(err, ErrVersion) {
		t.Errorf("expected ErrVersion, got %v", err)
	}

	bad := NewContentStream(simple("BI"))
	if err := bad.Validate(pdf.V1_7); !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
}
