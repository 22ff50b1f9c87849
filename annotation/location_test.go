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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate/graphics"
)

func TestLocationSorted(t *testing.T) {
	l := Rect(2, 30, 40, 10, 20).Sorted()
	want := rect.Rect{LLx: 10, LLy: 20, URx: 30, URy: 40}
	if d := cmp.Diff(want, l.Rect()); d != "" {
		t.Error(d)
	}
	if l.Page != 2 || !l.IsRect() {
		t.Errorf("unexpected location %+v", l)
	}
}

func TestLocationPoints(t *testing.T) {
	pts := []vec.Vec2{{X: 3, Y: 1}, {X: -1, Y: 4}, {X: 5, Y: 9}}
	l := Points(0, pts...)
	pts[0].X = 100 // must not affect l

	want := rect.Rect{LLx: -1, LLy: 1, URx: 5, URy: 9}
	if d := cmp.Diff(want, l.Rect()); d != "" {
		t.Error(d)
	}
	got := l.Points()
	got[1].Y = 0
	if l.Points()[1].Y != 4 {
		t.Error("Points returned internal slice")
	}
	if l.Sorted().Points()[0].X != 3 {
		t.Error("Sorted changed a point list")
	}
}

func TestLocationTransform(t *testing.T) {
	M := graphics.Multiply(graphics.Translate(100, 0), graphics.Rotate(90))

	r := Rect(0, 10, 20, 30, 60)
	if d := cmp.Diff(rect.Rect{LLx: 40, LLy: 10, URx: 80, URy: 30}, r.Transform(M).Rect(), approx); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(rect.Rect{LLx: 10, LLy: 20, URx: 30, URy: 60}, r.Rect()); d != "" {
		t.Error("original modified: " + d)
	}

	p := Points(0, vec.Vec2{X: 1, Y: 2})
	want := []vec.Vec2{{X: 98, Y: 1}}
	if d := cmp.Diff(want, p.Transform(M).Points(), approx); d != "" {
		t.Error(d)
	}
}

func TestLocationValidate(t *testing.T) {
	bad := []Location{
		Points(0),
		Rect(0, 0, math.NaN(), 1, 1),
		Points(0, vec.Vec2{X: math.Inf(1)}),
		Rect(-3, 0, 0, 1, 1),
	}
	for i, l := range bad {
		var gErr *GeometryError
		if err := l.Validate(); !errors.As(err, &gErr) {
			t.Errorf("%d: expected GeometryError, got %v", i, err)
		}
	}
	if err := Points(0, vec.Vec2{}).Validate(); err != nil {
		t.Error(err)
	}
}

func TestParseKind(t *testing.T) {
	for k := Square; k <= Stamp; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if k, err := ParseKind("FreeText"); err != nil || k != Text {
		t.Errorf("ParseKind(FreeText) = %v, %v", k, err)
	}
	_, err := ParseKind("highlight")
	var kErr *UnsupportedKindError
	if !errors.As(err, &kErr) {
		t.Errorf("expected UnsupportedKindError, got %v", err)
	}
}

func TestFlags(t *testing.T) {
	f := FlagPrint | FlagLocked
	if s := f.String(); s != "Print|Locked" {
		t.Errorf("got %q", s)
	}
	g, err := ParseFlags("print", "Locked")
	if err != nil || g != f {
		t.Errorf("ParseFlags = %v, %v", g, err)
	}
	if _, err := ParseFlags("Sticky"); err == nil {
		t.Error("expected error for unknown flag")
	}
}
