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

package pagespace

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/annotate/graphics"
)

var approx = cmpopts.EquateApprox(1e-9, 1e-9)

type testPage struct {
	media    rect.Rect
	crop     *rect.Rect
	rotation int
}

func (p *testPage) MediaBox() rect.Rect { return p.media }

func (p *testPage) CropBox() (rect.Rect, bool) {
	if p.crop == nil {
		return rect.Rect{}, false
	}
	return *p.crop, true
}

func (p *testPage) Rotation() int { return p.rotation }

var letter = rect.Rect{URx: 612, URy: 792}

func TestMatrix(t *testing.T) {
	box := PageBox{X1: 0, Y1: 0, X2: 100, Y2: 200}
	odd := PageBox{X1: 0, Y1: -30, X2: 20, Y2: 0}
	cases := []struct {
		name     string
		box      PageBox
		rotation int
		scale    Scale
		want     graphics.Matrix
	}{
		{"identity", box, 0, Unit, graphics.Identity()},
		{"rotate90", box, 90, Unit, graphics.Matrix{0, 1, -1, 0, 100, 0}},
		{"rotate180", box, 180, Unit, graphics.Matrix{-1, 0, 0, -1, 100, 200}},
		{"rotate270", box, 270, Unit, graphics.Matrix{0, -1, 1, 0, 0, 200}},
		{"rotate-90", box, -90, Unit, graphics.Matrix{0, -1, 1, 0, 0, 200}},
		{"rotate450", box, 450, Unit, graphics.Matrix{0, 1, -1, 0, 100, 0}},
		{"scaled", box, 0, Scale{2, 4}, graphics.Matrix{2, 0, 0, 4, 0, 0}},
		{"scaled rotated", box, 90, Scale{2, 4}, graphics.Matrix{0, 2, -4, 0, 100, 0}},
		{"odd box", odd, 0, Unit, graphics.Translate(0, -30)},
		{"odd box rotated", odd, 90, Unit, graphics.Matrix{0, 1, -1, 0, 20, -30}},
		{"odd box scaled", odd, 0, Scale{2, 4}, graphics.Matrix{2, 0, 0, 4, 0, -30}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Matrix(c.box, c.rotation, c.scale)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(c.want, got, approx); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestInvalidRotation(t *testing.T) {
	for _, rot := range []int{45, 91, -10} {
		_, err := Matrix(PageBox{X2: 1, Y2: 1}, rot, Unit)
		var rErr *InvalidRotationError
		if !errors.As(err, &rErr) || rErr.Rotation != rot {
			t.Errorf("%d: expected InvalidRotationError, got %v", rot, err)
		}
	}
}

func TestBoxOf(t *testing.T) {
	p := &testPage{media: rect.Rect{LLx: 1, LLy: 1, URx: 611, URy: 791}}
	if d := cmp.Diff(PageBox{1, 1, 611, 791}, BoxOf(p)); d != "" {
		t.Error(d)
	}
	p.crop = &rect.Rect{LLx: 12, LLy: 16, URx: 600, URy: 792}
	if d := cmp.Diff(PageBox{12, 16, 600, 792}, BoxOf(p)); d != "" {
		t.Error(d)
	}
}

func TestScaleFor(t *testing.T) {
	box := BoxOf(&testPage{media: letter})
	cases := []struct {
		name     string
		cfg      Config
		rotation int
		want     Scale
	}{
		{"default", Config{}, 0, Unit},
		{"global", Config{Scale: Scale{0.48, 0.48}}, 0, Scale{0.48, 0.48}},
		{"rastered", Config{Dims: map[int]Dims{0: {1275, 3300}}}, 0, Scale{0.48, 0.24}},
		{"rastered rotated", Config{Dims: map[int]Dims{0: {3300, 1275}}}, 90, Scale{0.24, 0.48}},
		{"other page", Config{Dims: map[int]Dims{1: {3300, 1275}}}, 0, Unit},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := NewResolver(c.cfg)
			if err != nil {
				t.Fatal(err)
			}
			got, err := r.ScaleFor(0, box, c.rotation)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(c.want, got, approx); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestPageMatrix(t *testing.T) {
	r, err := NewResolver(Config{})
	if err != nil {
		t.Fatal(err)
	}
	err = r.SetPageDimensions(0, 1224, 1584)
	if err != nil {
		t.Fatal(err)
	}

	M, err := r.PageMatrix(0, &testPage{media: letter})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(graphics.Scale(0.5, 0.5), M, approx); d != "" {
		t.Error(d)
	}

	M, err = r.PageMatrix(1, &testPage{media: letter, rotation: 90})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(graphics.Matrix{0, 1, -1, 0, 612, 0}, M, approx); d != "" {
		t.Error(d)
	}

	_, err = r.PageMatrix(0, &testPage{media: letter, rotation: 30})
	var rErr *InvalidRotationError
	if !errors.As(err, &rErr) {
		t.Errorf("expected InvalidRotationError, got %v", err)
	}
}

func TestResolverErrors(t *testing.T) {
	if _, err := NewResolver(Config{Scale: Scale{-1, 1}}); err == nil {
		t.Error("negative scale accepted")
	}
	if _, err := NewResolver(Config{Dims: map[int]Dims{0: {0, 10}}}); err == nil {
		t.Error("zero width accepted")
	}
	r, err := NewResolver(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SetPageDimensions(-1, 10, 10); err == nil {
		t.Error("negative page accepted")
	}
	if _, ok := r.PageDimensions(0); ok {
		t.Error("unexpected dimensions")
	}
}
