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

// Package pagespace computes the matrices which map caller coordinates into
// PDF page space.
//
// Callers give annotation coordinates in the orientation in which the page
// is displayed, optionally scaled (for example in pixels of a rastered
// page image).  The page-space matrix undoes the page rotation and the
// scaling.
package pagespace

import (
	"errors"
	"fmt"
	"sync"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/annotate/graphics"
)

// Page gives the geometry of a PDF page.
type Page interface {
	MediaBox() rect.Rect
	CropBox() (rect.Rect, bool)
	Rotation() int
}

// PageBox is the visible area of a page, in PDF default user space.
type PageBox struct {
	X1, Y1, X2, Y2 float64
}

// BoxOf returns the visible area of p.  This is the crop box if present,
// and the media box otherwise.
func BoxOf(p Page) PageBox {
	r, ok := p.CropBox()
	if !ok {
		r = p.MediaBox()
	}
	return PageBox{X1: r.LLx, Y1: r.LLy, X2: r.URx, Y2: r.URy}
}

// Width returns the horizontal extent of the box.
func (b PageBox) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box.
func (b PageBox) Height() float64 {
	return b.Y2 - b.Y1
}

// Scale gives the size of one caller unit in PDF units.
type Scale struct {
	X, Y float64
}

// Unit is the identity scale.
var Unit = Scale{X: 1, Y: 1}

// Dims are the dimensions of a rastered page image, in pixels.
type Dims struct {
	Width, Height float64
}

// InvalidRotationError is returned for page rotations which are not a
// multiple of 90 degrees.
type InvalidRotationError struct {
	Rotation int
}

func (err *InvalidRotationError) Error() string {
	return fmt.Sprintf("invalid page rotation %d", err.Rotation)
}

// NormalizeRotation maps a page rotation into the range [0, 360).
func NormalizeRotation(rotation int) (int, error) {
	if rotation%90 != 0 {
		return 0, &InvalidRotationError{Rotation: rotation}
	}
	rotation %= 360
	if rotation < 0 {
		rotation += 360
	}
	return rotation, nil
}

// Matrix returns the matrix which maps caller coordinates to page space
// for a page with the given box and rotation.
//
// Caller coordinates are first scaled, then rotated, and finally
// translated so that the rotated page extent coincides with the box.
func Matrix(box PageBox, rotation int, scale Scale) (graphics.Matrix, error) {
	rotation, err := NormalizeRotation(rotation)
	if err != nil {
		return graphics.Matrix{}, err
	}

	var tx, ty float64
	switch rotation {
	case 0:
		tx, ty = box.X1, box.Y1
	case 90:
		tx, ty = box.X2, box.Y1
	case 180:
		tx, ty = box.X2, box.Y2
	case 270:
		tx, ty = box.X1, box.Y2
	}
	return graphics.Multiply(
		graphics.Translate(tx, ty),
		graphics.Rotate(float64(rotation)),
		graphics.Scale(scale.X, scale.Y),
	), nil
}

// Config holds the scaling settings of a [Resolver].
type Config struct {
	// Scale is used for all pages without registered dimensions.
	// The zero value means [Unit].
	Scale Scale

	// Dims gives the rastered dimensions of individual pages, by page
	// index.
	Dims map[int]Dims
}

// Resolver computes page-space matrices using a scaling configuration.
// A Resolver is safe for concurrent use.
type Resolver struct {
	mu    sync.RWMutex
	scale Scale
	dims  map[int]Dims
}

// NewResolver returns a new Resolver.
func NewResolver(cfg Config) (*Resolver, error) {
	r := &Resolver{
		scale: cfg.Scale,
		dims:  make(map[int]Dims, len(cfg.Dims)),
	}
	if r.scale == (Scale{}) {
		r.scale = Unit
	}
	if !(r.scale.X > 0 && r.scale.Y > 0) {
		return nil, errInvalidScale
	}
	for page, d := range cfg.Dims {
		if err := r.SetPageDimensions(page, d.Width, d.Height); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SetPageDimensions registers the rastered dimensions of a page.
// Coordinates on this page are then given in pixels of the rastered image.
func (r *Resolver) SetPageDimensions(page int, width, height float64) error {
	if page < 0 {
		return errNegativePage
	}
	if !(width > 0 && height > 0) {
		return errInvalidDims
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dims[page] = Dims{Width: width, Height: height}
	return nil
}

// PageDimensions returns the rastered dimensions registered for a page.
func (r *Resolver) PageDimensions(page int) (Dims, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dims[page]
	return d, ok
}

// ScaleFor returns the scale for the given page.
//
// If dimensions are registered for the page, the scale maps the rastered
// image onto the page box.  For pages rotated by 90 or 270 degrees, the
// rastered image is taken to show the rotated page.
func (r *Resolver) ScaleFor(page int, box PageBox, rotation int) (Scale, error) {
	rotation, err := NormalizeRotation(rotation)
	if err != nil {
		return Scale{}, err
	}
	d, ok := r.PageDimensions(page)
	if !ok {
		return r.scale, nil
	}

	w, h := box.Width(), box.Height()
	if rotation == 90 || rotation == 270 {
		w, h = h, w
	}
	return Scale{X: w / d.Width, Y: h / d.Height}, nil
}

// PageMatrix returns the matrix which maps caller coordinates on the given
// page into page space.
func (r *Resolver) PageMatrix(page int, p Page) (graphics.Matrix, error) {
	box := BoxOf(p)
	scale, err := r.ScaleFor(page, box, p.Rotation())
	if err != nil {
		return graphics.Matrix{}, err
	}
	return Matrix(box, p.Rotation(), scale)
}

var (
	errInvalidScale = errors.New("scale factors must be positive")
	errInvalidDims  = errors.New("page dimensions must be positive")
	errNegativePage = errors.New("negative page index")
)
