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

// Package image converts raster images into PDF image XObjects.
//
// Images can be given as file names, as encoded image data, or as
// [image.Image] values.  PNG, JPEG, GIF, BMP, TIFF and WebP files are
// supported.  JPEG data is embedded without recompression where possible.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register the GIF decoder
	_ "image/png" // register the PNG decoder
	"math"
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/bmp"  // register the BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register the TIFF decoder
	_ "golang.org/x/image/webp" // register the WebP decoder

	"seehuhn.de/go/annotate/pdf"
)

// Resource is an image XObject, ready to be used as a resource of an
// appearance stream.
type Resource struct {
	Width, Height int
	XObject       *pdf.Stream
}

// Resolver loads images and converts them to XObjects.
// Images loaded from files are cached by file name.
//
// A Resolver is safe for concurrent use.
type Resolver struct {
	// MaxPixels, if positive, is the largest number of pixels embedded
	// for an image.  Larger images are scaled down.
	MaxPixels int

	// ICCProfile, if set, is used as the color space of the embedded
	// images.  The number of components of the profile must match the
	// image data.
	ICCProfile []byte

	mu    sync.Mutex
	files map[string]*Resource
}

// NewResolver returns a new Resolver with default settings.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve converts ref into an image resource.  The argument can be
// the name of an image file, the contents of an image file as a []byte,
// or an [image.Image].
func (r *Resolver) Resolve(ref any) (*Resource, error) {
	switch ref := ref.(type) {
	case string:
		return r.resolveFile(ref)
	case []byte:
		return r.fromData(ref)
	case image.Image:
		return r.fromImage(ref)
	case nil:
		return nil, errMissingImage
	default:
		return nil, fmt.Errorf("unsupported image reference type %T", ref)
	}
}

func (r *Resolver) resolveFile(fname string) (*Resource, error) {
	key := filepath.Clean(fname)

	r.mu.Lock()
	res, ok := r.files[key]
	r.mu.Unlock()
	if ok {
		return res, nil
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	res, err = r.fromData(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}

	r.mu.Lock()
	if r.files == nil {
		r.files = make(map[string]*Resource)
	}
	r.files[key] = res
	r.mu.Unlock()
	return res, nil
}

func (r *Resolver) fromData(data []byte) (*Resource, error) {
	if isJPEG(data) {
		res, err := r.passJPEG(data)
		if err != errNeedsDecode {
			return res, err
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return r.fromImage(img)
}

func (r *Resolver) fromImage(img image.Image) (*Resource, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, errEmptyImage
	}
	img = r.limitSize(img)
	return r.encodeFlate(img)
}

// limitSize scales img down if it has more than r.MaxPixels pixels.
func (r *Resolver) limitSize(img image.Image) image.Image {
	b := img.Bounds()
	if !r.tooLarge(b.Dx(), b.Dy()) {
		return img
	}

	f := math.Sqrt(float64(r.MaxPixels) / (float64(b.Dx()) * float64(b.Dy())))
	w := max(int(float64(b.Dx())*f), 1)
	h := max(int(float64(b.Dy())*f), 1)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func (r *Resolver) tooLarge(w, h int) bool {
	return r.MaxPixels > 0 && w*h > r.MaxPixels
}

var (
	errMissingImage = errors.New("missing image")
	errEmptyImage   = errors.New("empty image")
	errNeedsDecode  = errors.New("JPEG data needs to be decoded")
)
