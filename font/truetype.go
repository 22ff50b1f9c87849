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

package font

import (
	"bytes"
	"io"
	"os"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
)

// TrueType measures text using the glyph widths of a TrueType or OpenType
// font.
type TrueType struct {
	Font *sfnt.Font

	cmap cmap.Subtable
}

// NewTrueType returns a [TrueType] for the given font.
// The font must have a usable "cmap" table.
func NewTrueType(f *sfnt.Font) (*TrueType, error) {
	subtable, err := f.CMapTable.GetBest()
	if err != nil {
		return nil, err
	}
	return &TrueType{
		Font: f,
		cmap: subtable,
	}, nil
}

// LoadTrueType reads a TrueType or OpenType font from r.
func LoadTrueType(r io.Reader) (*TrueType, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return NewTrueType(f)
}

// OpenTrueType reads a TrueType or OpenType font file.
func OpenTrueType(path string) (*TrueType, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer fd.Close()

	f, err := LoadTrueType(fd)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return f, nil
}

// GoRegular returns the metrics of the Go Regular font.
func GoRegular() *TrueType {
	return goRegular()
}

var goRegular = sync.OnceValue(func() *TrueType {
	f, err := LoadTrueType(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err) // should not happen
	}
	return f
})

// Measure implements the [Metrics] interface.
//
// Characters which are not covered by the font are measured using the
// width of the .notdef glyph.
func (f *TrueType) Measure(text string, size float64) float64 {
	var width float64
	for _, r := range Normalize(text) {
		gid := f.cmap.Lookup(r)
		width += f.Font.GlyphWidthPDF(gid)
	}
	return width * size / 1000
}
