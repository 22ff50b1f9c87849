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
	"io"
	"sync"

	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/postscript/afm"
	"seehuhn.de/go/postscript/type1/names"
)

// Type1 measures text using the metrics of a Type 1 font.
// Characters are mapped to glyphs using WinAnsiEncoding.
type Type1 struct {
	Metrics *afm.Metrics

	// winAnsi maps WinAnsiEncoding codes to glyph names.
	winAnsi []string
}

// NewType1 returns a [Type1] which measures text using the given font
// metrics.
func NewType1(metrics *afm.Metrics) *Type1 {
	return &Type1{
		Metrics: metrics,
		winAnsi: winAnsiEncoding(metrics),
	}
}

// winAnsiEncoding returns the glyph names for the 256 codes of
// WinAnsiEncoding.  Codes which have no glyph in the font map to ".notdef".
func winAnsiEncoding(metrics *afm.Metrics) []string {
	enc := make([]string, 256)
	for code := range enc {
		enc[code] = ".notdef"

		r := charmap.Windows1252.DecodeByte(byte(code))
		name, ok := winAnsiAliases[r]
		if !ok {
			name = names.FromUnicode(string(r))
		}
		if _, ok := metrics.Glyphs[name]; ok {
			enc[code] = name
		}
	}
	return enc
}

// winAnsiAliases lists the WinAnsiEncoding characters for which the
// standard fonts use a different glyph name than the Adobe Glyph List.
var winAnsiAliases = map[rune]string{
	0x00A0: "space",
	0x00AD: "hyphen",
	0x00B2: "twosuperior",
	0x00B3: "threesuperior",
	0x00B9: "onesuperior",
}

// ReadAFM reads font metrics from an AFM file.
func ReadAFM(r io.Reader) (*Type1, error) {
	metrics, err := afm.Read(r)
	if err != nil {
		return nil, err
	}
	if len(metrics.Glyphs) == 0 {
		return nil, &InvalidFontError{
			SubSystem: "font/afm",
			Reason:    "no glyphs",
		}
	}
	return NewType1(metrics), nil
}

// Helvetica returns the metrics of the standard Helvetica font.
// These are used for the default font of free text annotations.
func Helvetica() *Type1 {
	return helvetica()
}

var helvetica = sync.OnceValue(func() *Type1 {
	metrics := &afm.Metrics{
		Glyphs:   make(map[string]*afm.GlyphInfo, len(helveticaWidths)+1),
		FontName: "Helvetica",
	}
	metrics.Glyphs[".notdef"] = &afm.GlyphInfo{}
	for name, width := range helveticaWidths {
		metrics.Glyphs[name] = &afm.GlyphInfo{WidthX: width}
	}

	F := NewType1(metrics)
	metrics.Encoding = F.winAnsi
	return F
})

// Measure implements the [Metrics] interface.
//
// Characters which are not in WinAnsiEncoding are measured using the width
// of the .notdef glyph, or zero if the font has no such glyph.
func (f *Type1) Measure(text string, size float64) float64 {
	var width float64
	for _, r := range Normalize(text) {
		name := ".notdef"
		if code, ok := charmap.Windows1252.EncodeRune(r); ok {
			name = f.winAnsi[code]
		}
		if g := f.Metrics.Glyphs[name]; g != nil {
			width += g.WidthX
		}
	}
	return width * size / 1000
}
