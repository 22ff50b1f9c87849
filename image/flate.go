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

package image

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"image/color"

	"seehuhn.de/go/icc"

	"seehuhn.de/go/annotate/pdf"
)

// encodeFlate converts img into an 8-bit image XObject with FlateDecode
// compression.  Transparency is written as a soft mask.
func (r *Resolver) encodeFlate(img image.Image) (*Resource, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	channels := 3
	if isGray(img.ColorModel()) {
		channels = 1
	}
	cs, err := r.colorSpace(channels)
	if err != nil {
		return nil, err
	}

	pix := make([]byte, 0, width*height*channels)
	alpha := make([]byte, 0, width*height)
	opaque := true
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if channels == 1 {
				pix = append(pix, c.R)
			} else {
				pix = append(pix, c.R, c.G, c.B)
			}
			alpha = append(alpha, c.A)
			if c.A != 0xFF {
				opaque = false
			}
		}
	}

	data, err := deflate(pix)
	if err != nil {
		return nil, err
	}
	dict := pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(width),
		"Height":           pdf.Integer(height),
		"ColorSpace":       cs,
		"BitsPerComponent": pdf.Integer(8),
		"Filter":           pdf.Name("FlateDecode"),
	}

	if !opaque {
		maskData, err := deflate(alpha)
		if err != nil {
			return nil, err
		}
		dict["SMask"] = &pdf.Stream{
			Dict: pdf.Dict{
				"Type":             pdf.Name("XObject"),
				"Subtype":          pdf.Name("Image"),
				"Width":            pdf.Integer(width),
				"Height":           pdf.Integer(height),
				"ColorSpace":       pdf.Name("DeviceGray"),
				"BitsPerComponent": pdf.Integer(8),
				"Filter":           pdf.Name("FlateDecode"),
			},
			Data: maskData,
		}
	}

	return &Resource{
		Width:   width,
		Height:  height,
		XObject: &pdf.Stream{Dict: dict, Data: data},
	}, nil
}

func isGray(m color.Model) bool {
	return m == color.GrayModel || m == color.Gray16Model
}

// colorSpace returns the color space for image data with the given number
// of channels.
func (r *Resolver) colorSpace(channels int) (pdf.Object, error) {
	if r.ICCProfile == nil {
		if channels == 1 {
			return pdf.Name("DeviceGray"), nil
		}
		return pdf.Name("DeviceRGB"), nil
	}

	p, err := icc.Decode(r.ICCProfile)
	if err != nil {
		return nil, fmt.Errorf("ICC profile: %w", err)
	}
	n := p.ColorSpace.NumComponents()
	if n != channels {
		return nil, fmt.Errorf("ICC profile has %d components, image has %d", n, channels)
	}

	data, err := deflate(r.ICCProfile)
	if err != nil {
		return nil, err
	}
	stream := &pdf.Stream{
		Dict: pdf.Dict{
			"N":      pdf.Integer(n),
			"Filter": pdf.Name("FlateDecode"),
		},
		Data: data,
	}
	return pdf.Array{pdf.Name("ICCBased"), stream}, nil
}

func deflate(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := zlib.NewWriter(buf)
	_, err := w.Write(data)
	if err != nil {
		return nil, err
	}
	err = w.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
