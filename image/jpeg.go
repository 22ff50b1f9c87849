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
	"image/color"
	"image/jpeg"

	"seehuhn.de/go/annotate/pdf"
)

func isJPEG(data []byte) bool {
	return len(data) > 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF
}

// passJPEG embeds JPEG data without decoding, using the DCTDecode filter.
// If the data cannot be used directly, errNeedsDecode is returned.
func (r *Resolver) passJPEG(data []byte) (*Resource, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errEmptyImage
	}
	if r.tooLarge(cfg.Width, cfg.Height) {
		return nil, errNeedsDecode
	}

	var channels int
	switch cfg.ColorModel {
	case color.GrayModel:
		channels = 1
	case color.YCbCrModel, color.RGBAModel:
		channels = 3
	default:
		// CMYK data from Adobe applications is often stored inverted,
		// which we cannot detect without parsing the markers.
		return nil, errNeedsDecode
	}

	cs, err := r.colorSpace(channels)
	if err != nil {
		return nil, err
	}

	stream := &pdf.Stream{
		Dict: pdf.Dict{
			"Type":             pdf.Name("XObject"),
			"Subtype":          pdf.Name("Image"),
			"Width":            pdf.Integer(cfg.Width),
			"Height":           pdf.Integer(cfg.Height),
			"ColorSpace":       cs,
			"BitsPerComponent": pdf.Integer(8),
			"Filter":           pdf.Name("DCTDecode"),
		},
		Data: data,
	}
	return &Resource{
		Width:   cfg.Width,
		Height:  cfg.Height,
		XObject: stream,
	}, nil
}
