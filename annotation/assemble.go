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
	"maps"

	"seehuhn.de/go/annotate/graphics"
	"seehuhn.de/go/annotate/pdf"
)

// Assemble builds the annotation dictionary for a compiled annotation.
//
// The dictionary contains the appearance stream as a form XObject, the
// metadata entries and the kind-specific entries, in this order of
// precedence: kind-specific entries override metadata entries with the same
// name.  Page is written as the /P entry, if non-nil.
func Assemble(kind Kind, c *Compiled, app Appearance, meta *Metadata, page pdf.Object) (pdf.Dict, error) {
	if c == nil {
		return nil, errNotCompiled
	}
	r := c.Rect
	M := graphics.Translate(-r.LLx, -r.LLy)
	form := &pdf.Stream{
		Dict: pdf.Dict{
			"Type":      pdf.Name("XObject"),
			"Subtype":   pdf.Name("Form"),
			"FormType":  pdf.Integer(1),
			"BBox":      pdf.Rect(r),
			"Matrix":    pdf.NumberArray(M[:]...),
			"Resources": resourceDict(c, app),
		},
		Data: []byte(c.Stream.Resolve()),
	}

	dict := pdf.Dict{
		"Type":    pdf.Name("Annot"),
		"Subtype": kind.Subtype(),
		"Rect":    pdf.Rect(r),
		"AP":      pdf.Dict{"N": form},
	}
	if page != nil {
		dict["P"] = page
	}
	maps.Copy(dict, meta.Entries())
	maps.Copy(dict, c.Extra)

	return dict, nil
}

// resourceDict merges the resources needed by the appearance stream.
// Resources generated by the compiler do not replace caller resources with
// the same name.
func resourceDict(c *Compiled, app Appearance) pdf.Dict {
	res := pdf.Dict{
		"ProcSet": pdf.Array{pdf.Name("PDF")},
	}

	extGState := pdf.Dict{}
	if gs := app.graphicsState(); gs.HasContent() {
		extGState[GraphicsStateName] = gs.AsDict()
	}
	for name, gs := range app.GraphicsStates {
		extGState[name] = gs.AsDict()
	}
	addMissing(extGState, c.Resources.ExtGState)

	xObjects := pdf.Dict{}
	maps.Copy(xObjects, app.XObjects)
	addMissing(xObjects, c.Resources.XObject)

	fonts := pdf.Dict{}
	maps.Copy(fonts, app.Fonts)
	addMissing(fonts, c.Resources.Font)

	for key, d := range map[pdf.Name]pdf.Dict{
		"ExtGState": extGState,
		"XObject":   xObjects,
		"Font":      fonts,
	} {
		if len(d) > 0 {
			res[key] = d
		}
	}
	return res
}

func addMissing(dst, src pdf.Dict) {
	for key, val := range src {
		if _, ok := dst[key]; !ok {
			dst[key] = val
		}
	}
}

var errNotCompiled = errors.New("missing compiled annotation")
