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
	"fmt"

	"seehuhn.de/go/annotate/pdf"
)

// GraphicsStateName is the resource name of the graphics state generated
// from the appearance settings.
const GraphicsStateName pdf.Name = "PdfAnnotatorGS"

// StateBits records which fields of a [GraphicsState] are in use.
type StateBits uint16

// Possible values for StateBits.
const (
	StateLineWidth StateBits = 1 << iota
	StateLineCap
	StateLineJoin
	StateMiterLimit
	StateDash
	StateStrokeTransparency
	StateFillTransparency
)

// GraphicsState is a set of graphics state parameters which is written as
// an /ExtGState resource and activated with the "gs" operator.
// Only the fields selected by Set are used.
type GraphicsState struct {
	Set StateBits

	LineWidth  float64
	LineCap    int
	LineJoin   int
	MiterLimit float64
	DashArray  []float64
	DashPhase  float64

	// StrokeTransparency and FillTransparency are opacities: 1 is opaque,
	// 0 is fully transparent.
	StrokeTransparency float64
	FillTransparency   float64
}

// HasContent reports whether any parameter is set.
func (gs *GraphicsState) HasContent() bool {
	return gs != nil && gs.Set != 0
}

// Validate checks the parameter ranges.
func (gs *GraphicsState) Validate() error {
	if gs.Set&StateLineWidth != 0 && !(gs.LineWidth >= 0) {
		return &ValidationError{Field: "GraphicsState.LineWidth", Reason: "must be non-negative"}
	}
	if gs.Set&StateLineCap != 0 && (gs.LineCap < 0 || gs.LineCap > 2) {
		return &ValidationError{Field: "GraphicsState.LineCap", Reason: fmt.Sprintf("invalid style %d", gs.LineCap)}
	}
	if gs.Set&StateLineJoin != 0 && (gs.LineJoin < 0 || gs.LineJoin > 2) {
		return &ValidationError{Field: "GraphicsState.LineJoin", Reason: fmt.Sprintf("invalid style %d", gs.LineJoin)}
	}
	if gs.Set&StateMiterLimit != 0 && !(gs.MiterLimit >= 1) {
		return &ValidationError{Field: "GraphicsState.MiterLimit", Reason: "must be at least 1"}
	}
	if gs.Set&StateDash != 0 {
		for _, d := range gs.DashArray {
			if !(d >= 0) {
				return &ValidationError{Field: "GraphicsState.DashArray", Reason: "entries must be non-negative"}
			}
		}
	}
	if gs.Set&StateStrokeTransparency != 0 && !(gs.StrokeTransparency >= 0 && gs.StrokeTransparency <= 1) {
		return &ValidationError{Field: "GraphicsState.StrokeTransparency", Reason: "not in [0, 1]"}
	}
	if gs.Set&StateFillTransparency != 0 && !(gs.FillTransparency >= 0 && gs.FillTransparency <= 1) {
		return &ValidationError{Field: "GraphicsState.FillTransparency", Reason: "not in [0, 1]"}
	}
	return nil
}

// CheckVersion returns a [*pdf.VersionError] if the state uses parameters
// which are not available in PDF version v.
func (gs *GraphicsState) CheckVersion(v pdf.Version) error {
	if !gs.HasContent() {
		return nil
	}
	if err := pdf.CheckVersion(v, "ExtGState resources", pdf.V1_2); err != nil {
		return err
	}
	if gs.Set&(StateLineWidth|StateLineCap|StateLineJoin|StateMiterLimit|StateDash) != 0 {
		if err := pdf.CheckVersion(v, "line style in ExtGState", pdf.V1_3); err != nil {
			return err
		}
	}
	if gs.Set&(StateStrokeTransparency|StateFillTransparency) != 0 {
		if err := pdf.CheckVersion(v, "transparency", pdf.V1_4); err != nil {
			return err
		}
	}
	return nil
}

// AsDict returns the /ExtGState dictionary for gs.
func (gs *GraphicsState) AsDict() pdf.Dict {
	d := pdf.Dict{
		"Type": pdf.Name("ExtGState"),
	}
	if gs.Set&StateLineWidth != 0 {
		d["LW"] = pdf.Number(gs.LineWidth)
	}
	if gs.Set&StateLineCap != 0 {
		d["LC"] = pdf.Integer(gs.LineCap)
	}
	if gs.Set&StateLineJoin != 0 {
		d["LJ"] = pdf.Integer(gs.LineJoin)
	}
	if gs.Set&StateMiterLimit != 0 {
		d["ML"] = pdf.Number(gs.MiterLimit)
	}
	if gs.Set&StateDash != 0 {
		d["D"] = pdf.Array{pdf.NumberArray(gs.DashArray...), pdf.Number(gs.DashPhase)}
	}
	if gs.Set&StateStrokeTransparency != 0 {
		d["CA"] = pdf.Number(gs.StrokeTransparency)
	}
	if gs.Set&StateFillTransparency != 0 {
		d["ca"] = pdf.Number(gs.FillTransparency)
	}
	return d
}
