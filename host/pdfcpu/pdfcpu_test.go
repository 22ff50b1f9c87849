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

package pdfcpu

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/annotate/host"
	"seehuhn.de/go/annotate/pdf"
)

// testFile returns a two-page PDF file.  Page 1 inherits the media box and
// a rotation of 90 degrees from the page tree root, page 2 has its own crop
// box and overrides the rotation.
func testFile() []byte {
	return buildFile([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 /MediaBox [0 0 612 792] /Rotate 90 /Resources << >> >>",
		"<< /Type /Page /Parent 2 0 R /Contents 5 0 R >>",
		"<< /Type /Page /Parent 2 0 R /Contents 5 0 R /CropBox [10 20 300 400] /Rotate 0 >>",
		"<< /Length 0 >>\nstream\n\nendstream",
	})
}

// annotsFile returns a one-page PDF file where the /Annots array of the
// page is an indirect object holding one link annotation.
func annotsFile() []byte {
	return buildFile([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 612 792] /Resources << >> >>",
		"<< /Type /Page /Parent 2 0 R /Annots 4 0 R >>",
		"[5 0 R]",
		"<< /Type /Annot /Subtype /Link /Rect [10 10 20 20] /Border [0 0 0] >>",
	})
}

// buildFile writes the given objects, numbered from 1, into a PDF file.
// The first object must be the document catalog.
func buildFile(objects []string) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, pos := range offsets {
		fmt.Fprintf(buf, "%010d 00000 n \n", pos)
	}
	fmt.Fprintf(buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xref)
	return buf.Bytes()
}

func TestReadPages(t *testing.T) {
	doc, err := Read(bytes.NewReader(testFile()))
	if err != nil {
		t.Fatal(err)
	}

	if n := doc.PageCount(); n != 2 {
		t.Fatalf("PageCount() = %d, want 2", n)
	}
	if v := doc.Version(); v != pdf.V1_4 {
		t.Errorf("Version() = %s, want 1.4", v)
	}

	p0, err := doc.Page(0)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(rect.Rect{URx: 612, URy: 792}, p0.MediaBox()); d != "" {
		t.Errorf("inherited media box: %s", d)
	}
	if _, ok := p0.CropBox(); ok {
		t.Error("page 1 should not have a crop box")
	}
	if p0.Rotation() != 90 {
		t.Errorf("inherited rotation = %d, want 90", p0.Rotation())
	}
	if ref := p0.Ref(); ref != pdf.NewReference(3, 0) {
		t.Errorf("page 1 reference = %v", ref)
	}

	p1, err := doc.Page(1)
	if err != nil {
		t.Fatal(err)
	}
	crop, ok := p1.CropBox()
	if !ok {
		t.Fatal("page 2 has no crop box")
	}
	if d := cmp.Diff(rect.Rect{LLx: 10, LLy: 20, URx: 300, URy: 400}, crop); d != "" {
		t.Error(d)
	}
	if p1.Rotation() != 0 {
		t.Errorf("rotation = %d, want 0", p1.Rotation())
	}

	_, err = doc.Page(2)
	var pErr *host.PageOutOfBoundsError
	if !errors.As(err, &pErr) {
		t.Errorf("expected PageOutOfBoundsError, got %v", err)
	}
}

func TestAppendAndWrite(t *testing.T) {
	doc, err := Read(bytes.NewReader(testFile()))
	if err != nil {
		t.Fatal(err)
	}

	form := &pdf.Stream{
		Dict: pdf.Dict{
			"Type":    pdf.Name("XObject"),
			"Subtype": pdf.Name("Form"),
			"BBox":    pdf.NumberArray(0, 0, 20, 20),
		},
		Data: []byte("0 0 0 RG 1 w 1 1 18 18 re S"),
	}
	annot := pdf.Dict{
		"Type":     pdf.Name("Annot"),
		"Subtype":  pdf.Name("Square"),
		"Rect":     pdf.NumberArray(100, 100, 120, 120),
		"Contents": pdf.TextString("a square"),
		"AP":       pdf.Dict{"N": form},
		"P":        pdf.NewReference(3, 0),
	}
	for range 2 {
		if err := doc.AppendAnnotation(0, annot); err != nil {
			t.Fatal(err)
		}
	}
	if err := doc.AppendAnnotation(0, nil); err == nil {
		t.Error("nil annotation was accepted")
	}

	buf := &bytes.Buffer{}
	if err := doc.Write(buf); err != nil {
		t.Fatal(err)
	}

	doc2, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	p, err := doc2.page(0)
	if err != nil {
		t.Fatal(err)
	}
	obj, err := doc2.ctx.Dereference(p.dict["Annots"])
	if err != nil {
		t.Fatal(err)
	}
	annots, ok := obj.(types.Array)
	if !ok || len(annots) != 2 {
		t.Fatalf("page 1 /Annots = %v", obj)
	}
	obj, err = doc2.ctx.Dereference(annots[0])
	if err != nil {
		t.Fatal(err)
	}
	dict, ok := obj.(types.Dict)
	if !ok {
		t.Fatalf("annotation is %T", obj)
	}
	if st := dict["Subtype"]; st != types.Name("Square") {
		t.Errorf("Subtype = %v", st)
	}

	p1, err := doc2.page(1)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p1.dict["Annots"]; ok {
		t.Error("page 2 has annotations")
	}
}

func TestConvert(t *testing.T) {
	doc, err := Read(bytes.NewReader(testFile()))
	if err != nil {
		t.Fatal(err)
	}

	in := pdf.Dict{
		"B": pdf.Bool(true),
		"I": pdf.Integer(7),
		"N": pdf.Number(0.5),
		"S": pdf.String("AB"),
		"A": pdf.Array{pdf.Name("X"), pdf.NewReference(3, 0)},
		"Z": nil,
	}
	c := &converter{ctx: doc.ctx}
	out, err := c.convert(in)
	if err != nil {
		t.Fatal(err)
	}
	want := types.Dict{
		"B": types.Boolean(true),
		"I": types.Integer(7),
		"N": types.Float(0.5),
		"S": types.HexLiteral("4142"),
		"A": types.Array{types.Name("X"), *types.NewIndirectRef(3, 0)},
	}
	if d := cmp.Diff(want, out); d != "" {
		t.Error(d)
	}
}

func TestAppendIndirectAnnots(t *testing.T) {
	doc, err := Read(bytes.NewReader(annotsFile()))
	if err != nil {
		t.Fatal(err)
	}

	annot := pdf.Dict{
		"Type":    pdf.Name("Annot"),
		"Subtype": pdf.Name("Square"),
		"Rect":    pdf.NumberArray(100, 100, 120, 120),
	}
	if err := doc.AppendAnnotation(0, annot); err != nil {
		t.Fatal(err)
	}

	p, err := doc.page(0)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(*types.NewIndirectRef(4, 0), p.dict["Annots"]); d != "" {
		t.Errorf("/Annots entry of the page was replaced: %s", d)
	}

	buf := &bytes.Buffer{}
	if err := doc.Write(buf); err != nil {
		t.Fatal(err)
	}
	doc2, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := doc2.page(0)
	if err != nil {
		t.Fatal(err)
	}
	obj, err := doc2.ctx.Dereference(p2.dict["Annots"])
	if err != nil {
		t.Fatal(err)
	}
	annots, ok := obj.(types.Array)
	if !ok || len(annots) != 2 {
		t.Fatalf("/Annots = %v", obj)
	}

	var subtypes []types.Object
	for _, a := range annots {
		obj, err := doc2.ctx.Dereference(a)
		if err != nil {
			t.Fatal(err)
		}
		dict, ok := obj.(types.Dict)
		if !ok {
			t.Fatalf("annotation is %T", obj)
		}
		subtypes = append(subtypes, dict["Subtype"])
	}
	want := []types.Object{types.Name("Link"), types.Name("Square")}
	if d := cmp.Diff(want, subtypes); d != "" {
		t.Error(d)
	}
}

// opaque is a PDF object which has no pdfcpu representation.
type opaque struct{}

func (opaque) PDF(w io.Writer) error {
	_, err := io.WriteString(w, "null")
	return err
}

func TestAppendUnsupportedLeavesDocument(t *testing.T) {
	for _, file := range [][]byte{testFile(), annotsFile()} {
		doc, err := Read(bytes.NewReader(file))
		if err != nil {
			t.Fatal(err)
		}
		p, err := doc.page(0)
		if err != nil {
			t.Fatal(err)
		}
		annotsBefore := p.dict["Annots"]
		numBefore := len(doc.ctx.Table)
		sizeBefore := *doc.ctx.Size

		annot := pdf.Dict{
			"Type":    pdf.Name("Annot"),
			"Subtype": pdf.Name("Square"),
			"AP": pdf.Dict{
				"N": &pdf.Stream{Dict: pdf.Dict{"Subtype": pdf.Name("Form")}, Data: []byte("0 g")},
			},
			"X": pdf.Array{opaque{}},
		}
		err = doc.AppendAnnotation(0, annot)
		var tErr *UnsupportedTypeError
		if !errors.As(err, &tErr) {
			t.Fatalf("expected UnsupportedTypeError, got %v", err)
		}

		if n := len(doc.ctx.Table); n != numBefore {
			t.Errorf("xref table has %d entries, want %d", n, numBefore)
		}
		if size := *doc.ctx.Size; size != sizeBefore {
			t.Errorf("xref size = %d, want %d", size, sizeBefore)
		}
		if d := cmp.Diff(annotsBefore, p.dict["Annots"]); d != "" {
			t.Errorf("/Annots changed: %s", d)
		}
	}
}
