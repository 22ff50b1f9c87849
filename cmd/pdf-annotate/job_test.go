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

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate/annotation"
	"seehuhn.de/go/annotate/font"
	"seehuhn.de/go/annotate/host/pdfcpu"
	"seehuhn.de/go/annotate/layout"
)

const testJob = `
input = "in.pdf"
scale = [0.5]
version = "1.7"

[[page]]
index = 0
width = 1224
height = 1584

[[annotation]]
kind = "square"
rect = [10, 20, 110, 220]
stroke_color = "#ff0000"
stroke_width = 2
fill = "#00ff0080"
author = "Jochen"
flags = ["print", "locked"]

[[annotation]]
kind = "polyline"
points = [[0, 0], [10, 10], [20, 0]]
dash = [3, 1]

[[annotation]]
kind = "freetext"
rect = [0, 0, 200, 100]
content = "hello"
align = "center"
baseline = "top"
wrap = false

[[annotation]]
kind = "stamp"
rect = [0, 0, 50, 50]
stream = "0 0 1 RG 0 0 m 50 50 l S"
icon = "Approved"
`

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	fname := filepath.Join(dir, name)
	if err := os.WriteFile(fname, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestLoadJob(t *testing.T) {
	dir := t.TempDir()
	fname := writeFile(t, dir, "job.toml", []byte(testJob))

	job, err := LoadJob(fname)
	if err != nil {
		t.Fatal(err)
	}
	if job.Output != "in-annotated.pdf" {
		t.Errorf("default output = %q", job.Output)
	}
	if got := job.path(job.Input); got != filepath.Join(dir, "in.pdf") {
		t.Errorf("input path = %q", got)
	}
	if d := cmp.Diff([]PageDims{{Index: 0, Width: 1224, Height: 1584}}, job.Pages); d != "" {
		t.Error(d)
	}
	if len(job.Annots) != 4 {
		t.Fatalf("got %d annotations", len(job.Annots))
	}

	opts, err := job.options(font.NewCache())
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 2 {
		t.Errorf("got %d options, want 2", len(opts))
	}

	kind, loc, app, meta, err := job.Annots[0].build(job)
	if err != nil {
		t.Fatal(err)
	}
	if kind != annotation.Square {
		t.Errorf("kind = %s", kind)
	}
	if !loc.IsRect() || loc.Page != 0 {
		t.Errorf("unexpected location %+v", loc)
	}
	approx := cmpopts.EquateApprox(0, 1e-9)
	if d := cmp.Diff(annotation.RGB(1, 0, 0), app.StrokeColor, approx); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(annotation.RGBA(0, 1, 0, 128.0/255), app.Fill, approx); d != "" {
		t.Error(d)
	}
	if app.StrokeWidth != 2 {
		t.Errorf("stroke width = %g", app.StrokeWidth)
	}
	entries := meta.Entries()
	if entries["F"] == nil || entries["T"] == nil {
		t.Errorf("missing metadata entries: %v", meta.Keys())
	}

	_, loc, app, _, err = job.Annots[1].build(job)
	if err != nil {
		t.Fatal(err)
	}
	want := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 0}}
	if d := cmp.Diff(want, loc.Points()); d != "" {
		t.Error(d)
	}
	if app.BorderStyle != "D" {
		t.Errorf("border style = %q", app.BorderStyle)
	}

	kind, _, app, _, err = job.Annots[2].build(job)
	if err != nil {
		t.Fatal(err)
	}
	if kind != annotation.Text {
		t.Errorf("kind = %s", kind)
	}
	if app.TextAlign != layout.Center || app.TextBaseline != layout.Top || app.WrapText {
		t.Errorf("unexpected text settings %v %v %t", app.TextAlign, app.TextBaseline, app.WrapText)
	}

	_, _, app, _, err = job.Annots[3].build(job)
	if err != nil {
		t.Fatal(err)
	}
	if app.Stream == nil || app.Stream.Len() != 4 {
		t.Errorf("unexpected stream %v", app.Stream)
	}
	if app.Icon != "Approved" {
		t.Errorf("icon = %q", app.Icon)
	}
}

func TestLoadJobErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"missing.toml": `output = "x.pdf"`,
		"unknown.toml": "input = \"in.pdf\"\ncolour = \"red\"",
		"syntax.toml":  `input = `,
	}
	for name, body := range cases {
		fname := writeFile(t, dir, name, []byte(body))
		if _, err := LoadJob(fname); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	job := &Job{}
	cases := []AnnotEntry{
		{Kind: "highlight", Rect: []float64{0, 0, 1, 1}},
		{Kind: "square"},
		{Kind: "square", Rect: []float64{0, 0, 1}},
		{Kind: "square", Rect: []float64{0, 0, 1, 1}, Points: [][2]float64{{0, 0}}},
		{Kind: "square", Rect: []float64{0, 0, 1, 1}, StrokeColor: "red"},
		{Kind: "text", Rect: []float64{0, 0, 1, 1}, Align: "justify"},
		{Kind: "stamp", Rect: []float64{0, 0, 1, 1}, Stream: "1 2 xyz"},
		{Kind: "square", Rect: []float64{0, 0, 1, 1}, Flags: []string{"sticky"}},
	}
	for i, entry := range cases {
		if _, _, _, _, err := entry.build(job); err == nil {
			t.Errorf("%d: no error", i)
		}
	}

	var uErr *annotation.UnsupportedKindError
	_, _, _, _, err := cases[0].build(job)
	if !errors.As(err, &uErr) {
		t.Errorf("expected UnsupportedKindError, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want annotation.Color
	}{
		{"#000000", annotation.Color{0, 0, 0}},
		{"#ffffff", annotation.Color{1, 1, 1}},
		{"FF0000", annotation.Color{1, 0, 0}},
		{"#00000000", annotation.Color{0, 0, 0, 0}},
	}
	for _, c := range cases {
		got, err := parseColor(c.in)
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if d := cmp.Diff(c.want, got); d != "" {
			t.Errorf("%q: %s", c.in, d)
		}
	}

	for _, in := range []string{"", "#fff", "#gg0000", "#1234567"} {
		if _, err := parseColor(in); err == nil {
			t.Errorf("%q: no error", in)
		}
	}
}

// minimalPDF returns a one-page PDF file.
func minimalPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>",
	}
	buf := &bytes.Buffer{}
	buf.WriteString("%PDF-1.7\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, pos := range offsets {
		fmt.Fprintf(buf, "%010d 00000 n \n", pos)
	}
	fmt.Fprintf(buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xref)
	return buf.Bytes()
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "in.pdf", minimalPDF())
	jobFile := writeFile(t, dir, "job.toml", []byte(testJob))

	r := &runner{jobFile: jobFile, fonts: font.NewCache()}
	if err := r.run(); err != nil {
		t.Fatal(err)
	}

	doc, err := pdfcpu.Open(filepath.Join(dir, "in-annotated.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if doc.PageCount() != 1 {
		t.Errorf("PageCount() = %d", doc.PageCount())
	}

	list := r.watchList()
	for _, name := range []string{jobFile, filepath.Join(dir, "in.pdf")} {
		if !list[name] {
			t.Errorf("%s is not watched", name)
		}
	}
}

func TestRunRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "in.pdf", minimalPDF())
	jobFile := writeFile(t, dir, "job.toml", []byte(testJob))
	writeFile(t, dir, "logo.png", nil)

	cases := []string{
		input,
		filepath.Join(dir, ".", "in.pdf"),
		jobFile,
	}
	for _, output := range cases {
		r := &runner{jobFile: jobFile, output: output, fonts: font.NewCache()}
		if err := r.run(); !errors.Is(err, errOverwrite) {
			t.Errorf("%s: expected errOverwrite, got %v", output, err)
		}
	}

	job, err := LoadJob(jobFile)
	if err != nil {
		t.Fatal(err)
	}
	job.Annots = append(job.Annots, AnnotEntry{Kind: "image", Image: "logo.png"})
	if err := job.checkOutput(filepath.Join(dir, "logo.png"), jobFile); !errors.Is(err, errOverwrite) {
		t.Errorf("image: expected errOverwrite, got %v", err)
	}
	if err := job.checkOutput(filepath.Join(dir, "out.pdf"), jobFile); err != nil {
		t.Errorf("unexpected error %v", err)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, minimalPDF()) {
		t.Error("input file was modified")
	}
}
