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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate"
	"seehuhn.de/go/annotate/annotation"
	"seehuhn.de/go/annotate/font"
	"seehuhn.de/go/annotate/graphics"
	"seehuhn.de/go/annotate/layout"
	"seehuhn.de/go/annotate/pdf"
)

// Job describes one run of the program.  Jobs are read from TOML files.
type Job struct {
	Input   string       `toml:"input"`
	Output  string       `toml:"output"`
	Version string       `toml:"version"`
	Scale   []float64    `toml:"scale"`
	Font    string       `toml:"font"`
	Pages   []PageDims   `toml:"page"`
	Annots  []AnnotEntry `toml:"annotation"`

	// dir is the directory of the job file.  Relative paths in the job
	// are resolved against dir.
	dir string
}

// PageDims gives the size of a rastered image of a page.
type PageDims struct {
	Index  int     `toml:"index"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// AnnotEntry describes a single annotation.
type AnnotEntry struct {
	Kind   string       `toml:"kind"`
	Page   int          `toml:"page"`
	Rect   []float64    `toml:"rect"`
	Points [][2]float64 `toml:"points"`

	StrokeColor   string    `toml:"stroke_color"`
	StrokeWidth   *float64  `toml:"stroke_width"`
	StrokeOpacity *float64  `toml:"stroke_opacity"`
	BorderStyle   string    `toml:"border_style"`
	Dash          []float64 `toml:"dash"`
	DashPhase     float64   `toml:"dash_phase"`
	Fill          string    `toml:"fill"`
	FillOpacity   *float64  `toml:"fill_opacity"`
	CornerRadius  float64   `toml:"corner_radius"`

	Content     string   `toml:"content"`
	FontSize    float64  `toml:"font_size"`
	Align       string   `toml:"align"`
	Baseline    string   `toml:"baseline"`
	LineSpacing float64  `toml:"line_spacing"`
	Wrap        *bool    `toml:"wrap"`
	Image       string   `toml:"image"`
	Stream      string   `toml:"stream"`
	Icon        string   `toml:"icon"`
	Author      string   `toml:"author"`
	Subject     string   `toml:"subject"`
	Flags       []string `toml:"flags"`
	XMP         bool     `toml:"xmp"`
}

// LoadJob reads a job file.
func LoadJob(fname string) (*Job, error) {
	job := &Job{}
	md, err := toml.DecodeFile(fname, job)
	if err != nil {
		return nil, fmt.Errorf("parsing job %s: %w", fname, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("job %s: unknown key %q", fname, undecoded[0].String())
	}
	job.dir = filepath.Dir(fname)

	if job.Input == "" {
		return nil, errors.New("job " + fname + ": missing input file")
	}
	if job.Output == "" {
		ext := filepath.Ext(job.Input)
		job.Output = strings.TrimSuffix(job.Input, ext) + "-annotated" + ext
	}
	return job, nil
}

func (job *Job) path(name string) string {
	if name == "" || name == "-" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(job.dir, name)
}

// inputs returns the files read by the job.
func (job *Job) inputs() []string {
	res := []string{job.path(job.Input)}
	for _, entry := range job.Annots {
		if entry.Image != "" {
			res = append(res, job.path(entry.Image))
		}
	}
	return res
}

var errOverwrite = errors.New("output would overwrite a file read by the job")

// checkOutput makes sure that the job does not write to one of the files
// it reads.  In watch mode this would trigger a new run after every run.
func (job *Job) checkOutput(output, jobFile string) error {
	if output == "-" {
		return nil
	}
	for _, name := range append(job.inputs(), jobFile) {
		if sameFile(name, output) {
			return fmt.Errorf("%s: %w", output, errOverwrite)
		}
	}
	return nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

// options converts the global job settings into annotator options.
func (job *Job) options(fonts *font.Cache) ([]annotate.Option, error) {
	var opts []annotate.Option
	if job.Version != "" {
		v, err := pdf.ParseVersion(job.Version)
		if err != nil {
			return nil, fmt.Errorf("version %q: %w", job.Version, err)
		}
		opts = append(opts, annotate.WithVersion(v))
	}
	switch len(job.Scale) {
	case 0:
		// pass
	case 1:
		opts = append(opts, annotate.WithScale(job.Scale[0], job.Scale[0]))
	case 2:
		opts = append(opts, annotate.WithScale(job.Scale[0], job.Scale[1]))
	default:
		return nil, errors.New("scale must have one or two entries")
	}
	if job.Font != "" {
		name := job.Font
		if name != font.BuiltinHelvetica && name != font.BuiltinGoRegular {
			name = job.path(name)
		}
		m, err := fonts.Get(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, annotate.WithMetrics(m))
	}
	return opts, nil
}

// build converts the annotation description into the arguments of
// [annotate.Annotator.AddAnnotation].
func (entry *AnnotEntry) build(job *Job) (annotation.Kind, annotation.Location, annotation.Appearance, *annotation.Metadata, error) {
	var (
		loc  annotation.Location
		app  annotation.Appearance
		meta *annotation.Metadata
	)

	kind, err := annotation.ParseKind(entry.Kind)
	if err != nil {
		return 0, loc, app, nil, err
	}

	switch {
	case len(entry.Rect) == 4 && entry.Points == nil:
		r := entry.Rect
		loc = annotation.Rect(entry.Page, r[0], r[1], r[2], r[3])
	case entry.Rect == nil && entry.Points != nil:
		pts := make([]vec.Vec2, len(entry.Points))
		for i, p := range entry.Points {
			pts[i] = vec.Vec2{X: p[0], Y: p[1]}
		}
		loc = annotation.Points(entry.Page, pts...)
	default:
		return 0, loc, app, nil, errors.New("need either rect (4 numbers) or points")
	}

	opts, err := entry.appearanceOptions(job)
	if err != nil {
		return 0, loc, app, nil, err
	}
	app = annotation.DefaultAppearance().With(opts...)

	var metaOpts []annotation.MetadataOption
	if entry.Author != "" {
		metaOpts = append(metaOpts, annotation.WithAuthor(entry.Author))
	}
	if entry.Subject != "" {
		metaOpts = append(metaOpts, annotation.WithSubject(entry.Subject))
	}
	if entry.Flags != nil {
		flags, err := annotation.ParseFlags(entry.Flags...)
		if err != nil {
			return 0, loc, app, nil, err
		}
		metaOpts = append(metaOpts, annotation.WithFlags(flags))
	}
	if entry.XMP {
		metaOpts = append(metaOpts, annotation.WithXMP())
	}
	meta, err = annotation.NewMetadata(metaOpts...)
	if err != nil {
		return 0, loc, app, nil, err
	}

	return kind, loc, app, meta, nil
}

func (entry *AnnotEntry) appearanceOptions(job *Job) ([]annotation.Option, error) {
	var opts []annotation.Option

	if entry.StrokeColor != "" {
		c, err := parseColor(entry.StrokeColor)
		if err != nil {
			return nil, err
		}
		opts = append(opts, annotation.WithStrokeColor(c))
	}
	if entry.StrokeWidth != nil {
		opts = append(opts, annotation.WithStrokeWidth(*entry.StrokeWidth))
	}
	if entry.StrokeOpacity != nil {
		opts = append(opts, annotation.WithStrokeTransparency(*entry.StrokeOpacity))
	}
	if entry.BorderStyle != "" {
		opts = append(opts, annotation.WithBorderStyle(pdf.Name(entry.BorderStyle)))
	}
	if entry.Dash != nil {
		opts = append(opts, annotation.WithDash(entry.DashPhase, entry.Dash...))
	}
	if entry.Fill != "" {
		c, err := parseColor(entry.Fill)
		if err != nil {
			return nil, err
		}
		opts = append(opts, annotation.WithFill(c))
	}
	if entry.FillOpacity != nil {
		opts = append(opts, annotation.WithFillTransparency(*entry.FillOpacity))
	}
	if entry.CornerRadius != 0 {
		opts = append(opts, annotation.WithCornerRadius(entry.CornerRadius))
	}

	if entry.Content != "" {
		opts = append(opts, annotation.WithContent(entry.Content))
	}
	if entry.FontSize != 0 {
		opts = append(opts, annotation.WithFontSize(entry.FontSize))
	}
	if entry.Align != "" {
		a, err := layout.ParseAlign(entry.Align)
		if err != nil {
			return nil, err
		}
		opts = append(opts, annotation.WithTextAlign(a))
	}
	if entry.Baseline != "" {
		b, err := layout.ParseBaseline(entry.Baseline)
		if err != nil {
			return nil, err
		}
		opts = append(opts, annotation.WithTextBaseline(b))
	}
	if entry.LineSpacing != 0 {
		opts = append(opts, annotation.WithLineSpacing(entry.LineSpacing))
	}
	if entry.Wrap != nil {
		opts = append(opts, annotation.WithWrapText(*entry.Wrap))
	}

	if entry.Image != "" {
		opts = append(opts, annotation.WithImage(job.path(entry.Image)))
	}
	if entry.Stream != "" {
		s, err := graphics.ParseContentStream(entry.Stream)
		if err != nil {
			return nil, err
		}
		opts = append(opts, annotation.WithStream(s))
	}
	if entry.Icon != "" {
		opts = append(opts, annotation.WithIcon(pdf.Name(entry.Icon)))
	}
	return opts, nil
}

// parseColor parses colors of the form "#rrggbb" or "#rrggbbaa".
func parseColor(s string) (annotation.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("invalid color %q (expected #rrggbb or #rrggbbaa)", s)
	}
	var c annotation.Color
	for i := 0; i < len(hex); i += 2 {
		val, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", s, err)
		}
		c = append(c, float64(val)/255)
	}
	return c, nil
}
