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

// Package annotate adds native annotations to existing PDF documents.
//
// An [Annotator] wraps a [host.Document].  Each call to
// [Annotator.AddAnnotation] compiles one annotation into page space,
// generates its appearance stream and appends the resulting annotation
// dictionary to the page.  Coordinates are given in the orientation in
// which the page is displayed, optionally scaled (see [WithScale] and
// [Annotator.SetPageDimensions]).
package annotate

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/annotate/annotation"
	"seehuhn.de/go/annotate/font"
	"seehuhn.de/go/annotate/host"
	"seehuhn.de/go/annotate/image"
	"seehuhn.de/go/annotate/pagespace"
	"seehuhn.de/go/annotate/pdf"
)

// Annotator adds annotations to a PDF document.
// It is safe for concurrent use.
type Annotator struct {
	doc     host.Document
	space   *pagespace.Resolver
	version pdf.Version
	metrics font.Metrics
	images  annotation.ImageResolver
	logger  *log.Logger

	mu    sync.Mutex
	added int
}

// Annotation describes an annotation which has been added to a document.
type Annotation struct {
	Kind annotation.Kind
	Page int

	// Rect is the annotation rectangle in page space.
	Rect rect.Rect

	// Dict is the annotation dictionary which was passed to the host.
	Dict pdf.Dict
}

// New creates an annotator for the given document.
func New(doc host.Document, opts ...Option) (*Annotator, error) {
	cfg := &config{
		scale:   pagespace.Unit,
		version: doc.Version(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	space, err := pagespace.NewResolver(pagespace.Config{Scale: cfg.scale})
	if err != nil {
		return nil, err
	}
	metrics := cfg.metrics
	if metrics == nil {
		metrics = font.Helvetica()
	}
	images := cfg.images
	if images == nil {
		images = image.NewResolver()
	}

	a := &Annotator{
		doc:     doc,
		space:   space,
		version: cfg.version,
		metrics: metrics,
		images:  images,
		logger:  cfg.logger,
	}
	return a, nil
}

// PageCount returns the number of pages in the document.
func (a *Annotator) PageCount() int {
	return a.doc.PageCount()
}

// Version returns the PDF version used to check annotation features.
func (a *Annotator) Version() pdf.Version {
	return a.version
}

// SetPageDimensions registers the size of a rastered image of the given
// page.  Coordinates for this page are then interpreted as pixels of the
// image.  Width and height refer to the page as displayed, i.e. after the
// page rotation has been applied.
func (a *Annotator) SetPageDimensions(page int, width, height float64) error {
	if err := host.CheckPage(page, a.doc.PageCount()); err != nil {
		return err
	}
	return a.space.SetPageDimensions(page, width, height)
}

// AddAnnotation adds an annotation to the document.
//
// If meta is nil, default metadata is used.  All checks are done before
// the document is modified: if an error is returned, the document is
// unchanged.
func (a *Annotator) AddAnnotation(kind annotation.Kind, loc annotation.Location, app annotation.Appearance, meta *annotation.Metadata) (*Annotation, error) {
	if meta == nil {
		var err error
		meta, err = annotation.NewMetadata()
		if err != nil {
			return nil, err
		}
	}
	if err := meta.CheckVersion(a.version); err != nil {
		return nil, err
	}

	page, err := a.doc.Page(loc.Page)
	if err != nil {
		return nil, err
	}
	M, err := a.space.PageMatrix(loc.Page, page)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", loc.Page, err)
	}

	ctx := &annotation.Context{
		Matrix:  M,
		Version: a.version,
		Metrics: a.metrics,
		Images:  a.images,
	}
	c, err := annotation.Compile(kind, loc, app, ctx)
	if err != nil {
		return nil, err
	}
	dict, err := annotation.Assemble(kind, c, app, meta, page.Ref())
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.doc.AppendAnnotation(loc.Page, dict); err != nil {
		return nil, err
	}
	a.added++

	if a.logger != nil {
		a.logger.Printf("added %s annotation on page %d, rect %v", kind, loc.Page, c.Rect)
	}

	res := &Annotation{
		Kind: kind,
		Page: loc.Page,
		Rect: c.Rect,
		Dict: dict,
	}
	return res, nil
}

// Added returns the number of annotations added so far.
func (a *Annotator) Added() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.added
}

// Write writes the annotated document to w.
func (a *Annotator) Write(w io.Writer) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doc.Write(w)
}

// WriteFile writes the annotated document to the named file.
func (a *Annotator) WriteFile(fname string) (err error) {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		err2 := fd.Close()
		if err == nil {
			err = err2
		}
	}()

	err = a.Write(fd)
	if err != nil {
		return err
	}
	if a.logger != nil {
		a.logger.Printf("wrote %q", fname)
	}
	return nil
}
