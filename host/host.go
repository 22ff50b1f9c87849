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

// Package host defines the interface between the annotator and the PDF
// document which receives the annotations.
//
// A host owns the document: it reads pages, appends annotation dictionaries
// to pages and serializes the result.  The annotator never parses PDF files
// itself.
package host

import (
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/annotate/pdf"
)

// Page is a page of a host document.
type Page interface {
	// Ref returns the object which refers to the page dictionary.  This is
	// used for the /P entry of annotations.  Ref may return nil, if the
	// host has no way to refer to pages.
	Ref() pdf.Object

	// MediaBox returns the media box of the page, taking inheritance
	// from the page tree into account.
	MediaBox() rect.Rect

	// CropBox returns the crop box of the page.  The second return value
	// is false, if the page has no crop box.
	CropBox() (rect.Rect, bool)

	// Rotation returns the value of the /Rotate entry of the page.
	Rotation() int
}

// Document is a PDF document which can receive annotations.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// Page returns the page with the given index.  Pages are numbered
	// starting from 0.  A [*PageOutOfBoundsError] is returned for invalid
	// page indices.
	Page(i int) (Page, error)

	// Version returns the PDF version of the document.
	Version() pdf.Version

	// AppendAnnotation adds an annotation dictionary to the /Annots array
	// of the given page.  Streams inside annot must be stored as indirect
	// objects by the host.
	AppendAnnotation(page int, annot pdf.Dict) error

	// Write serializes the document, including all appended annotations.
	Write(w io.Writer) error
}

// PageOutOfBoundsError is returned when a page index does not refer to a
// page of the document.
type PageOutOfBoundsError struct {
	Page  int
	Count int
}

func (err *PageOutOfBoundsError) Error() string {
	return fmt.Sprintf("page %d out of bounds (document has %d pages)",
		err.Page, err.Count)
}

// CheckPage returns a [*PageOutOfBoundsError] if page is not in the range
// 0, ..., count-1.
func CheckPage(page, count int) error {
	if page < 0 || page >= count {
		return &PageOutOfBoundsError{Page: page, Count: count}
	}
	return nil
}

var errNilAnnotation = errors.New("nil annotation dictionary")
