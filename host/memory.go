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

package host

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/annotate/pdf"
)

// Letter is the media box of a US Letter page.
var Letter = rect.Rect{URx: 612, URy: 792}

// MemoryPage describes a page of a [Memory] document.
type MemoryPage struct {
	Media  rect.Rect
	Crop   *rect.Rect
	Rotate int

	ref pdf.Reference
}

// Ref implements the [Page] interface.
func (p *MemoryPage) Ref() pdf.Object {
	return p.ref
}

// MediaBox implements the [Page] interface.
func (p *MemoryPage) MediaBox() rect.Rect {
	return p.Media
}

// CropBox implements the [Page] interface.
func (p *MemoryPage) CropBox() (rect.Rect, bool) {
	if p.Crop == nil {
		return rect.Rect{}, false
	}
	return *p.Crop, true
}

// Rotation implements the [Page] interface.
func (p *MemoryPage) Rotation() int {
	return p.Rotate
}

// Memory is a [Document] which keeps all pages and annotations in memory.
// It is mainly useful for tests.
type Memory struct {
	version pdf.Version

	mu     sync.Mutex
	pages  []*MemoryPage
	annots [][]pdf.Dict
}

// NewMemory creates a new in-memory document with the given pages.
// The page references are numbered 1, 2, ... in page order.
func NewMemory(v pdf.Version, pages ...MemoryPage) *Memory {
	m := &Memory{
		version: v,
		pages:   make([]*MemoryPage, len(pages)),
		annots:  make([][]pdf.Dict, len(pages)),
	}
	for i := range pages {
		p := pages[i]
		p.ref = pdf.NewReference(uint32(i+1), 0)
		m.pages[i] = &p
	}
	return m
}

// PageCount implements the [Document] interface.
func (m *Memory) PageCount() int {
	return len(m.pages)
}

// Page implements the [Document] interface.
func (m *Memory) Page(i int) (Page, error) {
	if err := CheckPage(i, len(m.pages)); err != nil {
		return nil, err
	}
	return m.pages[i], nil
}

// Version implements the [Document] interface.
func (m *Memory) Version() pdf.Version {
	return m.version
}

// AppendAnnotation implements the [Document] interface.
func (m *Memory) AppendAnnotation(page int, annot pdf.Dict) error {
	if err := CheckPage(page, len(m.pages)); err != nil {
		return err
	}
	if annot == nil {
		return errNilAnnotation
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.annots[page] = append(m.annots[page], annot)
	return nil
}

// Annotations returns the annotations appended to the given page so far.
func (m *Memory) Annotations(page int) []pdf.Dict {
	if page < 0 || page >= len(m.pages) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]pdf.Dict, len(m.annots[page]))
	copy(res, m.annots[page])
	return res
}

// Write implements the [Document] interface.
//
// The output is a human readable listing of the pages and their
// annotations, not a valid PDF file.
func (m *Memory) Write(w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "%% PDF-%s, %d pages\n", m.version, len(m.pages))
	for i, p := range m.pages {
		fmt.Fprintf(out, "\n%% page %d\n", i+1)
		page := pdf.Dict{
			"Type":     pdf.Name("Page"),
			"MediaBox": pdf.Rect(p.Media),
		}
		if p.Crop != nil {
			page["CropBox"] = pdf.Rect(*p.Crop)
		}
		if p.Rotate != 0 {
			page["Rotate"] = pdf.Integer(p.Rotate)
		}
		fmt.Fprintf(out, "%d 0 obj\n%s\nendobj\n", p.ref.Number(), pdf.Format(page))
		for _, annot := range m.annots[i] {
			fmt.Fprintln(out, pdf.Format(annot))
		}
	}
	return out.Flush()
}
