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

// Package pdfcpu implements a document host on top of the pdfcpu library.
//
// The document is read completely into memory.  Annotation dictionaries are
// converted into pdfcpu objects and stored as new indirect objects, which are
// then linked from the /Annots array of their page.
package pdfcpu

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/annotate/host"
	"seehuhn.de/go/annotate/pdf"
)

// Document is a PDF document which has been read by pdfcpu.
type Document struct {
	ctx *model.Context

	mu    sync.Mutex
	pages []*page
}

var _ host.Document = (*Document)(nil)

// Read reads a PDF document.
func Read(r io.ReadSeeker) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadAndValidate(r, conf)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}

	doc := &Document{
		ctx:   ctx,
		pages: make([]*page, ctx.PageCount),
	}
	return doc, nil
}

// Open reads the PDF document stored in the named file.
func Open(fname string) (*Document, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	return Read(fd)
}

// PageCount implements the [host.Document] interface.
func (doc *Document) PageCount() int {
	return doc.ctx.PageCount
}

// Version implements the [host.Document] interface.
func (doc *Document) Version() pdf.Version {
	v, err := pdf.ParseVersion(doc.ctx.XRefTable.Version().String())
	if err != nil {
		return 0
	}
	return v
}

// Page implements the [host.Document] interface.
func (doc *Document) Page(i int) (host.Page, error) {
	return doc.page(i)
}

func (doc *Document) page(i int) (*page, error) {
	if err := host.CheckPage(i, doc.PageCount()); err != nil {
		return nil, err
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()

	if p := doc.pages[i]; p != nil {
		return p, nil
	}

	// pdfcpu numbers pages starting from 1
	dict, ref, _, err := doc.ctx.PageDict(i+1, false)
	if err != nil {
		return nil, err
	} else if dict == nil || ref == nil {
		return nil, fmt.Errorf("page %d: %w", i, errMissingPage)
	}

	p := &page{
		dict: dict,
		ref:  pdf.NewReference(uint32(ref.ObjectNumber.Value()), uint16(ref.GenerationNumber.Value())),
	}
	if err := p.readGeometry(doc.ctx); err != nil {
		return nil, fmt.Errorf("page %d: %w", i, err)
	}
	doc.pages[i] = p
	return p, nil
}

// AppendAnnotation implements the [host.Document] interface.
//
// If the /Annots array of the page is an indirect object, the new
// annotation is appended to this object.  Nothing is added to the document
// if the annotation cannot be converted.
func (doc *Document) AppendAnnotation(i int, annot pdf.Dict) error {
	p, err := doc.page(i)
	if err != nil {
		return err
	}
	if annot == nil {
		return errNilAnnotation
	}
	if err := check(annot); err != nil {
		return err
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()

	annots, entry, err := doc.annots(p)
	if err != nil {
		return err
	}

	c := &converter{ctx: doc.ctx}
	ref, err := c.add(annot)
	if err != nil {
		c.rollback()
		return err
	}

	annots = append(annots, *ref)
	if entry != nil {
		entry.Object = annots
	} else {
		p.dict["Annots"] = annots
	}
	return nil
}

// annots returns the annotations of a page.  If the /Annots array is
// stored in an indirect object, the xref table entry of this object is
// returned as well.
func (doc *Document) annots(p *page) (types.Array, *model.XRefTableEntry, error) {
	switch x := p.dict["Annots"].(type) {
	case nil:
		return nil, nil, nil
	case types.Array:
		return x, nil, nil
	case types.IndirectRef:
		entry, found := doc.ctx.FindTableEntryForIndRef(&x)
		if !found || entry.Free {
			return nil, nil, errMalformedAnnots
		}
		obj, err := doc.ctx.Dereference(x)
		if err != nil {
			return nil, nil, err
		}
		switch arr := obj.(type) {
		case nil:
			return nil, entry, nil
		case types.Array:
			return arr, entry, nil
		}
	}
	return nil, nil, errMalformedAnnots
}

// Write implements the [host.Document] interface.
func (doc *Document) Write(w io.Writer) error {
	doc.mu.Lock()
	defer doc.mu.Unlock()

	return api.WriteContext(doc.ctx, w)
}

// check makes sure that obj can be converted into the pdfcpu object model.
func check(obj pdf.Object) error {
	switch x := obj.(type) {
	case nil, pdf.Bool, pdf.Integer, pdf.Real, pdf.Number, pdf.Name, pdf.String, pdf.Reference:
		return nil
	case pdf.Array:
		for _, elem := range x {
			if err := check(elem); err != nil {
				return err
			}
		}
		return nil
	case pdf.Dict:
		for _, val := range x {
			if err := check(val); err != nil {
				return err
			}
		}
		return nil
	case *pdf.Stream:
		if x == nil {
			return errNilStream
		}
		return check(x.Dict)
	}
	return &UnsupportedTypeError{Object: obj}
}

// UnsupportedTypeError is returned for PDF objects which have no
// representation in pdfcpu.
type UnsupportedTypeError struct {
	Object pdf.Object
}

func (err *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported PDF object type %T", err.Object)
}

// converter translates PDF objects into the pdfcpu object model.
// Dictionaries and streams become new indirect objects.
type converter struct {
	ctx     *model.Context
	created []int
}

// add stores obj as a new indirect object.
func (c *converter) add(obj pdf.Object) (*types.IndirectRef, error) {
	o, err := c.convert(obj)
	if err != nil {
		return nil, err
	}
	return c.newObject(o)
}

func (c *converter) newObject(o types.Object) (*types.IndirectRef, error) {
	ref, err := c.ctx.IndRefForNewObject(o)
	if err != nil {
		return nil, err
	}
	c.created = append(c.created, ref.ObjectNumber.Value())
	return ref, nil
}

// rollback frees all objects created by c.
func (c *converter) rollback() {
	for _, objNr := range c.created {
		_ = c.ctx.FreeObject(objNr)
	}
	c.created = nil
}

func (c *converter) convert(obj pdf.Object) (types.Object, error) {
	switch x := obj.(type) {
	case nil:
		return nil, nil
	case pdf.Bool:
		return types.Boolean(x), nil
	case pdf.Integer:
		return types.Integer(x), nil
	case pdf.Real:
		return types.Float(x), nil
	case pdf.Number:
		return types.Float(x), nil
	case pdf.Name:
		return types.Name(x), nil
	case pdf.String:
		return types.HexLiteral(hex.EncodeToString(x)), nil
	case pdf.Reference:
		return *types.NewIndirectRef(int(x.Number()), int(x.Generation())), nil
	case pdf.Array:
		res := make(types.Array, 0, len(x))
		for _, elem := range x {
			o, err := c.convert(elem)
			if err != nil {
				return nil, err
			}
			res = append(res, o)
		}
		return res, nil
	case pdf.Dict:
		return c.convertDict(x)
	case *pdf.Stream:
		if x == nil {
			return nil, errNilStream
		}
		return c.convertStream(x)
	}
	return nil, &UnsupportedTypeError{Object: obj}
}

func (c *converter) convertDict(d pdf.Dict) (types.Dict, error) {
	res := types.NewDict()
	for key, val := range d {
		if val == nil {
			continue
		}
		o, err := c.convert(val)
		if err != nil {
			return nil, err
		}
		res[string(key)] = o
	}
	return res, nil
}

// convertStream stores a stream as a new indirect object.
//
// Streams without a /Filter entry are compressed by pdfcpu.  For all
// other streams the data is already encoded and is copied verbatim.
func (c *converter) convertStream(s *pdf.Stream) (types.Object, error) {
	dict, err := c.convertDict(s.Dict)
	if err != nil {
		return nil, err
	}
	delete(dict, "Length")

	var sd *types.StreamDict
	if _, hasFilter := dict["Filter"]; hasFilter {
		length := int64(len(s.Data))
		sd = &types.StreamDict{
			Dict:         dict,
			StreamLength: &length,
			Raw:          s.Data,
		}
		sd.Dict["Length"] = types.Integer(length)
	} else {
		sd, err = c.ctx.NewStreamDictForBuf(s.Data)
		if err != nil {
			return nil, err
		}
		for key, val := range dict {
			sd.Dict[key] = val
		}
		if err := sd.Encode(); err != nil {
			return nil, err
		}
	}

	ref, err := c.newObject(*sd)
	if err != nil {
		return nil, err
	}
	return *ref, nil
}

// page is a page of a pdfcpu document.
type page struct {
	dict types.Dict
	ref  pdf.Reference

	media  rect.Rect
	crop   rect.Rect
	isCrop bool
	rotate int
}

func (p *page) Ref() pdf.Object            { return p.ref }
func (p *page) MediaBox() rect.Rect        { return p.media }
func (p *page) CropBox() (rect.Rect, bool) { return p.crop, p.isCrop }
func (p *page) Rotation() int              { return p.rotate }

// readGeometry reads the page boxes and the rotation.  Missing entries
// are inherited from the ancestors of the page in the page tree.
func (p *page) readGeometry(ctx *model.Context) error {
	obj, err := inherited(ctx, p.dict, "MediaBox")
	if err != nil {
		return err
	} else if obj == nil {
		return errMissingMediaBox
	}
	p.media, err = toRect(ctx, obj)
	if err != nil {
		return fmt.Errorf("MediaBox: %w", err)
	}

	obj, err = inherited(ctx, p.dict, "CropBox")
	if err != nil {
		return err
	}
	if obj != nil {
		p.crop, err = toRect(ctx, obj)
		if err != nil {
			return fmt.Errorf("CropBox: %w", err)
		}
		p.isCrop = true
	}

	obj, err = inherited(ctx, p.dict, "Rotate")
	if err != nil {
		return err
	}
	if obj != nil {
		rot, ok := toNumber(obj)
		if !ok {
			return errMalformedRotate
		}
		p.rotate = int(rot)
	}
	return nil
}

// inherited looks up an inheritable page attribute.  The result is nil if
// neither the page nor any of its ancestors has the attribute.
func inherited(ctx *model.Context, dict types.Dict, key string) (types.Object, error) {
	for depth := 0; dict != nil; depth++ {
		if depth > maxTreeDepth {
			return nil, errPageTreeLoop
		}
		if val, ok := dict[key]; ok && val != nil {
			return ctx.Dereference(val)
		}
		parent, ok := dict["Parent"]
		if !ok {
			break
		}
		obj, err := ctx.Dereference(parent)
		if err != nil {
			return nil, err
		}
		dict, _ = obj.(types.Dict)
	}
	return nil, nil
}

func toRect(ctx *model.Context, obj types.Object) (rect.Rect, error) {
	arr, ok := obj.(types.Array)
	if !ok || len(arr) != 4 {
		return rect.Rect{}, errMalformedRect
	}
	var x [4]float64
	for i, elem := range arr {
		elem, err := ctx.Dereference(elem)
		if err != nil {
			return rect.Rect{}, err
		}
		x[i], ok = toNumber(elem)
		if !ok {
			return rect.Rect{}, errMalformedRect
		}
	}
	r := rect.Rect{LLx: min(x[0], x[2]), LLy: min(x[1], x[3]), URx: max(x[0], x[2]), URy: max(x[1], x[3])}
	return r, nil
}

func toNumber(obj types.Object) (float64, bool) {
	switch x := obj.(type) {
	case types.Integer:
		return float64(x), true
	case types.Float:
		return float64(x), true
	}
	return 0, false
}

const maxTreeDepth = 64

var (
	errNilAnnotation   = errors.New("nil annotation dictionary")
	errMissingPage     = errors.New("page dictionary not found")
	errMissingMediaBox = errors.New("missing MediaBox")
	errMalformedRect   = errors.New("malformed rectangle")
	errMalformedRotate = errors.New("malformed Rotate entry")
	errPageTreeLoop    = errors.New("page tree too deep")
	errMalformedAnnots = errors.New("malformed /Annots entry")
	errNilStream       = errors.New("nil stream")
)
