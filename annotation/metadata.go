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
	"bytes"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/twinj/uuid"
	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/annotate/pdf"
)

// Unset can be passed as the value to [Set] to omit an entry, including
// the entries which are normally filled in automatically.
var Unset unsetValue

type unsetValue struct{}

// Metadata holds the non-geometric entries of an annotation dictionary,
// like the creation date and the unique name.
type Metadata struct {
	entries pdf.Dict
	xmp     *pdf.Stream
}

// A MetadataOption changes one metadata entry.
type MetadataOption func(*metadataConfig)

type metadataConfig struct {
	now    time.Time
	values map[pdf.Name]any
	order  []pdf.Name
	xmp    bool
}

func (c *metadataConfig) set(key pdf.Name, value any) {
	if _, seen := c.values[key]; !seen {
		c.order = append(c.order, key)
	}
	c.values[key] = value
}

// Set sets the entry key to value.
//
// Value can be a pdf.Object, a string, a bool, an integer, a float64, a
// [Flags] value, a time.Time, or a slice of strings or numbers.  The special
// value [Unset] removes the entry.
func Set(key pdf.Name, value any) MetadataOption {
	return func(c *metadataConfig) { c.set(key, value) }
}

// WithFlags replaces the default annotation flags.
func WithFlags(f Flags) MetadataOption {
	return Set("F", f)
}

// WithName sets the unique annotation name (/NM).
func WithName(name string) MetadataOption {
	return Set("NM", name)
}

// WithCreationDate sets the creation date.
func WithCreationDate(t time.Time) MetadataOption {
	return Set("CreationDate", t)
}

// WithModificationDate sets the modification date (/M).
func WithModificationDate(t time.Time) MetadataOption {
	return Set("M", t)
}

// WithAuthor sets the text label (/T), which viewers show as the author.
func WithAuthor(name string) MetadataOption {
	return Set("T", name)
}

// WithSubject sets the subject (/Subj) of the annotation.
func WithSubject(subject string) MetadataOption {
	return Set("Subj", subject)
}

// WithXMP attaches an XMP metadata stream with the author, subject and
// dates of the annotation.  This requires PDF 1.4.
func WithXMP() MetadataOption {
	return func(c *metadataConfig) { c.xmp = true }
}

// withClock fixes the time used for the default dates.
func withClock(now time.Time) MetadataOption {
	return func(c *metadataConfig) { c.now = now }
}

// NewMetadata returns annotation metadata with the given entries.
//
// Unless given explicitly, the creation and modification dates are set to
// the current time, the unique name /NM is set to a random UUID, and the
// flags are set to [FlagPrint].
func NewMetadata(opts ...MetadataOption) (*Metadata, error) {
	c := &metadataConfig{
		now:    time.Now().UTC(),
		values: make(map[pdf.Name]any),
	}
	for _, opt := range opts {
		opt(c)
	}

	defaults := []struct {
		key pdf.Name
		val any
	}{
		{"CreationDate", c.now},
		{"M", c.now},
		{"NM", uuid.NewV4().String()},
		{"F", FlagPrint},
	}
	for _, d := range defaults {
		if _, ok := c.values[d.key]; !ok {
			c.set(d.key, d.val)
		}
	}

	m := &Metadata{entries: pdf.Dict{}}
	for _, key := range c.order {
		val := c.values[key]
		if val == Unset {
			continue
		}
		obj, err := metadataObject(key, val)
		if err != nil {
			return nil, err
		}
		m.entries[key] = obj
	}

	if c.xmp {
		stream, err := xmpStream(c)
		if err != nil {
			return nil, err
		}
		m.xmp = stream
	}

	return m, nil
}

// Entries returns the metadata entries, including the /Metadata stream if
// requested.  The returned dictionary can be modified by the caller.
func (m *Metadata) Entries() pdf.Dict {
	if m == nil {
		return pdf.Dict{}
	}
	res := m.entries.Clone()
	if m.xmp != nil {
		res["Metadata"] = m.xmp
	}
	return res
}

// Keys returns the names of the metadata entries in sorted order.
func (m *Metadata) Keys() []pdf.Name {
	return slices.Sorted(maps.Keys(m.Entries()))
}

// CheckVersion returns a [*pdf.VersionError] if the metadata cannot be
// represented in PDF version v.
func (m *Metadata) CheckVersion(v pdf.Version) error {
	if m == nil {
		return nil
	}
	if m.xmp != nil {
		if err := pdf.CheckVersion(v, "XMP metadata", pdf.V1_4); err != nil {
			return err
		}
	}
	return nil
}

func metadataObject(key pdf.Name, val any) (pdf.Object, error) {
	switch val := val.(type) {
	case nil:
		return nil, &ValidationError{Field: string(key), Reason: "missing value"}
	case pdf.Object:
		return val, nil
	case string:
		return pdf.TextString(val), nil
	case bool:
		return pdf.Bool(val), nil
	case int:
		return pdf.Integer(val), nil
	case int64:
		return pdf.Integer(val), nil
	case float64:
		return pdf.Number(val), nil
	case Flags:
		return pdf.Integer(val), nil
	case time.Time:
		return pdf.Date(val), nil
	case []string:
		res := make(pdf.Array, len(val))
		for i, s := range val {
			res[i] = pdf.TextString(s)
		}
		return res, nil
	case []int:
		res := make(pdf.Array, len(val))
		for i, x := range val {
			res[i] = pdf.Integer(x)
		}
		return res, nil
	case []float64:
		return pdf.NumberArray(val...), nil
	}
	return nil, &ValidationError{
		Field:  string(key),
		Reason: fmt.Sprintf("unsupported value type %T", val),
	}
}

func xmpStream(c *metadataConfig) (*pdf.Stream, error) {
	packet := xmp.NewPacket()

	dc := &xmp.DublinCore{}
	if author, ok := c.values["T"].(string); ok {
		dc.Creator.Append(xmp.NewProperName(author))
	}
	if subject, ok := c.values["Subj"].(string); ok {
		dc.Title.Set(language.Und, subject)
	}
	err := packet.Set(dc)
	if err != nil {
		return nil, err
	}

	basic := &xmp.Basic{}
	if t, ok := c.values["CreationDate"].(time.Time); ok {
		basic.CreateDate = xmp.NewDate(t)
	}
	if t, ok := c.values["M"].(time.Time); ok {
		basic.ModifyDate = xmp.NewDate(t)
	}
	err = packet.Set(basic)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	err = packet.Write(buf, nil)
	if err != nil {
		return nil, err
	}

	return &pdf.Stream{
		Dict: pdf.Dict{
			"Type":    pdf.Name("Metadata"),
			"Subtype": pdf.Name("XML"),
		},
		Data: buf.Bytes(),
	}, nil
}
