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
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/annotate/pdf"
)

var testTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func TestMetadataDefaults(t *testing.T) {
	m, err := NewMetadata(withClock(testTime))
	if err != nil {
		t.Fatal(err)
	}
	e := m.Entries()

	wantDate := pdf.String("D:20250102030405+00'00")
	if d := cmp.Diff(wantDate, e["CreationDate"]); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(wantDate, e["M"]); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(pdf.Integer(FlagPrint), e["F"]); d != "" {
		t.Error(d)
	}

	nm, ok := e["NM"].(pdf.String)
	hexDigits := regexp.MustCompile(`[0-9a-fA-F]`)
	if !ok || len(hexDigits.FindAll(nm, -1)) != 32 {
		t.Errorf("NM is not a UUID: %v", e["NM"])
	}

	m2, err := NewMetadata()
	if err != nil {
		t.Fatal(err)
	}
	if string(m2.Entries()["NM"].(pdf.String)) == string(nm) {
		t.Error("annotation names are not unique")
	}
}

func TestMetadataOptions(t *testing.T) {
	m, err := NewMetadata(
		withClock(testTime),
		WithFlags(FlagHidden|FlagLocked),
		WithName("annot-1"),
		Set("M", Unset),
		Set("CreationDate", Unset),
		WithAuthor("Jane"),
		WithSubject("Review"),
		Set("Custom", []float64{1, 2.5}),
		Set("Count", 3),
	)
	if err != nil {
		t.Fatal(err)
	}
	want := pdf.Dict{
		"F":      pdf.Integer(FlagHidden | FlagLocked),
		"NM":     pdf.TextString("annot-1"),
		"T":      pdf.TextString("Jane"),
		"Subj":   pdf.TextString("Review"),
		"Custom": pdf.NumberArray(1, 2.5),
		"Count":  pdf.Integer(3),
	}
	if d := cmp.Diff(want, m.Entries()); d != "" {
		t.Error(d)
	}
	wantKeys := []pdf.Name{"Count", "Custom", "F", "NM", "Subj", "T"}
	if d := cmp.Diff(wantKeys, m.Keys()); d != "" {
		t.Error(d)
	}
}

func TestMetadataErrors(t *testing.T) {
	for _, opt := range []MetadataOption{
		Set("X", nil),
		Set("Y", struct{}{}),
		Set("Z", map[string]int{}),
	} {
		_, err := NewMetadata(opt)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	}
}

func TestMetadataXMP(t *testing.T) {
	m, err := NewMetadata(withClock(testTime), WithAuthor("Jane Doe"), WithXMP())
	if err != nil {
		t.Fatal(err)
	}
	stream, ok := m.Entries()["Metadata"].(*pdf.Stream)
	if !ok {
		t.Fatal("missing XMP stream")
	}
	if d := cmp.Diff(pdf.Name("Metadata"), stream.Dict["Type"]); d != "" {
		t.Error(d)
	}
	if !strings.Contains(string(stream.Data), "Jane Doe") {
		t.Errorf("author missing from XMP packet:\n%s", stream.Data)
	}

	var vErr *pdf.VersionError
	if err := m.CheckVersion(pdf.V1_3); !errors.As(err, &vErr) {
		t.Errorf("expected VersionError, got %v", err)
	}
	if err := m.CheckVersion(pdf.V1_4); err != nil {
		t.Error(err)
	}
}

func TestNilMetadata(t *testing.T) {
	var m *Metadata
	if len(m.Entries()) != 0 {
		t.Error("nil metadata has entries")
	}
	if err := m.CheckVersion(pdf.V1_0); err != nil {
		t.Error(err)
	}
}
