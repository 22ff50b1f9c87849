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

package pdf

import (
	"errors"
	"testing"
	"time"

	"seehuhn.de/go/geom/rect"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{Bool(true), "true"},
		{Integer(-12), "-12"},
		{Real(1), "1."},
		{Real(1.5), "1.5"},
		{Number(15), "15"},
		{Number(1.25), "1.25"},
		{Number(1e-16), "0"},
		{Name("Square"), "/Square"},
		{Name("A B"), "/A#20B"},
		{String("a"), "(a)"},
		{String("a (test version)"), `(a \(test version\))`},
		{String("a (test version"), "(a \\(test version)"},
		{String(""), "()"},
		{String("\000"), "<00>"},
		{String("a\r\nb"), `(a\r\nb)`},
		{String("\xfe\xff\x4e\x2d"), "<FEFF4E2D>"},
		{String("caf\xe9"), "(caf\xe9)"},
		{Array{Integer(1), nil, Integer(3)}, "[1 null 3]"},
		{Dict{"B": Integer(2), "A": Integer(1), "C": nil}, "<<\n/A 1\n/B 2\n>>"},
		{NewReference(12, 0), "12 0 R"},
		{Rect(rect.Rect{LLx: 9, LLy: 19, URx: 101, URy: 201}), "[9 19 101 201]"},
		{NumberArray(1, 0.5), "[1 0.5]"},
	}
	for _, test := range cases {
		out := Format(test.in)
		if out != test.out {
			t.Errorf("wrongly formatted, expected %q but got %q", test.out, out)
		}
	}
}

func TestStream(t *testing.T) {
	s := &Stream{
		Dict: Dict{"Type": Name("XObject")},
		Data: []byte("0 0 m"),
	}
	want := "<<\n/Length 5\n/Type /XObject\n>>\nstream\n0 0 m\nendstream"
	if got := Format(s); got != want {
		t.Errorf("wrong stream: %q != %q", got, want)
	}
	if _, ok := s.Dict["Length"]; ok {
		t.Error("Format modified the stream dictionary")
	}
}

func TestTextString(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"hello", "hello"},
		{"ein Bär", "ein B\xe4r"},
		{"中", "\xfe\xff\x4e\x2d"},
	}
	for _, test := range cases {
		got := string(TextString(test.in))
		if got != test.out {
			t.Errorf("TextString(%q) = %q, want %q", test.in, got, test.out)
		}
	}
}

func TestShowString(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"", "()"},
		{"a(b)\\c", `(a\(b\)\\c)`},
		{"café", "(caf\xe9)"},
		{"\u00ad", "(\xad)"},
		{"☃", "<FEFF2603>"},
	}
	for _, test := range cases {
		got := Format(ShowString(test.in))
		if got != test.out {
			t.Errorf("ShowString(%q) = %q, want %q", test.in, got, test.out)
		}
	}
}

func TestEscapeLiteral(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"abc":     "abc",
		"(a)":     `\(a\)`,
		`back\sl`: `back\\sl`,
		"a\nb":    `a\nb`,
	}
	for in, want := range cases {
		if got := EscapeLiteral(in); got != want {
			t.Errorf("EscapeLiteral(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDate(t *testing.T) {
	PST := time.FixedZone("PST", -8*60*60)
	cases := []struct {
		in  time.Time
		out string
	}{
		{time.Date(1998, 12, 23, 19, 52, 0, 0, PST), "D:19981223195200-08'00"},
		{time.Date(2019, 3, 25, 15, 30, 12, 0, time.UTC), "D:20190325153012+00'00"},
		{time.Date(2020, 12, 24, 16, 30, 12, 0, time.FixedZone("", 90*60)), "D:20201224163012+01'30"},
	}
	for _, test := range cases {
		got := string(Date(test.in))
		if got != test.out {
			t.Errorf("Date(%s) = %q, want %q", test.in, got, test.out)
		}
	}
}

func TestCheckVersion(t *testing.T) {
	err := CheckVersion(V1_4, "polygon annotations", V1_5)
	var vErr *VersionError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected a VersionError, got %v", err)
	}
	if vErr.Earliest != V1_5 {
		t.Errorf("wrong version %s", vErr.Earliest)
	}
	if err := CheckVersion(V1_7, "polygon annotations", V1_5); err != nil {
		t.Error(err)
	}
	if err := CheckVersion(0, "polygon annotations", V1_5); err != nil {
		t.Error(err)
	}
}

func TestVersionRoundTrip(t *testing.T) {
	for v := V1_0; v <= V2_0; v++ {
		s, err := v.ToString()
		if err != nil {
			t.Fatal(err)
		}
		w, err := ParseVersion(s)
		if err != nil {
			t.Fatal(err)
		}
		if w != v {
			t.Errorf("%s: %d != %d", s, w, v)
		}
	}
}
