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
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf16"
)

// String represents a raw string in a PDF file.  The character set encoding,
// if any, is determined by the context.
type String []byte

// PDF implements the [Object] interface.
//
// Strings without control characters are written as literal strings,
// other strings are written in hexadecimal form.
func (x String) PDF(w io.Writer) error {
	var err error
	if x.isPrintable() {
		_, err = io.WriteString(w, "("+EscapeLiteral(string(x))+")")
	} else {
		_, err = fmt.Fprintf(w, "<%X>", []byte(x))
	}
	return err
}

// isPrintable reports whether x can be written as a literal string without
// octal escapes.  UTF-16 strings are always written in hexadecimal.
func (x String) isPrintable() bool {
	if len(x) >= 2 && x[0] == 0xFE && x[1] == 0xFF {
		return false
	}
	for _, c := range x {
		if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
			return false
		}
	}
	return true
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`(`, `\(`,
	`)`, `\)`,
	"\r", `\r`,
	"\n", `\n`,
)

// EscapeLiteral escapes s for use between the parentheses of a literal
// string.  Backslashes and parentheses are escaped, and so are line breaks,
// since a bare end-of-line marker inside a string is read as "\n".
func EscapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}

// ShowString encodes text for a text showing operator.  Text which fits into
// ISO Latin-1 uses one byte per character.  Other text is encoded as
// UTF-16BE with byte order mark.
func ShowString(text string) String {
	buf := make([]byte, 0, len(text))
	for _, r := range text {
		if r > 0xFF {
			return UTF16(text)
		}
		buf = append(buf, byte(r))
	}
	return String(buf)
}

// TextString creates a String object using the "text string" encoding,
// i.e. using either PDFDocEncoding or UTF-16BE encoding with a BOM.
func TextString(s string) String {
	rr := []rune(s)
	buf := make([]byte, len(rr))
	for i, r := range rr {
		c, ok := pdfDocEncode(r)
		if !ok {
			return UTF16(s)
		}
		buf[i] = c
	}
	return String(buf)
}

// UTF16 encodes s as UTF-16BE, preceded by the byte order mark FE FF.
func UTF16(s string) String {
	enc := utf16.Encode([]rune(s))
	buf := make([]byte, 2*len(enc)+2)
	buf[0] = 0xFE
	buf[1] = 0xFF
	for i, c := range enc {
		buf[2*i+2] = byte(c >> 8)
		buf[2*i+3] = byte(c)
	}
	return String(buf)
}

// pdfDocEncode maps r to PDFDocEncoding, for the range where
// PDFDocEncoding agrees with ISO Latin-1.
func pdfDocEncode(r rune) (byte, bool) {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return byte(r), true
	case r >= 0x20 && r <= 0x7E:
		return byte(r), true
	case r >= 0xA1 && r <= 0xFF && r != 0xAD:
		return byte(r), true
	}
	return 0, false
}

// Date creates a PDF String object encoding the given date and time,
// for example "D:20190325153012+00'00".
func Date(t time.Time) String {
	s := t.Format("D:20060102150405-0700")
	k := len(s) - 2
	s = s[:k] + "'" + s[k:]
	return String(s)
}
