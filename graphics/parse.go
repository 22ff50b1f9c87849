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

package graphics

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"seehuhn.de/go/annotate/pdf"
)

// ParseError describes a problem found by [ParseContentStream].
type ParseError struct {
	Pos int // byte offset in the input
	Msg string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("content stream: %s (at byte %d)", err.Msg, err.Pos)
}

// ParseContentStream converts content stream text into a sequence of
// commands.  Only operators which can be represented by a [Command] are
// accepted.
func ParseContentStream(text string) (*ContentStream, error) {
	s := &streamScanner{src: text}
	res := &ContentStream{}
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			break
		}
		op, isOp := tok.(operatorToken)
		if !isOp {
			s.args = append(s.args, tok)
			continue
		}
		cmd, err := s.makeCommand(string(op))
		if err != nil {
			return nil, err
		}
		res.Add(cmd)
		s.args = s.args[:0]
	}
	if len(s.args) > 0 {
		return nil, &ParseError{Pos: s.pos, Msg: "operands without operator"}
	}
	return res, nil
}

type operatorToken string

// streamScanner splits content stream text into operands and operators.
type streamScanner struct {
	src    string
	pos    int
	args   []any
	opPos  int
	inList bool
}

func (s *streamScanner) errorf(format string, a ...any) error {
	return &ParseError{Pos: s.pos, Msg: fmt.Sprintf(format, a...)}
}

func (s *streamScanner) skipSpace() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '%':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' && s.src[s.pos] != '\r' {
				s.pos++
			}
		case isSpace(c):
			s.pos++
		default:
			return
		}
	}
}

// next returns the next operand or operator, or nil at the end of input.
func (s *streamScanner) next() (any, error) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return nil, nil
	}
	s.opPos = s.pos
	c := s.src[s.pos]
	switch {
	case c == '/':
		s.pos++
		return pdf.Name(s.regular()), nil
	case c == '(':
		return s.literalString()
	case c == '<':
		return s.hexString()
	case c == '[':
		if s.inList {
			return nil, s.errorf("nested arrays are not supported")
		}
		s.pos++
		return s.numberList()
	case c == '+' || c == '-' || c == '.' || c >= '0' && c <= '9':
		word := s.regular()
		x, err := strconv.ParseFloat(word, 64)
		if err != nil {
			return nil, s.errorf("malformed number %q", word)
		}
		return x, nil
	default:
		word := s.regular()
		if word == "" {
			s.pos++
			return nil, s.errorf("unexpected character %q", c)
		}
		return operatorToken(word), nil
	}
}

func (s *streamScanner) regular() string {
	start := s.pos
	for s.pos < len(s.src) && !isSpace(s.src[s.pos]) && !isDelim(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *streamScanner) numberList() (any, error) {
	s.inList = true
	defer func() { s.inList = false }()

	var res []float64
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return nil, s.errorf("unterminated array")
		}
		if s.src[s.pos] == ']' {
			s.pos++
			return res, nil
		}
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		x, ok := tok.(float64)
		if !ok {
			return nil, s.errorf("only numbers are supported inside arrays")
		}
		res = append(res, x)
	}
}

func (s *streamScanner) literalString() (any, error) {
	s.pos++ // skip '('
	var buf []byte
	level := 0
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		s.pos++
		switch c {
		case '(':
			level++
		case ')':
			if level == 0 {
				return decodeLatin1(buf), nil
			}
			level--
		case '\r':
			// an end-of-line marker in a string is read as a single newline
			s.skipByte('\n')
			c = '\n'
		case '\\':
			if s.pos >= len(s.src) {
				return nil, s.errorf("unterminated string")
			}
			c = s.src[s.pos]
			s.pos++
			switch c {
			case '\r', '\n':
				// line continuation
				if c == '\r' {
					s.skipByte('\n')
				}
				continue
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'b':
				c = '\b'
			case 'f':
				c = '\f'
			case '0', '1', '2', '3', '4', '5', '6', '7':
				val := int(c - '0')
				for k := 0; k < 2 && s.pos < len(s.src); k++ {
					d := s.src[s.pos]
					if d < '0' || d > '7' {
						break
					}
					val = 8*val + int(d-'0')
					s.pos++
				}
				c = byte(val)
			}
		}
		buf = append(buf, c)
	}
	return nil, s.errorf("unterminated string")
}

// skipByte advances past the next byte, if it equals c.
func (s *streamScanner) skipByte(c byte) {
	if s.pos < len(s.src) && s.src[s.pos] == c {
		s.pos++
	}
}

func (s *streamScanner) hexString() (any, error) {
	s.pos++ // skip '<'
	end := strings.IndexByte(s.src[s.pos:], '>')
	if end < 0 {
		return nil, s.errorf("unterminated hex string")
	}
	digits := strings.Map(func(r rune) rune {
		if r < 128 && isSpace(byte(r)) {
			return -1
		}
		return r
	}, s.src[s.pos:s.pos+end])
	s.pos += end + 1
	if len(digits)%2 == 1 {
		digits += "0"
	}
	data, err := hex.DecodeString(digits)
	if err != nil {
		return nil, s.errorf("malformed hex string")
	}
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		u := make([]uint16, 0, len(data)/2)
		for i := 2; i+1 < len(data); i += 2 {
			u = append(u, uint16(data[i])<<8|uint16(data[i+1]))
		}
		return string(utf16.Decode(u)), nil
	}
	return decodeLatin1(data), nil
}

func decodeLatin1(buf []byte) string {
	rr := make([]rune, len(buf))
	for i, c := range buf {
		rr[i] = rune(c)
	}
	return string(rr)
}

var errArgs = errors.New("wrong operands")

func (s *streamScanner) numbers(n int) ([]float64, error) {
	if len(s.args) != n {
		return nil, errArgs
	}
	res := make([]float64, n)
	for i, a := range s.args {
		x, ok := a.(float64)
		if !ok {
			return nil, errArgs
		}
		res[i] = x
	}
	return res, nil
}

func (s *streamScanner) makeCommand(op string) (Command, error) {
	cmd, err := s.buildCommand(op)
	if err == errArgs {
		return nil, &ParseError{Pos: s.opPos, Msg: "wrong operands for " + op}
	} else if err != nil {
		return nil, &ParseError{Pos: s.opPos, Msg: err.Error()}
	}
	return cmd, nil
}

func (s *streamScanner) buildCommand(op string) (Command, error) {
	switch op {
	case "BT", "ET", "S", "B", "f", "f*", "q", "Q", "h", "n", "W":
		if len(s.args) != 0 {
			return nil, errArgs
		}
		return simple(op), nil
	case "Tf":
		if len(s.args) != 2 {
			return nil, errArgs
		}
		name, ok1 := s.args[0].(pdf.Name)
		size, ok2 := s.args[1].(float64)
		if !ok1 || !ok2 {
			return nil, errArgs
		}
		return Font{Name: name, Size: size}, nil
	case "Tj":
		if len(s.args) != 1 {
			return nil, errArgs
		}
		text, ok := s.args[0].(string)
		if !ok {
			return nil, errArgs
		}
		return Text{Text: text}, nil
	case "Do", "gs":
		if len(s.args) != 1 {
			return nil, errArgs
		}
		name, ok := s.args[0].(pdf.Name)
		if !ok {
			return nil, errArgs
		}
		if op == "Do" {
			return XObject{Name: name}, nil
		}
		return GraphicsState{Name: name}, nil
	case "d":
		if len(s.args) != 2 {
			return nil, errArgs
		}
		arr, ok1 := s.args[0].([]float64)
		phase, ok2 := s.args[1].(float64)
		if !ok1 || !ok2 {
			return nil, errArgs
		}
		return DashPattern{Array: arr, Phase: phase}, nil
	}

	arity := map[string]int{
		"RG": 3, "rg": 3, "w": 1, "J": 1, "j": 1, "M": 1,
		"re": 4, "m": 2, "l": 2, "c": 6, "cm": 6, "Tm": 6,
	}
	n, ok := arity[op]
	if !ok {
		return nil, fmt.Errorf("unsupported operator %q", op)
	}
	x, err := s.numbers(n)
	if err != nil {
		return nil, err
	}
	switch op {
	case "RG":
		return StrokeColor{R: x[0], G: x[1], B: x[2]}, nil
	case "rg":
		return FillColor{R: x[0], G: x[1], B: x[2]}, nil
	case "w":
		return StrokeWidth{Width: x[0]}, nil
	case "J":
		return LineCap{Style: int(x[0])}, nil
	case "j":
		return LineJoin{Style: int(x[0])}, nil
	case "M":
		return MiterLimit{Limit: x[0]}, nil
	case "re":
		return Rect{X: x[0], Y: x[1], Width: x[2], Height: x[3]}, nil
	case "m":
		return Move{X: x[0], Y: x[1]}, nil
	case "l":
		return Line{X: x[0], Y: x[1]}, nil
	case "c":
		return Bezier{X1: x[0], Y1: x[1], X2: x[2], Y2: x[3], X3: x[4], Y3: x[5]}, nil
	case "cm":
		return CTM{M: Matrix(x)}, nil
	default: // "Tm"
		return TextMatrix{M: Matrix(x)}, nil
	}
}

func isSpace(c byte) bool {
	switch c {
	case 0, 9, 10, 12, 13, 32:
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
