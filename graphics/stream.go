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
	"fmt"
	"strings"

	"seehuhn.de/go/annotate/pdf"
)

// ContentStream is an ordered sequence of drawing commands.
//
// Content streams are used for annotation appearances.  The zero value is
// an empty stream, ready to use.
type ContentStream struct {
	cmds []Command
}

// NewContentStream returns a content stream containing the given commands.
func NewContentStream(cmds ...Command) *ContentStream {
	s := &ContentStream{}
	s.Extend(cmds...)
	return s
}

// Add appends a single command to the stream.
func (s *ContentStream) Add(cmd Command) {
	s.cmds = append(s.cmds, cmd)
}

// Extend appends the given commands to the stream.
func (s *ContentStream) Extend(cmds ...Command) {
	s.cmds = append(s.cmds, cmds...)
}

// Commands returns a copy of the commands in the stream.
func (s *ContentStream) Commands() []Command {
	if s == nil {
		return nil
	}
	res := make([]Command, len(s.cmds))
	copy(res, s.cmds)
	return res
}

// Len returns the number of commands in the stream.
func (s *ContentStream) Len() int {
	if s == nil {
		return 0
	}
	return len(s.cmds)
}

// Resolve returns the content stream text.  The commands are separated by
// single spaces.
func (s *ContentStream) Resolve() string {
	if s == nil {
		return ""
	}
	parts := make([]string, len(s.cmds))
	for i, cmd := range s.cmds {
		parts[i] = cmd.Resolve()
	}
	return strings.Join(parts, " ")
}

// Transform returns a new stream, where every command has been transformed
// by M.  The order of commands is preserved.
func (s *ContentStream) Transform(M Matrix) *ContentStream {
	res := &ContentStream{}
	if s == nil {
		return res
	}
	res.cmds = make([]Command, len(s.cmds))
	for i, cmd := range s.cmds {
		res.cmds[i] = cmd.Transform(M)
	}
	return res
}

// Validate checks that all operators in the stream are valid for the given
// PDF version.
func (s *ContentStream) Validate(v pdf.Version) error {
	if s == nil {
		return nil
	}
	for i, cmd := range s.cmds {
		if err := checkOperator(cmd.Operator(), v); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Operator(), err)
		}
	}
	return nil
}
