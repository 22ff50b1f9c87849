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

package layout

import "strings"

// Measure returns the width of a string of text.  The font and font size
// are fixed by the caller.
type Measure func(text string) float64

// Wrap breaks text into lines which are at most maxWidth wide.
//
// Lines are broken preferably after runs of spaces.  A newline character
// always starts a new line.  If a single word is wider than maxWidth, the
// word is broken between characters; every line contains at least one
// character, so that the function always makes progress.
//
// The returned lines keep the space at which they were broken.  Callers
// which place the lines on a page should trim them first.
func Wrap(text string, maxWidth float64, measure Measure) []string {
	line, rest := nextLine([]rune(text), measure, maxWidth)
	lines := []string{string(line)}
	for len(rest) > 0 {
		line, rest = nextLine(rest, measure, maxWidth)
		lines = append(lines, string(line))
	}
	return lines
}

// Split breaks text into lines at newline characters, without wrapping.
func Split(text string) []string {
	return strings.Split(text, "\n")
}

// nextToken removes a token from the front of text.  A token is either a
// run of spaces, or a run of other characters.  If the token is followed by
// a single space or by a newline, this character is returned as the
// separator.
func nextToken(text []rune) (token []rune, sep string, rest []rune) {
	for i, c := range text {
		switch {
		case c == ' ' && (i == 0 || text[i-1] == ' '):
			// extend a run of spaces
		case c == ' ':
			return text[:i], " ", text[i+1:]
		case c == '\n':
			return text[:i], "\n", text[i+1:]
		case i > 0 && text[i-1] == ' ':
			return text[:i], "", text[i:]
		}
	}
	return text, "", nil
}

// nextLine removes one line of text from the front of text.
func nextLine(text []rune, measure Measure, maxWidth float64) (line, rest []rune) {
	rest = text
	for {
		var token []rune
		var sep string
		token, sep, rest = nextToken(rest)

		if len(line) == 0 {
			if len(token) == 0 {
				return nil, text[len(sep):]
			}

			// The first token of a line may be broken between characters.
			for i := range token {
				if measure(string(token[:i+1])) > maxWidth {
					n := max(i, 1)
					return text[:n], text[n:]
				}
			}
			line = text[:len(token)]
			if sep == "\n" {
				return line, rest
			}
			line = text[:len(line)+len(sep)]
			continue
		}

		candidate := string(line) + string(token)
		if measure(candidate) > maxWidth {
			return line, text[len(line):]
		}
		line = text[:len(line)+len(token)]
		if sep == "\n" || len(rest) == 0 {
			return line, rest
		}
		line = text[:len(line)+len(sep)]
	}
}
