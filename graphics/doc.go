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

// Package graphics provides the building blocks for PDF appearance streams.
//
// The package defines affine transformation matrices ([Matrix], [Multiply],
// [Invert]), a closed set of drawing commands ([Command]) and the
// [ContentStream] type which collects commands in order.
//
// Every command can be converted to PDF operator syntax via its Resolve
// method, and can be mapped into a different coordinate system via its
// Transform method.  Numbers are formatted by [FormatNumber], so that the
// generated streams are deterministic.
//
// Content stream text can be converted back into commands using
// [ParseContentStream].
package graphics
