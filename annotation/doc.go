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

// Package annotation compiles annotation descriptions into PDF annotation
// dictionaries.
//
// An annotation is described by a [Kind], a [Location] and an [Appearance].
// The function [Compile] maps the geometry into page space and generates an
// appearance stream together with the kind-specific dictionary entries.
// [Assemble] then combines the result with [Metadata] into the final
// annotation dictionary.
//
// Square and circle annotations use rectangle locations.  Their rectangle is
// padded by the line width.  Line, polygon, polyline and ink annotations use
// point lists.  Text, image and stamp annotations use rectangle locations,
// and are laid out in caller coordinates before being mapped into page
// space, so that rotated pages show rotated text and images.
package annotation
