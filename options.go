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

package annotate

import (
	"log"

	"seehuhn.de/go/annotate/annotation"
	"seehuhn.de/go/annotate/font"
	"seehuhn.de/go/annotate/pagespace"
	"seehuhn.de/go/annotate/pdf"
)

type config struct {
	scale   pagespace.Scale
	version pdf.Version
	metrics font.Metrics
	images  annotation.ImageResolver
	logger  *log.Logger
}

// Option configures an [Annotator].
type Option func(*config)

// WithScale sets the size of one caller unit in PDF units.  This applies
// to all pages for which no rastered dimensions have been registered.
func WithScale(sx, sy float64) Option {
	return func(c *config) {
		c.scale = pagespace.Scale{X: sx, Y: sy}
	}
}

// WithVersion sets the PDF version used to decide which features are
// available.  The default is the version of the host document.
func WithVersion(v pdf.Version) Option {
	return func(c *config) {
		c.version = v
	}
}

// WithMetrics sets the font metrics used to lay out free text annotations.
// The default is Helvetica.
func WithMetrics(m font.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithImages sets the resolver used for the images of image and stamp
// annotations.
func WithImages(r annotation.ImageResolver) Option {
	return func(c *config) {
		c.images = r
	}
}

// WithLogger enables debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
