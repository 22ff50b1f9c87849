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

package font

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Names of the built-in fonts, for use with [Cache.Get].
const (
	BuiltinHelvetica = "Helvetica"
	BuiltinGoRegular = "GoRegular"
)

// Cache holds loaded font metrics, so that font files are read only once.
//
// A Cache is owned by the caller; fonts stay in the cache until they are
// removed using [Cache.Evict].  It is safe to use a Cache concurrently from
// multiple goroutines.
type Cache struct {
	mu    sync.Mutex
	fonts map[string]Metrics
}

// NewCache returns a new, empty cache.
func NewCache() *Cache {
	return &Cache{
		fonts: make(map[string]Metrics),
	}
}

// Get returns the font metrics for the given font.
//
// The name is either one of the built-in font names [BuiltinHelvetica] and
// [BuiltinGoRegular], or the path of a font file.  Files ending in ".afm"
// are read as Type 1 font metrics, all other files are read as TrueType or
// OpenType fonts.
func (c *Cache) Get(name string) (Metrics, error) {
	key := cacheKey(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.fonts[key]; ok {
		return m, nil
	}

	m, err := load(name)
	if err != nil {
		return nil, err
	}
	if c.fonts == nil {
		c.fonts = make(map[string]Metrics)
	}
	c.fonts[key] = m
	return m, nil
}

// Evict removes a font from the cache.  It reports whether the font was
// present.
func (c *Cache) Evict(name string) bool {
	key := cacheKey(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.fonts[key]
	delete(c.fonts, key)
	return ok
}

// Len returns the number of fonts in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fonts)
}

func cacheKey(name string) string {
	switch name {
	case BuiltinHelvetica, BuiltinGoRegular:
		return name
	}
	return filepath.Clean(name)
}

func load(name string) (Metrics, error) {
	switch name {
	case BuiltinHelvetica:
		return Helvetica(), nil
	case BuiltinGoRegular:
		return GoRegular(), nil
	}

	if strings.EqualFold(filepath.Ext(name), ".afm") {
		return openAFM(name)
	}
	m, err := OpenTrueType(name)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func openAFM(path string) (Metrics, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer fd.Close()

	m, err := ReadAFM(fd)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("afm: %w", err)}
	}
	return m, nil
}
