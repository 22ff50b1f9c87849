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

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 300 * time.Millisecond

// debouncer coalesces bursts of file events into a single call.
type debouncer struct {
	mu     sync.Mutex
	timer  *time.Timer
	delay  time.Duration
	onFire func()
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Reset(d.delay)
		return
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		d.onFire()
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// watch runs the job once and then again whenever one of the watched files
// changes, until the program is interrupted.  Errors from individual runs
// are reported but do not stop the loop.
func (r *runner) watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var mu sync.Mutex
	var watched map[string]bool
	runOnce := func() {
		mu.Lock()
		defer mu.Unlock()

		if err := r.run(); err != nil {
			log.Print(err)
		} else {
			log.Print("done")
		}
		watched = r.watchList()
		for dir := range watchDirs(watched) {
			// Directories are watched instead of files, so that files
			// which are replaced by editors are still noticed.
			if err := w.Add(dir); err != nil {
				log.Print(err)
			}
		}
	}
	isWatched := func(name string) bool {
		mu.Lock()
		defer mu.Unlock()
		return watched[filepath.Clean(name)]
	}

	db := &debouncer{delay: debounceDelay, onFire: runOnce}
	defer db.stop()

	runOnce()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if isWatched(ev.Name) {
				db.trigger()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher: %v", err)
		}
	}
}

// watchList returns the files which trigger a new run: the job file, the
// input PDF and all image files referenced by the job.
func (r *runner) watchList() map[string]bool {
	res := map[string]bool{
		filepath.Clean(r.jobFile): true,
	}
	job, err := LoadJob(r.jobFile)
	if err != nil {
		return res
	}
	for _, name := range job.inputs() {
		res[filepath.Clean(name)] = true
	}
	return res
}

func watchDirs(files map[string]bool) map[string]bool {
	dirs := make(map[string]bool)
	for fname := range files {
		dirs[filepath.Dir(fname)] = true
	}
	return dirs
}
