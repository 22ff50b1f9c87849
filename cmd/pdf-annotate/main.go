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

// Pdf-annotate adds the annotations described in a TOML job file to a PDF
// document.
//
// Usage:
//
//	pdf-annotate [-o out.pdf] [-watch] [-v] job.toml
//
// With -watch, the program keeps running and repeats the job whenever the
// job file or the input PDF changes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"seehuhn.de/go/annotate"
	"seehuhn.de/go/annotate/font"
	"seehuhn.de/go/annotate/host/pdfcpu"
)

func main() {
	outArg := flag.String("o", "", "output file (overrides the job file, \"-\" for stdout)")
	watch := flag.Bool("watch", false, "re-run the job when the job file or the input changes")
	verbose := flag.Bool("v", false, "print progress information")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] job.toml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("pdf-annotate: ")

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	jobFile := flag.Arg(0)

	r := &runner{
		jobFile: jobFile,
		output:  *outArg,
		fonts:   font.NewCache(),
	}
	if *verbose {
		r.logger = log.Default()
	}

	if *watch {
		err := r.watch()
		check(err)
		return
	}
	err := r.run()
	check(err)
}

// runner executes jobs.  The font cache is kept between runs in watch mode.
type runner struct {
	jobFile string
	output  string
	fonts   *font.Cache
	logger  *log.Logger
}

// run executes the job once.
func (r *runner) run() error {
	job, err := LoadJob(r.jobFile)
	if err != nil {
		return err
	}
	output := job.path(job.Output)
	if r.output != "" {
		output = r.output
	}
	if output == "-" && term.IsTerminal(int(os.Stdout.Fd())) {
		return errTerminal
	}
	if err := job.checkOutput(output, r.jobFile); err != nil {
		return err
	}

	doc, err := pdfcpu.Open(job.path(job.Input))
	if err != nil {
		return err
	}

	opts, err := job.options(r.fonts)
	if err != nil {
		return err
	}
	if r.logger != nil {
		opts = append(opts, annotate.WithLogger(r.logger))
	}
	a, err := annotate.New(doc, opts...)
	if err != nil {
		return err
	}

	for _, p := range job.Pages {
		err := a.SetPageDimensions(p.Index, p.Width, p.Height)
		if err != nil {
			return fmt.Errorf("page %d: %w", p.Index, err)
		}
	}
	for i := range job.Annots {
		entry := &job.Annots[i]
		kind, loc, app, meta, err := entry.build(job)
		if err != nil {
			return fmt.Errorf("annotation %d: %w", i+1, err)
		}
		_, err = a.AddAnnotation(kind, loc, app, meta)
		if err != nil {
			return fmt.Errorf("annotation %d (%s): %w", i+1, kind, err)
		}
	}

	if output == "-" {
		return a.Write(os.Stdout)
	}
	err = a.WriteFile(output)
	if err != nil {
		return err
	}
	if r.logger != nil {
		r.logger.Printf("%d annotations written to %s", a.Added(), output)
	}
	return nil
}

var errTerminal = errors.New("refusing to write PDF data to a terminal")

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
