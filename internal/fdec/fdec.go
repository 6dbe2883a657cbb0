// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fdec generates a header of forward function declarations from a
// single C source file.
//
// The extractor is a heuristic, not a parser. It runs one linear pipeline:
// read the source, scan for lines that look like signatures, drop the last
// one (the entry point), dedupe, render an include-guarded header and write
// it in a single replacement.
package fdec

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/srctools/internal/fileutil"
	"github.com/pdiddy/srctools/pkg/types"
)

const (
	// DefaultInput is the source file scanned when none is given.
	DefaultInput = "LastEmperor.c"
	// DefaultOutputName is the header written next to the input.
	DefaultOutputName = "fdec.h"
)

// ReadError reports that the input source could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading input %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports that the generated header could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing output %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Result describes one extractor run.
type Result struct {
	Input        string
	Output       string
	Matches      int
	Declarations []string
	Document     string
	Elapsed      time.Duration
}

// OutputPath returns the header path for cfg: cfg.Output if set, otherwise
// fdec.h in the input's directory.
func OutputPath(cfg types.FdecConfig) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	return filepath.Join(filepath.Dir(inputPath(cfg)), DefaultOutputName)
}

func inputPath(cfg types.FdecConfig) string {
	if cfg.Input == "" {
		return DefaultInput
	}
	return cfg.Input
}

// Prepare reads the input and renders the header document in memory
// without touching the output file.
func Prepare(cfg types.FdecConfig) (*Result, error) {
	start := time.Now()
	in := inputPath(cfg)

	data, err := os.ReadFile(in)
	if err != nil {
		return nil, &ReadError{Path: in, Err: err}
	}

	matches := Scan(string(data))
	decls := Dedupe(DropEntryPoint(matches))
	log.Debug("scanned source", "input", in, "matches", len(matches), "declarations", len(decls))

	doc := Render(filepath.Base(in), decls, HeaderOptions{
		Attribution: cfg.Attribution,
		ToolName:    cfg.ToolName,
	})

	return &Result{
		Input:        in,
		Output:       OutputPath(cfg),
		Matches:      len(matches),
		Declarations: decls,
		Document:     doc,
		Elapsed:      time.Since(start),
	}, nil
}

// Generate runs the full pipeline and replaces the output header. An
// existing header is overwritten with its permission bits preserved.
func Generate(cfg types.FdecConfig) (*Result, error) {
	start := time.Now()

	res, err := Prepare(cfg)
	if err != nil {
		return nil, err
	}

	mode, err := fileutil.FileMode(res.Output, 0o644)
	if err != nil {
		return nil, &WriteError{Path: res.Output, Err: err}
	}
	if err := fileutil.WriteFileAtomic(res.Output, []byte(res.Document), mode); err != nil {
		return nil, &WriteError{Path: res.Output, Err: err}
	}
	log.Debug("wrote header", "output", res.Output, "bytes", len(res.Document))

	res.Elapsed = time.Since(start)
	return res, nil
}
