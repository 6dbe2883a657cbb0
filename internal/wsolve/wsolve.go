// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wsolve normalizes whitespace across a source tree: it strips
// trailing whitespace from every line and replaces tabs with spaces in
// every file that is not ignored.
package wsolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	pb "github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/srctools/pkg/types"
)

// Summary holds the outcome of a normalization run.
type Summary struct {
	// Processed counts files that were normalized, whether or not their
	// content changed.
	Processed int
	// Changed counts files that were rewritten.
	Changed int
	// Skipped counts binary files left alone.
	Skipped int
	// Failed counts files that could not be read or written.
	Failed int
}

// Total returns the number of files considered. This is the "files
// touched" figure reported by the CLI.
func (s Summary) Total() int {
	return s.Processed + s.Skipped + s.Failed
}

// HasFailures reports whether any file failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Run normalizes every file under cfg.Root. Files are processed by a
// bounded pool of cfg.Workers goroutines. A file that fails is reported on
// w and counted; the run continues with the remaining files. Run stops
// early and returns ctx.Err() if ctx is cancelled.
func Run(ctx context.Context, cfg types.WsolveConfig, w io.Writer) (Summary, error) {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	files, err := FileList(root, cfg.IgnorePrefixes, cfg.SkipDirs)
	if err != nil {
		return Summary{}, err
	}
	log.Debug("collected files", "root", root, "files", len(files), "workers", workers)

	var bar *pb.ProgressBar
	if cfg.Progress {
		bar = pb.StartNew(len(files))
		defer bar.Finish()
	}

	var (
		mu      sync.Mutex
		summary Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			changed, err := NormalizeFile(path, cfg.TabWidth)

			mu.Lock()
			defer mu.Unlock()
			if bar != nil {
				bar.Increment()
			}
			switch {
			case errors.Is(err, ErrBinary):
				log.Debug("skipped binary file", "path", path)
				summary.Skipped++
			case err != nil:
				fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
				summary.Failed++
			default:
				if changed {
					log.Debug("normalized", "path", path)
					summary.Changed++
				}
				summary.Processed++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}
