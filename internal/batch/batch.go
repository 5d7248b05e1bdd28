// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch converts many independent notes through a bounded worker
// pool. Conversions share no mutable state: the palette tables are
// read-only and every per-file context is allocated fresh, so workers need
// no locks and no cross-file ordering.
package batch

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/pdiddy/noteconv/internal/emit"
	"github.com/pdiddy/noteconv/internal/engine"
	"github.com/pdiddy/noteconv/internal/index"
	"github.com/pdiddy/noteconv/internal/note"
	"github.com/pdiddy/noteconv/pkg/types"
)

// Runner drives a batch conversion run.
type Runner struct {
	Cfg   types.ConvertConfig
	Store *index.Store // optional conversion ledger
	Log   zerolog.Logger
}

// Result summarizes a batch run.
type Result struct {
	Converted int
	Skipped   int
	Failed    int
	Warnings  int

	// OutputBytes is the total size of the files written.
	OutputBytes int64
}

// Total returns the number of notes processed.
func (r Result) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any notes failed conversion.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

type fileStatus int

const (
	statusConverted fileStatus = iota
	statusSkipped
	statusFailed
	statusPlanned
)

type fileResult struct {
	path     string
	output   string
	status   fileStatus
	warnings []engine.Warning
	bytes    int64
	err      error
}

// Run converts the given note files, printing per-file status lines and a
// summary to w. The worker pool bounds parallelism; one worker converts
// one note at a time.
func (r *Runner) Run(paths []string, w io.Writer) Result {
	cfg := r.Cfg.WithDefaults()

	jobs := make(chan string)
	results := make(chan fileResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- r.convertOne(path, cfg)
			}
		}()
	}

	go func() {
		for _, p := range paths {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var result Result
	for fr := range results {
		switch fr.status {
		case statusConverted:
			result.Converted++
			result.OutputBytes += fr.bytes
			fmt.Fprintf(w, "converted: %s -> %s\n", fr.path, fr.output)
		case statusPlanned:
			result.Converted++
			fmt.Fprintf(w, "would convert: %s -> %s\n", fr.path, fr.output)
		case statusSkipped:
			result.Skipped++
			fmt.Fprintf(w, "skipped: %s (already converted)\n", fr.path)
		case statusFailed:
			result.Failed++
			fmt.Fprintf(w, "failed:  %s (%v)\n", fr.path, fr.err)
		}
		for _, warn := range fr.warnings {
			result.Warnings++
			fmt.Fprintf(w, "warning: %s: %s\n", fr.path, warn)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed, %d warnings (total: %d, %s written)\n",
		result.Converted, result.Skipped, result.Failed, result.Warnings,
		result.Total(), humanize.Bytes(uint64(result.OutputBytes)))
	return result
}

// convertOne runs the full pipeline for a single note: read, checksum,
// skip check, convert, emit, ledger update.
func (r *Runner) convertOne(path string, cfg types.ConvertConfig) fileResult {
	outputPath := strings.TrimSuffix(path, note.Ext) + cfg.Format.Ext()
	fr := fileResult{path: path, output: outputPath}
	log := r.Log.With().Str("note", path).Logger()

	data, err := note.Read(path)
	if err != nil {
		fr.status = statusFailed
		fr.err = err
		return fr
	}
	sum := index.Checksum(data)

	if !cfg.Force && r.isCurrent(path, outputPath, sum, cfg.Format) {
		fr.status = statusSkipped
		return fr
	}
	if cfg.DryRun {
		fr.status = statusPlanned
		return fr
	}

	n, err := note.Parse(data, path)
	if err != nil {
		fr.status = statusFailed
		fr.err = err
		return fr
	}

	start := time.Now()
	doc, warnings, err := engine.Convert(n.Doc, n.SchemaVersion, note.NewDirResolver(path), cfg)
	fr.warnings = warnings
	if err != nil {
		fr.status = statusFailed
		fr.err = err
		return fr
	}
	doc.Title = n.Title
	log.Debug().Int("units", len(doc.Units)).Dur("elapsed", time.Since(start)).Msg("converted note tree")

	emitter, err := emit.ForFormat(cfg.Format)
	if err != nil {
		fr.status = statusFailed
		fr.err = err
		return fr
	}

	f, err := os.Create(outputPath)
	if err != nil {
		fr.status = statusFailed
		fr.err = fmt.Errorf("creating %s: %w", outputPath, err)
		return fr
	}
	if err := emitter.Emit(doc, f); err != nil {
		f.Close()
		os.Remove(outputPath)
		fr.status = statusFailed
		fr.err = fmt.Errorf("writing %s: %w", outputPath, err)
		return fr
	}
	if err := f.Close(); err != nil {
		fr.status = statusFailed
		fr.err = fmt.Errorf("closing %s: %w", outputPath, err)
		return fr
	}

	if info, err := os.Stat(outputPath); err == nil {
		fr.bytes = info.Size()
	}

	if r.Store != nil {
		err := r.Store.Record(index.Entry{
			NotePath:    path,
			Format:      string(cfg.Format),
			Checksum:    sum,
			OutputPath:  outputPath,
			Warnings:    len(warnings),
			ConvertedAt: time.Now(),
		})
		if err != nil {
			log.Warn().Err(err).Msg("ledger update failed")
		}
	}

	fr.status = statusConverted
	return fr
}

// isCurrent reports whether an up-to-date output already exists: the
// output file is present and, when a ledger is configured, the recorded
// checksum matches the note's current content.
func (r *Runner) isCurrent(path, outputPath, sum string, format types.Format) bool {
	if _, err := os.Stat(outputPath); err != nil {
		return false
	}
	if r.Store == nil {
		return true
	}
	entry, err := r.Store.Lookup(path, format)
	if err != nil || entry == nil {
		// Output exists but the ledger has no record; reconvert to be safe.
		return false
	}
	return entry.Checksum == sum
}
