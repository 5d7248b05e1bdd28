// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// Format identifies a target document representation.
type Format string

const (
	FormatDocx     Format = "docx"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ParseFormat validates a format name from a flag or config file.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDocx, FormatMarkdown, FormatHTML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (expected docx, md, or html)", s)
}

// Ext returns the output file extension for the format, with leading dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// Format selects the target representation: docx, md, or html.
	Format Format `json:"format" yaml:"format"`

	// PageWidth is the usable page content width in points. Images wider
	// than this are scaled down, preserving aspect ratio (default 600).
	PageWidth int `json:"page_width" yaml:"page_width"`

	// Workers bounds batch parallelism; each worker converts one note at a
	// time (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// Force reconverts notes whose output already exists.
	Force bool `json:"force" yaml:"force"`

	// DryRun reports what would be converted without writing anything.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// IndexDir is the directory holding the conversion ledger database.
	// Empty disables the ledger.
	IndexDir string `json:"index_dir" yaml:"index_dir"`
}

// WithDefaults fills zero-valued fields with their defaults.
func (c ConvertConfig) WithDefaults() ConvertConfig {
	if c.Format == "" {
		c.Format = FormatDocx
	}
	if c.PageWidth <= 0 {
		c.PageWidth = DefaultPageWidth
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	return c
}

const (
	// DefaultPageWidth is the usable content width in points. Images are
	// scaled so they never exceed it.
	DefaultPageWidth = 600

	// DefaultWorkers is the batch worker pool size.
	DefaultWorkers = 4
)

// LoaderConfig holds settings for reading notes off a synced filesystem.
type LoaderConfig struct {
	// RetryDelays is the wait schedule applied when a note file read fails
	// because the sync client has not finished downloading it.
	RetryDelays []time.Duration `json:"retry_delays" yaml:"retry_delays"`
}
