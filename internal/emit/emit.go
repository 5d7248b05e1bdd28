// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emit serializes the document model into one of the target
// representations: a Word package, Markdown, or HTML. Emitters are
// interchangeable consumers of the same model; the conversion engine is
// agnostic to which one runs.
package emit

import (
	"fmt"
	"io"

	"github.com/pdiddy/noteconv/pkg/types"
)

// Emitter writes a complete document model to w.
type Emitter interface {
	Emit(doc *types.Document, w io.Writer) error
}

// IndentUnit is the fixed indentation string one nesting level maps to.
// It is constant regardless of marker width so mixed marker styles stay
// aligned.
const IndentUnit = "    "

// ForFormat returns the emitter for the requested output kind.
func ForFormat(f types.Format) (Emitter, error) {
	switch f {
	case types.FormatDocx:
		return &DocxEmitter{}, nil
	case types.FormatMarkdown:
		return &MarkdownEmitter{}, nil
	case types.FormatHTML:
		return &HTMLEmitter{}, nil
	}
	return nil, fmt.Errorf("no emitter for format %q", f)
}
