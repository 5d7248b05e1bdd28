// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine converts a parsed note content tree into the
// target-agnostic document model. It resolves arbitrary styling onto the
// palette the target formats support, renders nested lists through literal
// markers and explicit indentation, and expands spanned table cells into
// validated rectangular grids. The engine performs no I/O of its own:
// image bytes arrive through a ResourceResolver, and emitters consume the
// resulting model elsewhere.
package engine

import (
	"errors"

	"github.com/pdiddy/noteconv/pkg/types"
)

// ResourceResolver supplies raw image bytes and intrinsic dimensions for
// resources referenced by name within a note.
type ResourceResolver interface {
	Resolve(name string) (data []byte, width, height int, err error)
}

// MinSchemaVersion is the oldest note schema the engine accepts. Legacy
// notes are rejected outright rather than best-effort converted.
const MinSchemaVersion = types.SchemaV2

// Convert traverses the note tree rooted at root and builds the document
// model. Fatal problems (legacy schema, malformed tables) return an error
// and no partial output. Recoverable problems (unknown node types, missing
// images) accumulate as warnings returned alongside the completed model.
//
// Conversion is single-threaded and pure: all traversal state lives in the
// call, so concurrent conversions of independent notes share nothing.
func Convert(root *types.Node, version int, res ResourceResolver, cfg types.ConvertConfig) (*types.Document, []Warning, error) {
	if version < MinSchemaVersion {
		return nil, nil, &UnsupportedFormatError{Version: version}
	}

	w := &walker{res: res, cfg: cfg.WithDefaults()}
	if res == nil {
		w.res = noResources{}
	}

	doc := &types.Document{}
	if root != nil {
		if err := w.walk(root.Content, blockContext{}, &doc.Units); err != nil {
			return nil, nil, err
		}
	}
	return doc, w.warnings, nil
}

// noResources is the resolver used when the caller provides none; every
// image resolves as missing.
type noResources struct{}

func (noResources) Resolve(name string) ([]byte, int, int, error) {
	return nil, 0, 0, errors.New("no resource resolver configured")
}
