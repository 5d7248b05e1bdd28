// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import "fmt"

// UnsupportedFormatError reports a note whose schema version predates the
// supported format. It is fatal for the whole document: conversion aborts
// before traversal begins.
type UnsupportedFormatError struct {
	Version int
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported note schema version %d: legacy notes (prior to August 2022) cannot be converted", e.Version)
}

// StructuralError reports a malformed table. It is fatal for the whole
// document: partial output would silently misplace cells, so none is
// produced.
type StructuralError struct {
	Row    int
	Detail string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed table: row %d: %s", e.Row, e.Detail)
}

// WarningKind classifies a recoverable conversion problem.
type WarningKind string

const (
	// WarnUnsupportedNode marks a node of unknown type that was skipped.
	WarnUnsupportedNode WarningKind = "unsupported_node"

	// WarnMissingResource marks an image whose bytes could not be resolved.
	WarnMissingResource WarningKind = "missing_resource"
)

// Warning is a recoverable, local conversion problem. Warnings accumulate
// during traversal and are returned alongside the completed document; they
// are never raised past a node boundary.
type Warning struct {
	Kind   WarningKind
	Node   string
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Node, w.Detail)
}
