// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pdiddy/noteconv/internal/index"
	"github.com/pdiddy/noteconv/pkg/types"
)

const simpleNote = `{
	"doc": {
		"type": "doc",
		"content": [
			{"type": "paragraph", "content": [{"type": "text", "text": "hello"}]}
		]
	}
}`

// Legacy note: no "doc" wrapper, rejected by the engine.
const legacyNote = `{"atext": {"text": "old"}}`

func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newRunner(cfg types.ConvertConfig) *Runner {
	return &Runner{Cfg: cfg, Log: zerolog.Nop()}
}

func TestRunConvertsNotes(t *testing.T) {
	dir := t.TempDir()
	a := writeNote(t, dir, "a.boxnote", simpleNote)
	b := writeNote(t, dir, "b.boxnote", simpleNote)

	var out strings.Builder
	r := newRunner(types.ConvertConfig{Format: types.FormatMarkdown})
	res := r.Run([]string{a, b}, &out)

	if res.Converted != 2 || res.Failed != 0 || res.Skipped != 0 {
		t.Fatalf("result = %+v, want 2 converted", res)
	}
	if res.OutputBytes <= 0 {
		t.Errorf("OutputBytes = %d, want > 0", res.OutputBytes)
	}

	md, err := os.ReadFile(filepath.Join(dir, "a.md"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(md), "# a\n") || !strings.Contains(string(md), "hello") {
		t.Errorf("output = %q", md)
	}

	if !strings.Contains(out.String(), "converted: "+a) {
		t.Errorf("status line missing: %q", out.String())
	}
	if !strings.Contains(out.String(), "Batch summary: 2 converted, 0 skipped, 0 failed") {
		t.Errorf("summary missing: %q", out.String())
	}
}

func TestRunSkipsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "a.boxnote", simpleNote)

	r := newRunner(types.ConvertConfig{Format: types.FormatMarkdown})
	var first strings.Builder
	r.Run([]string{path}, &first)

	var second strings.Builder
	res := r.Run([]string{path}, &second)
	if res.Skipped != 1 || res.Converted != 0 {
		t.Fatalf("second run = %+v, want 1 skipped", res)
	}
	if !strings.Contains(second.String(), "skipped: "+path) {
		t.Errorf("skip line missing: %q", second.String())
	}
}

func TestRunForceReconverts(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "a.boxnote", simpleNote)

	r := newRunner(types.ConvertConfig{Format: types.FormatMarkdown})
	r.Run([]string{path}, io.Discard)

	r.Cfg.Force = true
	var out strings.Builder
	res := r.Run([]string{path}, &out)
	if res.Converted != 1 || res.Skipped != 0 {
		t.Fatalf("forced run = %+v, want 1 converted", res)
	}
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "a.boxnote", simpleNote)

	var out strings.Builder
	r := newRunner(types.ConvertConfig{Format: types.FormatMarkdown, DryRun: true})
	res := r.Run([]string{path}, &out)

	if res.Converted != 1 {
		t.Fatalf("result = %+v, want 1 planned", res)
	}
	if !strings.Contains(out.String(), "would convert: "+path) {
		t.Errorf("plan line missing: %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "a.md")); !os.IsNotExist(err) {
		t.Errorf("dry run wrote output")
	}
}

func TestRunFailuresDoNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	good := writeNote(t, dir, "good.boxnote", simpleNote)
	bad := writeNote(t, dir, "bad.boxnote", legacyNote)

	var out strings.Builder
	r := newRunner(types.ConvertConfig{Format: types.FormatMarkdown})
	res := r.Run([]string{good, bad}, &out)

	if res.Converted != 1 || res.Failed != 1 {
		t.Fatalf("result = %+v, want 1 converted + 1 failed", res)
	}
	if !res.HasFailures() {
		t.Errorf("HasFailures = false")
	}
	if !strings.Contains(out.String(), "failed:  "+bad) {
		t.Errorf("failure line missing: %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "good.md")); err != nil {
		t.Errorf("good note output missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.md")); !os.IsNotExist(err) {
		t.Errorf("failed note left an output file")
	}
}

func TestRunReportsWarnings(t *testing.T) {
	noteWithUnknown := `{
		"doc": {
			"type": "doc",
			"content": [
				{"type": "paragraph", "content": [{"type": "text", "text": "ok"}]},
				{"type": "embedded_widget"}
			]
		}
	}`
	dir := t.TempDir()
	path := writeNote(t, dir, "a.boxnote", noteWithUnknown)

	var out strings.Builder
	r := newRunner(types.ConvertConfig{Format: types.FormatMarkdown})
	res := r.Run([]string{path}, &out)

	if res.Converted != 1 || res.Warnings != 1 {
		t.Fatalf("result = %+v, want 1 converted with 1 warning", res)
	}
	if !strings.Contains(out.String(), "warning: "+path) {
		t.Errorf("warning line missing: %q", out.String())
	}
}

func TestRunWithLedger(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "a.boxnote", simpleNote)

	store, err := index.Open(filepath.Join(dir, "index"))
	if err != nil {
		t.Fatalf("index.Open: %v", err)
	}
	defer store.Close()

	r := newRunner(types.ConvertConfig{Format: types.FormatMarkdown})
	r.Store = store
	r.Run([]string{path}, io.Discard)

	entry, err := store.Lookup(path, types.FormatMarkdown)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if entry == nil {
		t.Fatal("conversion not recorded in ledger")
	}
	if entry.OutputPath != filepath.Join(dir, "a.md") {
		t.Errorf("OutputPath = %q", entry.OutputPath)
	}

	// Same content: skipped. Changed content: reconverted.
	res := r.Run([]string{path}, io.Discard)
	if res.Skipped != 1 {
		t.Fatalf("unchanged note = %+v, want skipped", res)
	}

	writeNote(t, dir, "a.boxnote", strings.Replace(simpleNote, "hello", "changed", 1))
	res = r.Run([]string{path}, io.Discard)
	if res.Converted != 1 {
		t.Fatalf("changed note = %+v, want reconverted", res)
	}
}

func TestRunDocxOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "a.boxnote", simpleNote)

	r := newRunner(types.ConvertConfig{Format: types.FormatDocx})
	res := r.Run([]string{path}, io.Discard)
	if res.Converted != 1 {
		t.Fatalf("result = %+v", res)
	}

	data, err := os.ReadFile(filepath.Join(dir, "a.docx"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	// Zip local file header magic.
	if len(data) < 4 || string(data[:2]) != "PK" {
		t.Errorf("docx output is not a zip package")
	}
}
