// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/noteconv/pkg/types"
)

func TestIsNote(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"meeting.boxnote", true},
		{"dir/meeting.boxnote", true},
		{"MEETING.BOXNOTE", true},
		{"meeting.txt", false},
		{"meeting.boxnote.bak", false},
		{"boxnote", false},
	}
	for _, tt := range tests {
		if got := IsNote(tt.path); got != tt.want {
			t.Errorf("IsNote(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParseV2(t *testing.T) {
	data := []byte(`{
		"doc": {
			"type": "doc",
			"content": [
				{"type": "paragraph", "content": [{"type": "text", "text": "hi"}]}
			]
		}
	}`)
	n, err := Parse(data, "/sync/Team Notes/standup.boxnote")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n.Title != "standup" {
		t.Errorf("Title = %q, want standup", n.Title)
	}
	if n.SchemaVersion != types.SchemaV2 {
		t.Errorf("SchemaVersion = %d, want %d", n.SchemaVersion, types.SchemaV2)
	}
	if n.Doc == nil || len(n.Doc.Content) != 1 {
		t.Fatalf("Doc = %+v", n.Doc)
	}
	if got := n.Doc.Content[0].Content[0].Text; got != "hi" {
		t.Errorf("text = %q, want hi", got)
	}
}

func TestParseLegacy(t *testing.T) {
	// Pre-2022 notes carry the editor state directly, with no "doc" key.
	data := []byte(`{"atext": {"text": "old format"}, "pool": {}}`)
	n, err := Parse(data, "old.boxnote")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n.SchemaVersion != types.SchemaLegacy {
		t.Errorf("SchemaVersion = %d, want legacy", n.SchemaVersion)
	}
	if n.Doc != nil {
		t.Errorf("legacy note should have no content tree")
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("{not json"), "bad.boxnote"); err == nil {
		t.Fatal("Parse accepted malformed JSON")
	}
}

func TestReadRejectsNonNote(t *testing.T) {
	if _, err := Read("notes.txt"); err == nil {
		t.Fatal("Read accepted a non-note path")
	}
}

func TestReadMissingFileFailsImmediately(t *testing.T) {
	defer swapRetryDelays([]time.Duration{time.Hour})()

	start := time.Now()
	_, err := Read(filepath.Join(t.TempDir(), "absent.boxnote"))
	if err == nil {
		t.Fatal("Read succeeded on a missing file")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("missing file took %v; should fail without retrying", elapsed)
	}
}

func TestReadRetriesTransientErrors(t *testing.T) {
	defer swapRetryDelays([]time.Duration{time.Millisecond, time.Millisecond})()

	dir := t.TempDir()
	path := filepath.Join(dir, "locked.boxnote")
	if err := os.WriteFile(path, []byte(`{"doc": null}`), 0o000); err != nil {
		t.Fatal(err)
	}
	if os.Getuid() == 0 {
		t.Skip("permission errors are not observable as root")
	}

	_, err := Read(path)
	if err == nil {
		t.Fatal("Read succeeded on an unreadable file")
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("error = %v, want exhausted retry schedule", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.boxnote")
	data := `{"doc": {"type": "doc", "content": [{"type": "paragraph"}]}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n.Title != "plan" || n.SchemaVersion != types.SchemaV2 {
		t.Errorf("note = %+v", n)
	}
}

func swapRetryDelays(delays []time.Duration) func() {
	old := RetryDelays
	RetryDelays = delays
	return func() { RetryDelays = old }
}
