// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package note reads .boxnote files off a synced filesystem and locates
// the image resources that accompany them. Sync clients materialize files
// lazily, so reads retry on a short backoff schedule before giving up.
package note

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/noteconv/pkg/types"
)

// Ext is the note file extension.
const Ext = ".boxnote"

// RetryDelays is the wait schedule applied when a note read fails because
// the sync client has not finished downloading the file. Tests override
// this to avoid real sleeps.
var RetryDelays = []time.Duration{
	1 * time.Second,
	3 * time.Second,
	5 * time.Second,
	5 * time.Second,
	10 * time.Second,
}

// IsNote reports whether path names a note file.
func IsNote(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Ext)
}

// Load reads and parses the note at path. The title derives from the
// filename. Notes written before the August 2022 format change lack the
// "doc" wrapper; they load with SchemaLegacy and are rejected downstream.
func Load(path string) (*types.Note, error) {
	data, err := Read(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Read returns the raw bytes of the note at path, waiting out sync lag.
func Read(path string) ([]byte, error) {
	if !IsNote(path) {
		return nil, fmt.Errorf("%s is not a %s file", path, Ext)
	}
	return readWithRetry(path)
}

// Parse decodes raw note bytes. path supplies the title.
func Parse(data []byte, path string) (*types.Note, error) {
	var raw struct {
		Doc *types.Node `json:"doc"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	n := &types.Note{
		Title:         strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		SchemaVersion: types.SchemaV2,
		Doc:           raw.Doc,
	}
	if raw.Doc == nil {
		n.SchemaVersion = types.SchemaLegacy
	}
	return n, nil
}

// readWithRetry reads the file, waiting out transient errors on the
// RetryDelays schedule. A file that plainly does not exist fails
// immediately; anything else is assumed to be sync lag.
func readWithRetry(path string) ([]byte, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("note not found at %s: %w", path, err)
		}
		lastErr = err
		if attempt >= len(RetryDelays) {
			break
		}
		time.Sleep(RetryDelays[attempt])
	}
	return nil, fmt.Errorf("reading %s after %d attempts: %w", path, len(RetryDelays)+1, lastErr)
}
