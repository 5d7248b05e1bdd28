// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Decoders for intrinsic dimension probing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// imagesDirName is the folder the Box sync client keeps note images in,
// as a sibling of the note (or of an ancestor directory).
const imagesDirName = "Box Notes Images"

// DirResolver resolves image references for one note by searching the
// "Box Notes Images/<note> Images" folder in the note's directory and
// each ancestor, stopping at the sync roots.
type DirResolver struct {
	notePath string
	roots    map[string]bool
}

// NewDirResolver builds a resolver for the note at notePath. The search
// stops at the platform Box sync roots under the user's home directory.
func NewDirResolver(notePath string) *DirResolver {
	roots := make(map[string]bool)
	if home, err := os.UserHomeDir(); err == nil {
		roots[filepath.Join(home, "Library", "CloudStorage", "Box-Box")] = true
		roots[filepath.Join(home, "Box")] = true
	}
	return &DirResolver{notePath: notePath, roots: roots}
}

// Resolve returns the raw bytes and intrinsic pixel dimensions of the
// named image, or an error when the image cannot be found or decoded.
func (r *DirResolver) Resolve(name string) ([]byte, int, int, error) {
	abs, err := filepath.Abs(r.notePath)
	if err != nil {
		abs = r.notePath
	}
	title := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	sub := filepath.Join(imagesDirName, title+" Images", name)

	dir := filepath.Dir(abs)
	for {
		candidate := filepath.Join(dir, sub)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return readImage(candidate)
		}
		if r.roots[dir] {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, 0, 0, fmt.Errorf("image %s not found for note %s", name, filepath.Base(r.notePath))
}

func readImage(path string) ([]byte, int, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("reading image %s: %w", path, err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decoding image %s: %w", path, err)
	}
	return data, cfg.Width, cfg.Height, nil
}
