// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Find expands path into the list of note files to convert. A file path
// must name a note; a directory is globbed for notes, descending into
// subdirectories when recursive is set.
func Find(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if !IsNote(path) {
			return nil, fmt.Errorf("%s is not a %s file", path, Ext)
		}
		return []string{path}, nil
	}

	pattern := path + "/*" + Ext
	if recursive {
		pattern = path + "/**/*" + Ext
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}
