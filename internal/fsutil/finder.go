// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindUpward searches dir and each of its parents for the first existing
// regular file among names, checking names in the given order at every
// level. It returns the full path of the match.
func FindUpward(dir string, names ...string) (string, error) {
	if len(names) == 0 {
		panic("names must not be empty")
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	start := dir

	for {
		for _, name := range names {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err == nil && info.Mode().IsRegular() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %v found in %q or any parent directory: %w",
				names, start, os.ErrNotExist)
		}
		dir = parent
	}
}
