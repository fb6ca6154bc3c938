package app

import (
	"os"
	"path/filepath"

	"github.com/mkravets/gust/internal/fsutil"
	"github.com/mkravets/gust/internal/manifest"
	"github.com/mkravets/gust/internal/parser"
	"github.com/mkravets/gust/internal/recipe"
)

// Default document names, checked in order at every directory level.
const (
	DefaultFile     = "gustfile"
	DefaultManifest = "gustfile.hcl"
)

// locate resolves the recipe document path: an explicit file wins,
// otherwise the nearest default document upward from the working
// directory.
func locate(cfg Config) (string, error) {
	if cfg.File != "" {
		return filepath.Abs(cfg.File)
	}

	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return "", err
		}
	}
	return fsutil.FindUpward(dir, DefaultFile, DefaultManifest)
}

// load picks the loader by extension: .hcl documents go through the
// manifest decoder, everything else through the plain-text parser.
func load(path string) (*recipe.Set, error) {
	if filepath.Ext(path) == ".hcl" {
		return manifest.Load(path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parser.Parse(path, src)
}
