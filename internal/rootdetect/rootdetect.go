// Package rootdetect computes an explicit project root directory,
// isolating the cwd dependency called out in spec.md's REDESIGN FLAGS
// ("Global cwd dependency for relative-path config"): the CLI resolves
// root-dir once at startup and the engine never reads process state
// again. Adapted from inspector/repository/detector.go, trimmed to the
// JS/TS-relevant project markers this migration targets.
package rootdetect

import (
	"context"
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// markers are searched for, in order, at each directory level while
// walking up from startDir. go.mod is included because a JS/TS package
// being migrated sometimes lives inside a Go monorepo that wraps it.
var markers = []string{"package.json", ".git", "go.mod"}

// Detect walks up from startDir looking for a package.json, .git or
// go.mod marker and returns the first directory holding one, absolute. If none is found
// it returns startDir itself, made absolute.
func Detect(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	fs := afs.New()
	ctx := context.Background()
	dir := abs
	for {
		for _, marker := range markers {
			if exists, _ := fs.Exists(ctx, filepath.Join(dir, marker)); exists {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return abs, nil
}

// ModuleName reads rootDir/go.mod, if present, and returns its declared
// module path. Used only to annotate a detected root when it happens to
// be a Go monorepo anchor rather than a bare package.json/.git directory.
func ModuleName(rootDir string) (string, bool) {
	goModPath := filepath.Join(rootDir, "go.mod")
	fs := afs.New()
	data, err := fs.DownloadWithURL(context.Background(), goModPath)
	if err != nil || len(data) == 0 {
		return "", false
	}
	mod, err := modfile.Parse(goModPath, data, nil)
	if err != nil || mod.Module == nil {
		return "", false
	}
	return mod.Module.Mod.Path, true
}
