// Package index implements the Source Index (C1): it enumerates every
// candidate file under the configured primary directories and alias
// sources, parses each once, and caches the result as a core.Record
// keyed by canonical path. It also answers import-specifier lookups,
// per spec.md §4.1's contract: relative paths, and package-style
// specifiers under a root's import prefix. Alias wildcard patterns are
// matched by config.Resolve, which the Resolver consults.
package index

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/afs"

	"github.com/viant/emberdata-migrate/internal/tsast"
	"github.com/viant/emberdata-migrate/migrate/config"
	"github.com/viant/emberdata-migrate/migrate/core"
)

// sourceCandidateExtensions are the only extensions the Source Index
// considers: .ts and .js (spec.md §4.1) plus their .tsx and .jsx forms.
var sourceCandidateExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
}

// Root is one primary or alias directory the index expands files from.
type Root struct {
	Directory     string
	ImportPrefix  string // implicit alias prefix matched against specifiers
	IsAlias       bool
}

// Index is the Source Index component.
type Index struct {
	cfg   *config.Config
	fs    afs.Service
	roots []Root

	byPath      map[string]*core.Record
	orderedPath []string // insertion order, for deterministic iteration

	Warnings []error
}

// New constructs an Index for cfg. fs performs all file reads, matching
// the teacher's pattern of injecting an afs.Service rather than calling
// os.ReadFile directly (inspector/repository/detector.go,
// inspector/coder/coder.go).
func New(cfg *config.Config, fs afs.Service) *Index {
	if fs == nil {
		fs = afs.New()
	}
	idx := &Index{
		cfg:    cfg,
		fs:     fs,
		byPath: make(map[string]*core.Record),
	}
	idx.roots = buildRoots(cfg)
	return idx
}

func buildRoots(cfg *config.Config) []Root {
	var roots []Root
	if cfg.ModelSourceDir != "" {
		roots = append(roots, Root{Directory: cfg.ModelSourceDir, ImportPrefix: cfg.ModelImportSource})
	}
	if cfg.MixinSourceDir != "" {
		roots = append(roots, Root{Directory: cfg.MixinSourceDir, ImportPrefix: cfg.MixinImportSource})
	}
	for _, alias := range cfg.AdditionalModelSources {
		dir := strings.TrimSuffix(alias.DirectoryPattern, "*")
		roots = append(roots, Root{Directory: dir, ImportPrefix: strings.TrimSuffix(alias.ImportPattern, "*"), IsAlias: true})
	}
	for _, alias := range cfg.AdditionalMixinSources {
		dir := strings.TrimSuffix(alias.DirectoryPattern, "*")
		roots = append(roots, Root{Directory: dir, ImportPrefix: strings.TrimSuffix(alias.ImportPattern, "*"), IsAlias: true})
	}
	return roots
}

// Build walks every configured root, reads and parses each candidate
// file, and populates the index. Parse failures are recorded as warnings
// and the file is dropped (spec.md §4.1); they never abort the run.
func (idx *Index) Build(ctx context.Context) error {
	for _, root := range idx.roots {
		if root.Directory == "" {
			continue
		}
		if err := idx.indexRoot(ctx, root); err != nil {
			return fmt.Errorf("index root %s: %w", root.Directory, err)
		}
	}
	return nil
}

func (idx *Index) indexRoot(ctx context.Context, root Root) error {
	matches, err := doublestar.FilepathGlob(filepath.Join(filepath.ToSlash(root.Directory), "**", "*"))
	if err != nil {
		return err
	}
	sort.Strings(matches)

	for _, match := range matches {
		ext := strings.ToLower(filepath.Ext(match))
		if !sourceCandidateExtensions[ext] {
			continue
		}
		if err := idx.indexFile(ctx, match, root); err != nil {
			idx.Warnings = append(idx.Warnings, err)
		}
	}
	return nil
}

func (idx *Index) indexFile(ctx context.Context, path string, root Root) error {
	canonical, err := filepath.Abs(path)
	if err != nil {
		canonical = path
	}
	if _, exists := idx.byPath[canonical]; exists {
		return nil
	}

	data, err := idx.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	tree, err := tsast.Parse(ext, data)
	if err != nil {
		idx.Warnings = append(idx.Warnings, &core.ParseWarning{Path: path, Err: err})
		// Per spec.md §4.1 a parse failure silently drops the file from
		// the index rather than aborting the run.
		return nil
	}

	rec := &core.Record{
		CanonicalPath: canonical,
		Surface:       core.SurfaceForExt(ext),
		Source:        data,
		Tree:          tree,
		IsAlias:       root.IsAlias,
	}
	idx.addRecord(rec)
	return nil
}

func (idx *Index) addRecord(rec *core.Record) {
	idx.byPath[rec.CanonicalPath] = rec
	idx.orderedPath = append(idx.orderedPath, rec.CanonicalPath)
}

// Lookup returns the Record at canonicalPath, or (nil, false).
func (idx *Index) Lookup(canonicalPath string) (*core.Record, bool) {
	abs, err := filepath.Abs(canonicalPath)
	if err != nil {
		abs = canonicalPath
	}
	rec, ok := idx.byPath[abs]
	return rec, ok
}

// Records returns every indexed Record in insertion (discovery) order.
func (idx *Index) Records() []*core.Record {
	out := make([]*core.Record, 0, len(idx.orderedPath))
	for _, p := range idx.orderedPath {
		out = append(out, idx.byPath[p])
	}
	return out
}

// Roots exposes the resolved primary+alias roots for the Resolver.
func (idx *Index) Roots() []Root {
	return idx.roots
}

// ImportPathFor computes the specifier other files would use to import
// rec: the root whose Directory contains rec.CanonicalPath, with that
// root's ImportPrefix substituted for the directory portion and the
// extension stripped. Returns false if rec isn't under any configured
// root (can't happen for records this Index produced itself).
func (idx *Index) ImportPathFor(rec *core.Record) (string, bool) {
	var best Root
	found := false
	for _, root := range idx.roots {
		if root.Directory == "" {
			continue
		}
		dir, err := filepath.Abs(root.Directory)
		if err != nil {
			dir = root.Directory
		}
		if !strings.HasPrefix(rec.CanonicalPath, dir) {
			continue
		}
		if found && len(dir) <= len(mustAbs(best.Directory)) {
			continue
		}
		best = root
		found = true
	}
	if !found {
		return "", false
	}
	dir := mustAbs(best.Directory)
	rel := strings.TrimPrefix(rec.CanonicalPath, dir)
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	prefix := strings.TrimSuffix(best.ImportPrefix, "/")
	if prefix == "" {
		return rel, true
	}
	if rel == "" {
		return prefix, true
	}
	return prefix + "/" + rel, true
}

func mustAbs(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// ResolveRelative resolves a relative import specifier (./x, ../x) against
// the importing file's directory, probing the candidate source
// extensions in a fixed, deterministic order.
func (idx *Index) ResolveRelative(specifier, fromDir string) (*core.Record, string, bool) {
	base := filepath.Join(fromDir, specifier)
	for _, ext := range []string{".ts", ".tsx", ".js", ".jsx"} {
		candidate := base + ext
		if rec, ok := idx.Lookup(candidate); ok {
			return rec, candidate, true
		}
	}
	// Already has a recognized extension.
	if rec, ok := idx.Lookup(base); ok {
		return rec, base, true
	}
	return nil, "", false
}

// ResolveUnderRoot resolves an absolute (package-style) specifier against
// a single configured root's import prefix, without consulting alias
// wildcard patterns (those are handled by config.Resolve and the
// Resolver). It implements the primary-root half of spec.md §4.3.
func (idx *Index) ResolveUnderRoot(specifier string) (*core.Record, string, bool) {
	for _, root := range idx.roots {
		if root.ImportPrefix == "" {
			continue
		}
		if !strings.HasPrefix(specifier, root.ImportPrefix) {
			continue
		}
		remainder := strings.TrimPrefix(specifier, root.ImportPrefix)
		remainder = strings.TrimPrefix(remainder, "/")
		base := filepath.Join(root.Directory, remainder)
		for _, ext := range []string{".ts", ".tsx", ".js", ".jsx"} {
			candidate := base + ext
			if rec, ok := idx.Lookup(candidate); ok {
				return rec, candidate, true
			}
		}
	}
	return nil, "", false
}
