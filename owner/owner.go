// Package owner answers "which installed package owns this file" from an
// index built once, in the background, from the system package database.
//
// The first use starts the build; every lookup waits for it to finish exactly
// once and then reads an immutable map. A failed query is logged and leaves
// the index permanently empty; it is never retried.
package owner

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/git-pkgs/sysdeps/internal/task"
)

// Record is one (file, owning package) pair reported by the package database.
type Record struct {
	Path    string
	Package string
}

// Querier lists every installed file with its owning package.
type Querier interface {
	Query(ctx context.Context) ([]Record, error)
}

// empty is the sentinel index used after a failed query.
var empty = map[string]string{}

// Index maps normalized file paths to package names.
type Index struct {
	querier Querier
	logger  *slog.Logger
	build   *task.Future[map[string]string]
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(ix *Index) {
		ix.logger = l
	}
}

// NewIndex creates an index over q. Nothing runs until Start or the first
// LookupFile.
func NewIndex(q Querier, opts ...Option) *Index {
	ix := &Index{
		querier: q,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(ix)
	}
	ix.build = task.New(ix.load)
	return ix
}

// Start begins building the index in the background. It is safe to call
// more than once.
func (ix *Index) Start() {
	ix.build.Start()
}

// Ready reports whether the index has been built.
func (ix *Index) Ready() bool {
	return ix.build.Ready()
}

// LookupFile returns the package owning path. Symbolic links in path are
// resolved first. It blocks until the index is built and reports false for
// unowned paths, including when the build failed.
func (ix *Index) LookupFile(path string) (string, bool) {
	key := normalize(path)
	pkg, ok := ix.build.Get()[key]
	return pkg, ok
}

// Len returns the number of indexed files, waiting for the build.
func (ix *Index) Len() int {
	return len(ix.build.Get())
}

func (ix *Index) load() map[string]string {
	if ix.querier == nil {
		return empty
	}

	records, err := ix.querier.Query(context.Background())
	if err != nil {
		ix.logger.Warn("package ownership index unavailable", "error", err)
		return empty
	}

	index := make(map[string]string, len(records))
	for _, r := range records {
		if r.Path == "" || r.Package == "" {
			continue
		}
		key := normalize(r.Path)
		if _, dup := index[key]; dup {
			continue
		}
		index[key] = r.Package
	}
	ix.logger.Debug("package ownership index ready", "files", len(index))
	return index
}

func normalize(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}
