package metadata

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/git-pkgs/sysdeps/internal/core"
)

type key struct {
	group, artifact, extension, classifier, version string
}

func keyOf(id core.Identity) key {
	return key{
		group:      id.GroupID,
		artifact:   id.ArtifactID,
		extension:  id.ResolvedExtension(),
		classifier: id.Classifier,
		version:    id.ResolvedVersion(),
	}
}

// Index is an in-memory Provider over a set of package metadata documents.
//
// An artifact is indexed under each of its compat versions, or under the
// sentinel version when it has none, and the same again for each alias.
type Index struct {
	entries   map[key]core.ArtifactMetadata
	logger    *slog.Logger
	ignoreDup bool
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) IndexOption {
	return func(ix *Index) {
		ix.logger = l
	}
}

// IgnoreDuplicates silences the warning logged when two artifacts claim the
// same coordinates. The first one is kept either way.
func IgnoreDuplicates(ignore bool) IndexOption {
	return func(ix *Index) {
		ix.ignoreDup = ignore
	}
}

// NewIndex indexes pkgs in order.
func NewIndex(pkgs []*core.PackageMetadata, opts ...IndexOption) *Index {
	ix := &Index{
		entries: make(map[key]core.ArtifactMetadata),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(ix)
	}
	for _, pkg := range pkgs {
		ix.add(pkg)
	}
	return ix
}

func (ix *Index) add(pkg *core.PackageMetadata) {
	for _, a := range pkg.Artifacts {
		versions := a.CompatVersions
		if len(versions) == 0 {
			versions = []string{core.SystemVersion}
		}
		names := append([]core.Identity{a.Identity}, a.Aliases...)
		for _, name := range names {
			if name.Extension == "" {
				name.Extension = a.Extension
			}
			for _, v := range versions {
				ix.put(keyOf(name.WithVersion(v)), a)
			}
		}
	}
}

func (ix *Index) put(k key, a core.ArtifactMetadata) {
	if existing, dup := ix.entries[k]; dup {
		if !ix.ignoreDup && existing.Path != a.Path {
			ix.logger.Warn("duplicate artifact metadata",
				"artifact", k.group+":"+k.artifact+":"+k.extension+":"+k.version,
				"kept", existing.Path,
				"ignored", a.Path)
		}
		return
	}
	ix.entries[k] = a
}

// Lookup implements Provider.
func (ix *Index) Lookup(id core.Identity) (core.ArtifactMetadata, bool) {
	a, ok := ix.entries[keyOf(id)]
	return a, ok
}

// Len returns the number of indexed coordinates.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// LoadPaths reads metadata documents from paths, which may be files or
// directories of *.yaml / *.yml files, and indexes them in order. Missing
// paths are skipped. Unreadable or malformed documents are logged and
// skipped.
func LoadPaths(paths []string, opts ...IndexOption) (*Index, error) {
	ix := NewIndex(nil, opts...)
	for _, p := range paths {
		files, err := documentFiles(p)
		if errors.Is(err, fs.ErrNotExist) {
			ix.logger.Debug("metadata repository missing", "path", p)
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			pkg, err := loadFile(f)
			if err != nil {
				ix.logger.Warn("skipping unreadable metadata", "path", f, "error", err)
				continue
			}
			ix.add(pkg)
		}
	}
	return ix, nil
}

func documentFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); strings.EqualFold(ext, ".yaml") || strings.EqualFold(ext, ".yml") {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func loadFile(path string) (*core.PackageMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}
