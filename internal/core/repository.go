package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CompoundType is the repository type that aggregates other repositories.
const CompoundType = "compound"

// Repository is a source of artifact locations following one layout.
type Repository interface {
	// ID returns the descriptor id.
	ID() string

	// Namespace returns the namespace the repository is restricted to, or "".
	Namespace() string

	// Locate returns the path of id if the repository holds it. It only
	// checks for existence and never writes to the filesystem.
	Locate(id Identity) (string, bool)

	// WithRoot returns an independent copy re-targeted at root.
	WithRoot(root string) Repository
}

// ExistsFunc reports whether a regular file exists at path.
type ExistsFunc func(path string) bool

// FileExists is the default ExistsFunc.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LayoutRepository places artifacts under Root using a Layout.
type LayoutRepository struct {
	id          string
	root        string
	namespace   string
	stereotypes []Stereotype
	layout      Layout
	exists      ExistsFunc
}

// NewLayoutRepository creates a repository from its parts. A nil exists
// function defaults to FileExists.
func NewLayoutRepository(id, root string, layout Layout, exists ExistsFunc) *LayoutRepository {
	if exists == nil {
		exists = FileExists
	}
	return &LayoutRepository{id: id, root: root, layout: layout, exists: exists}
}

// Restrict limits the repository to a namespace and a set of stereotypes.
func (r *LayoutRepository) Restrict(namespace string, stereotypes []Stereotype) *LayoutRepository {
	r.namespace = namespace
	r.stereotypes = stereotypes
	return r
}

func (r *LayoutRepository) ID() string        { return r.id }
func (r *LayoutRepository) Namespace() string { return r.namespace }

// Root returns the directory the layout paths are relative to.
func (r *LayoutRepository) Root() string { return r.root }

// PathFor returns the absolute path id would have in this repository,
// whether or not the file exists. Identities whose layout path would leave
// the root (through ".." segments or an absolute path) have none.
func (r *LayoutRepository) PathFor(id Identity) string {
	if !r.accepts(id) {
		return ""
	}
	rel := filepath.FromSlash(r.layout.Path(id))
	if !filepath.IsLocal(rel) {
		return ""
	}
	return filepath.Join(r.root, rel)
}

func (r *LayoutRepository) Locate(id Identity) (string, bool) {
	path := r.PathFor(id)
	if path == "" || !r.exists(path) {
		return "", false
	}
	return path, true
}

func (r *LayoutRepository) WithRoot(root string) Repository {
	clone := *r
	clone.root = root
	return &clone
}

func (r *LayoutRepository) accepts(id Identity) bool {
	if len(r.stereotypes) == 0 {
		return true
	}
	for _, s := range r.stereotypes {
		if fieldMatches(s.Extension, id.ResolvedExtension()) && fieldMatches(s.Classifier, id.Classifier) {
			return true
		}
	}
	return false
}

// CompoundRepository queries its children in order.
type CompoundRepository struct {
	id        string
	namespace string
	children  []Repository
}

// NewCompoundRepository creates a repository aggregating children.
func NewCompoundRepository(id, namespace string, children []Repository) *CompoundRepository {
	return &CompoundRepository{id: id, namespace: namespace, children: children}
}

func (r *CompoundRepository) ID() string        { return r.id }
func (r *CompoundRepository) Namespace() string { return r.namespace }

func (r *CompoundRepository) Locate(id Identity) (string, bool) {
	for _, child := range r.children {
		if path, ok := child.Locate(id); ok {
			return path, true
		}
	}
	return "", false
}

// WithRoot re-targets every child. Child roots are joined under root so that
// relative placement between children is kept.
func (r *CompoundRepository) WithRoot(root string) Repository {
	children := make([]Repository, len(r.children))
	for i, child := range r.children {
		children[i] = Prefix(child, root)
	}
	return &CompoundRepository{id: r.id, namespace: r.namespace, children: children}
}

// Prefix re-targets repo below prefix, keeping its configured root as a
// subdirectory of prefix.
func Prefix(repo Repository, prefix string) Repository {
	if lr, ok := repo.(*LayoutRepository); ok {
		return lr.WithRoot(filepath.Join(prefix, lr.root))
	}
	return repo.WithRoot(prefix)
}

// NewRepositories builds the repository chain described by descs, in order.
// Compound repositories reference other descriptors by id through the
// comma-separated "repositories" property.
func NewRepositories(descs []RepositoryDescriptor, exists ExistsFunc) ([]Repository, error) {
	b := &repoBuilder{descs: descs, exists: exists, building: map[string]bool{}}
	repos := make([]Repository, 0, len(descs))
	for _, d := range descs {
		repo, err := b.build(d)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

type repoBuilder struct {
	descs    []RepositoryDescriptor
	exists   ExistsFunc
	building map[string]bool
}

func (b *repoBuilder) build(d RepositoryDescriptor) (Repository, error) {
	if d.Type != CompoundType {
		layout, err := NewLayout(d.Type, d.Properties)
		if err != nil {
			return nil, fmt.Errorf("repository %s: %w", d.ID, err)
		}
		return NewLayoutRepository(d.ID, d.Properties["root"], layout, b.exists).
			Restrict(d.Namespace, d.Stereotypes), nil
	}

	if b.building[d.ID] {
		return nil, fmt.Errorf("repository %s: compound repository references itself", d.ID)
	}
	b.building[d.ID] = true
	defer delete(b.building, d.ID)

	var children []Repository
	for _, ref := range strings.Split(d.Properties["repositories"], ",") {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		child, ok := b.lookup(ref)
		if !ok {
			return nil, fmt.Errorf("repository %s: unknown child repository %s", d.ID, ref)
		}
		repo, err := b.build(child)
		if err != nil {
			return nil, err
		}
		children = append(children, repo)
	}
	return NewCompoundRepository(d.ID, d.Namespace, children), nil
}

func (b *repoBuilder) lookup(id string) (RepositoryDescriptor, bool) {
	for _, d := range b.descs {
		if d.ID == id {
			return d, true
		}
	}
	return RepositoryDescriptor{}, false
}
