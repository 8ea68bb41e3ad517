// Package metadata maps artifact coordinates to the files installed packages
// provide.
//
// Each installed package ships a metadata document listing its artifacts.
// Providers index those documents; a Store aggregates providers and looks an
// identity up at its exact version first and at the sentinel version second.
package metadata

import (
	"github.com/git-pkgs/sysdeps/internal/core"
)

// Provider looks an identity up at exactly its resolved version.
type Provider interface {
	Lookup(id core.Identity) (core.ArtifactMetadata, bool)
}

// Store aggregates providers. It is read-only after construction.
type Store struct {
	providers []Provider
}

// NewStore creates a store querying providers in order.
func NewStore(providers ...Provider) *Store {
	return &Store{providers: providers}
}

// GetMetadataFor returns the first provider hit for id at its exact version,
// then the first hit at the sentinel version.
func (s *Store) GetMetadataFor(id core.Identity) (core.ArtifactMetadata, bool) {
	versions := []string{id.ResolvedVersion()}
	if !id.IsSystemVersion() {
		versions = append(versions, core.SystemVersion)
	}

	for _, v := range versions {
		key := id.WithVersion(v)
		for _, p := range s.providers {
			if a, ok := p.Lookup(key); ok {
				return a, true
			}
		}
	}
	return core.ArtifactMetadata{}, false
}
