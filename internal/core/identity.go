package core

import (
	"fmt"
	"strings"
)

const (
	// SystemVersion is the sentinel version meaning "whatever version the system provides".
	SystemVersion = "SYSTEM"

	// DefaultExtension is used when an identity carries no extension.
	DefaultExtension = "pom"

	// ManagedGroup is the groupId prefix reserved for package-managed artifacts.
	ManagedGroup = "JPP"
)

// Identity names a build dependency. Version and Extension are optional and
// resolve to SystemVersion and DefaultExtension when empty.
type Identity struct {
	GroupID    string `yaml:"groupId,omitempty"`
	ArtifactID string `yaml:"artifactId,omitempty"`
	Version    string `yaml:"version,omitempty"`
	Extension  string `yaml:"extension,omitempty"`
	Classifier string `yaml:"classifier,omitempty"`
}

// Dummy denotes a dependency that should intentionally be skipped.
var Dummy = Identity{GroupID: ManagedGroup + "/maven", ArtifactID: "empty-dep"}

// ResolvedVersion returns Version, or SystemVersion if unset.
func (id Identity) ResolvedVersion() string {
	if id.Version == "" {
		return SystemVersion
	}
	return id.Version
}

// ResolvedExtension returns Extension, or DefaultExtension if unset.
func (id Identity) ResolvedExtension() string {
	if id.Extension == "" {
		return DefaultExtension
	}
	return id.Extension
}

// IsSystemVersion reports whether the identity asks for the system-provided version.
func (id Identity) IsSystemVersion() bool {
	return id.ResolvedVersion() == SystemVersion
}

// WithVersion returns a copy of id with the version replaced.
func (id Identity) WithVersion(version string) Identity {
	id.Version = version
	return id
}

// Normalize fills in defaulted fields so that equal identities compare equal
// field by field.
func (id Identity) Normalize() Identity {
	id.Version = id.ResolvedVersion()
	id.Extension = id.ResolvedExtension()
	return id
}

// IsDummy reports whether id is the reserved skip-this-dependency identity.
func (id Identity) IsDummy() bool {
	return id.GroupID == Dummy.GroupID && id.ArtifactID == Dummy.ArtifactID
}

// IsPackageManaged reports whether the groupId is JPP or lives under JPP/.
func (id Identity) IsPackageManaged() bool {
	return id.GroupID == ManagedGroup || strings.HasPrefix(id.GroupID, ManagedGroup+"/")
}

// Compare orders identities by groupId, artifactId, resolved version,
// resolved extension and classifier.
func (id Identity) Compare(other Identity) int {
	if c := strings.Compare(id.GroupID, other.GroupID); c != 0 {
		return c
	}
	if c := strings.Compare(id.ArtifactID, other.ArtifactID); c != 0 {
		return c
	}
	if c := strings.Compare(id.ResolvedVersion(), other.ResolvedVersion()); c != 0 {
		return c
	}
	if c := strings.Compare(id.ResolvedExtension(), other.ResolvedExtension()); c != 0 {
		return c
	}
	return strings.Compare(id.Classifier, other.Classifier)
}

// Equal reports whether the two identities are order-equal.
func (id Identity) Equal(other Identity) bool {
	return id.Compare(other) == 0
}

// String renders the identity as group:artifact:extension[:classifier]:version.
func (id Identity) String() string {
	var b strings.Builder
	b.WriteString(id.GroupID)
	b.WriteByte(':')
	b.WriteString(id.ArtifactID)
	b.WriteByte(':')
	b.WriteString(id.ResolvedExtension())
	if id.Classifier != "" {
		b.WriteByte(':')
		b.WriteString(id.Classifier)
	}
	b.WriteByte(':')
	b.WriteString(id.ResolvedVersion())
	return b.String()
}

// ParseIdentity parses a Maven-style coordinate. Accepted forms:
//
//	group:artifact
//	group:artifact:version
//	group:artifact:extension:version
//	group:artifact:extension:classifier:version
func ParseIdentity(s string) (Identity, error) {
	parts := strings.Split(s, ":")
	var id Identity
	switch len(parts) {
	case 2:
		id = Identity{GroupID: parts[0], ArtifactID: parts[1]}
	case 3:
		id = Identity{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}
	case 4:
		id = Identity{GroupID: parts[0], ArtifactID: parts[1], Extension: parts[2], Version: parts[3]}
	case 5:
		id = Identity{GroupID: parts[0], ArtifactID: parts[1], Extension: parts[2], Classifier: parts[3], Version: parts[4]}
	default:
		return Identity{}, fmt.Errorf("invalid coordinate %q: expected 2 to 5 colon-separated fields", s)
	}
	if id.GroupID == "" || id.ArtifactID == "" {
		return Identity{}, fmt.Errorf("invalid coordinate %q: groupId and artifactId are required", s)
	}
	return id, nil
}
