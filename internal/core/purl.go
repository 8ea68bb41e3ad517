package core

import (
	"fmt"

	"github.com/git-pkgs/purl"
	packageurl "github.com/package-url/packageurl-go"
)

// PURLType is the package URL type used for artifact identities.
const PURLType = "maven"

// PURL renders the identity as a package URL, e.g.
// pkg:maven/org.apache.commons/commons-lang3@3.12.0?type=jar.
// The version is left out for the sentinel version.
func (id Identity) PURL() string {
	version := id.Version
	if version == SystemVersion {
		version = ""
	}

	qualifiers := map[string]string{}
	if id.Extension != "" {
		qualifiers["type"] = id.Extension
	}
	if id.Classifier != "" {
		qualifiers["classifier"] = id.Classifier
	}

	p := packageurl.NewPackageURL(PURLType, id.GroupID, id.ArtifactID, version,
		packageurl.QualifiersFromMap(qualifiers), "")
	return p.ToString()
}

// IdentityFromPURL parses a pkg:maven package URL into an Identity.
func IdentityFromPURL(s string) (Identity, error) {
	p, err := purl.Parse(s)
	if err != nil {
		return Identity{}, err
	}
	if p.Type != PURLType {
		return Identity{}, fmt.Errorf("unsupported PURL type %q: want %q", p.Type, PURLType)
	}
	if p.Namespace == "" {
		return Identity{}, fmt.Errorf("PURL has no namespace (groupId): %s", s)
	}

	q := p.Qualifiers.Map()
	return Identity{
		GroupID:    p.Namespace,
		ArtifactID: p.Name,
		Version:    p.Version,
		Extension:  q["type"],
		Classifier: q["classifier"],
	}, nil
}
