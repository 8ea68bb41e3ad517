package subst

import (
	"errors"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/git-pkgs/sysdeps/internal/core"
)

// errNoCoordinates is returned when an archive carries no usable pom.properties.
var errNoCoordinates = errors.New("no embedded coordinates")

// ReadIdentity extracts the coordinates a build tool embedded in the archive
// at file under META-INF/maven/<group>/<artifact>/pom.properties. When the
// archive embeds several, the one whose artifactId the file name starts with
// is used (longest match wins). The returned identity has no extension.
func ReadIdentity(file string) (core.Identity, error) {
	zr, err := zip.OpenReader(file)
	if err != nil {
		return core.Identity{}, err
	}
	defer func() { _ = zr.Close() }()

	var found []core.Identity
	for _, f := range zr.File {
		if !isPomProperties(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return core.Identity{}, err
		}
		props, err := parseProperties(rc)
		_ = rc.Close()
		if err != nil {
			return core.Identity{}, err
		}
		id := core.Identity{
			GroupID:    props["groupId"],
			ArtifactID: props["artifactId"],
			Version:    props["version"],
		}
		if id.GroupID == "" || id.ArtifactID == "" || id.Version == "" {
			continue
		}
		found = append(found, id)
	}

	switch len(found) {
	case 0:
		return core.Identity{}, errNoCoordinates
	case 1:
		return found[0], nil
	}

	base := path.Base(strings.ReplaceAll(file, `\`, "/"))
	best := -1
	for i, id := range found {
		if strings.HasPrefix(base, id.ArtifactID) && (best < 0 || len(id.ArtifactID) > len(found[best].ArtifactID)) {
			best = i
		}
	}
	if best < 0 {
		return core.Identity{}, errNoCoordinates
	}
	return found[best], nil
}

func isPomProperties(name string) bool {
	parts := strings.Split(name, "/")
	return len(parts) == 5 &&
		parts[0] == "META-INF" &&
		parts[1] == "maven" &&
		parts[2] != "" && parts[3] != "" &&
		parts[4] == "pom.properties"
}
