// Package maven provides the hierarchical repository layout used by Maven
// repositories: group/with/slashes/artifact/version/artifact-version[-classifier].ext
package maven

import (
	"strings"

	"github.com/git-pkgs/sysdeps/internal/core"
)

const layoutName = "maven"

func init() {
	core.RegisterLayout(layoutName, func(map[string]string) (core.Layout, error) {
		return New(), nil
	})
}

// Layout is the hierarchical Maven layout.
type Layout struct{}

func New() *Layout {
	return &Layout{}
}

func (l *Layout) Path(id core.Identity) string {
	if id.GroupID == "" || id.ArtifactID == "" {
		return ""
	}
	version := id.ResolvedVersion()

	var b strings.Builder
	b.WriteString(strings.ReplaceAll(id.GroupID, ".", "/"))
	b.WriteByte('/')
	b.WriteString(id.ArtifactID)
	b.WriteByte('/')
	b.WriteString(version)
	b.WriteByte('/')
	b.WriteString(FileName(id))
	return b.String()
}

// FileName returns artifact-version[-classifier].ext.
func FileName(id core.Identity) string {
	name := id.ArtifactID + "-" + id.ResolvedVersion()
	if id.Classifier != "" {
		name += "-" + id.Classifier
	}
	return name + "." + id.ResolvedExtension()
}
