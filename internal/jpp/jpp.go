// Package jpp provides the layout used for distribution-installed archives,
// e.g. /usr/share/java/commons-io.jar or /usr/share/java/plexus/utils.jar.
//
// Package-managed groupIds (JPP, JPP/<dir>) map to the subdirectory after the
// prefix; any other groupId is used verbatim as a subdirectory.
package jpp

import (
	"strings"

	"github.com/git-pkgs/sysdeps/internal/core"
)

const layoutName = "jpp"

func init() {
	core.RegisterLayout(layoutName, func(map[string]string) (core.Layout, error) {
		return New(), nil
	})
}

type Layout struct{}

func New() *Layout {
	return &Layout{}
}

func (l *Layout) Path(id core.Identity) string {
	if id.ArtifactID == "" {
		return ""
	}

	var b strings.Builder
	if dir := groupDir(id.GroupID); dir != "" {
		b.WriteString(dir)
		b.WriteByte('/')
	}
	b.WriteString(id.ArtifactID)
	if !id.IsSystemVersion() {
		b.WriteByte('-')
		b.WriteString(id.Version)
	}
	if id.Classifier != "" {
		b.WriteByte('-')
		b.WriteString(id.Classifier)
	}
	b.WriteByte('.')
	b.WriteString(id.ResolvedExtension())
	return b.String()
}

func groupDir(group string) string {
	switch {
	case group == core.ManagedGroup:
		return ""
	case strings.HasPrefix(group, core.ManagedGroup+"/"):
		return strings.TrimPrefix(group, core.ManagedGroup+"/")
	}
	return group
}
