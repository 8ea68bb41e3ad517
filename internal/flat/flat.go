// Package flat provides a layout that places every artifact directly under
// the repository root, named by a configurable pattern.
//
// The pattern is taken from the repository's "pattern" property. Placeholders
// are {groupId}, {artifactId}, {version}, {extension} and {classifier}.
// Text in square brackets is dropped when any placeholder inside it is empty.
// The sentinel version expands to "".
package flat

import (
	"fmt"
	"strings"

	"github.com/git-pkgs/sysdeps/internal/core"
)

const (
	layoutName     = "flat"
	DefaultPattern = "{artifactId}[-{version}][-{classifier}].{extension}"
)

func init() {
	core.RegisterLayout(layoutName, func(props map[string]string) (core.Layout, error) {
		return New(props["pattern"])
	})
}

type Layout struct {
	pattern string
}

// New validates pattern and returns a layout. An empty pattern uses
// DefaultPattern.
func New(pattern string) (*Layout, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := expand(pattern, core.Identity{}); err != nil {
		return nil, err
	}
	return &Layout{pattern: pattern}, nil
}

func (l *Layout) Path(id core.Identity) string {
	if id.ArtifactID == "" {
		return ""
	}
	path, err := expand(l.pattern, id)
	if err != nil {
		return ""
	}
	return path
}

func field(id core.Identity, name string) (string, error) {
	switch name {
	case "groupId":
		return id.GroupID, nil
	case "artifactId":
		return id.ArtifactID, nil
	case "version":
		if id.IsSystemVersion() {
			return "", nil
		}
		return id.Version, nil
	case "extension":
		return id.ResolvedExtension(), nil
	case "classifier":
		return id.Classifier, nil
	}
	return "", fmt.Errorf("unknown placeholder {%s}", name)
}

func expand(pattern string, id core.Identity) (string, error) {
	var out strings.Builder
	var opt strings.Builder
	inOpt, optEmpty := false, false

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '[':
			if inOpt {
				return "", fmt.Errorf("nested optional section in pattern %q", pattern)
			}
			inOpt, optEmpty = true, false
			opt.Reset()
		case ']':
			if !inOpt {
				return "", fmt.Errorf("unbalanced ] in pattern %q", pattern)
			}
			if !optEmpty {
				out.WriteString(opt.String())
			}
			inOpt = false
		case '{':
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated placeholder in pattern %q", pattern)
			}
			value, err := field(id, pattern[i+1:i+end])
			if err != nil {
				return "", err
			}
			if inOpt {
				optEmpty = optEmpty || value == ""
				opt.WriteString(value)
			} else {
				out.WriteString(value)
			}
			i += end
		default:
			if inOpt {
				opt.WriteByte(c)
			} else {
				out.WriteByte(c)
			}
		}
	}
	if inOpt {
		return "", fmt.Errorf("unbalanced [ in pattern %q", pattern)
	}
	return out.String(), nil
}
