package flat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/git-pkgs/sysdeps/internal/core"
)

func TestPath(t *testing.T) {
	tests := []struct {
		pattern string
		id      core.Identity
		want    string
	}{
		{"", core.Identity{GroupID: "junit", ArtifactID: "junit", Extension: "jar"}, "junit.jar"},
		{"", core.Identity{GroupID: "junit", ArtifactID: "junit", Version: "4.13", Extension: "jar"}, "junit-4.13.jar"},
		{"", core.Identity{GroupID: "junit", ArtifactID: "junit", Version: "4.13", Extension: "jar", Classifier: "tests"}, "junit-4.13-tests.jar"},
		{"", core.Identity{GroupID: "junit", ArtifactID: "junit"}, "junit.pom"},
		{"{groupId}-{artifactId}.{extension}", core.Identity{GroupID: "org.ow2.asm", ArtifactID: "asm", Extension: "jar"}, "org.ow2.asm-asm.jar"},
		{"{artifactId}.{extension}", core.Identity{GroupID: "g"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.id.String(), func(t *testing.T) {
			l, err := New(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Path(tt.id))
		})
	}
}

func TestNewRejectsBadPattern(t *testing.T) {
	for _, pattern := range []string{"{artifactId", "[-{version}", "-{version}]", "{nope}.jar", "[[{version}]]"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := New(pattern)
			assert.Error(t, err)
		})
	}
}

func TestRegistered(t *testing.T) {
	l, err := core.NewLayout("flat", map[string]string{"pattern": "{artifactId}.{extension}"})
	require.NoError(t, err)
	assert.Equal(t, "guava.jar", l.Path(core.Identity{GroupID: "g", ArtifactID: "guava", Extension: "jar"}))
}
