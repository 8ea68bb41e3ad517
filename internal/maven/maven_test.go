package maven

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/git-pkgs/sysdeps/internal/core"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name string
		id   core.Identity
		want string
	}{
		{
			name: "jar",
			id:   core.Identity{GroupID: "com.google.guava", ArtifactID: "guava", Version: "32.1.0", Extension: "jar"},
			want: "com/google/guava/guava/32.1.0/guava-32.1.0.jar",
		},
		{
			name: "classifier",
			id:   core.Identity{GroupID: "org.apache", ArtifactID: "commons-lang3", Version: "3.12.0", Extension: "jar", Classifier: "sources"},
			want: "org/apache/commons-lang3/3.12.0/commons-lang3-3.12.0-sources.jar",
		},
		{
			name: "defaults",
			id:   core.Identity{GroupID: "junit", ArtifactID: "junit"},
			want: "junit/junit/SYSTEM/junit-SYSTEM.pom",
		},
		{
			name: "missing artifact",
			id:   core.Identity{GroupID: "junit"},
			want: "",
		},
	}

	l := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Path(tt.id))
		})
	}
}

func TestRegistered(t *testing.T) {
	l, err := core.NewLayout("maven", nil)
	assert.NoError(t, err)
	assert.IsType(t, &Layout{}, l)
}
