package metadata

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/git-pkgs/sysdeps/internal/core"
)

func junitPackage() *core.PackageMetadata {
	return &core.PackageMetadata{
		Artifacts: []core.ArtifactMetadata{
			{
				Identity: core.Identity{GroupID: "junit", ArtifactID: "junit", Version: "4.13.2", Extension: "jar"},
				Path:     "/usr/share/java/junit.jar",
				Aliases:  []core.Identity{{GroupID: "junit", ArtifactID: "junit-dep"}},
			},
		},
	}
}

func compatPackage() *core.PackageMetadata {
	return &core.PackageMetadata{
		Artifacts: []core.ArtifactMetadata{
			{
				Identity:       core.Identity{GroupID: "junit", ArtifactID: "junit", Version: "3.8.2", Extension: "jar"},
				Path:           "/usr/share/java/junit3.jar",
				CompatVersions: []string{"3.8.2", "3.8"},
			},
		},
	}
}

func TestStoreExactThenSystem(t *testing.T) {
	store := NewStore(NewIndex([]*core.PackageMetadata{junitPackage(), compatPackage()}))

	tests := []struct {
		version string
		want    string
	}{
		{"3.8.2", "/usr/share/java/junit3.jar"},
		{"3.8", "/usr/share/java/junit3.jar"},
		{"4.13.2", "/usr/share/java/junit.jar"},
		{"5.0", "/usr/share/java/junit.jar"},
		{"", "/usr/share/java/junit.jar"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			a, ok := store.GetMetadataFor(core.Identity{GroupID: "junit", ArtifactID: "junit", Version: tt.version, Extension: "jar"})
			require.True(t, ok)
			assert.Equal(t, tt.want, a.Path)
		})
	}

	_, ok := store.GetMetadataFor(core.Identity{GroupID: "junit", ArtifactID: "junit", Extension: "pom"})
	assert.False(t, ok)
}

func TestStoreAliases(t *testing.T) {
	store := NewStore(NewIndex([]*core.PackageMetadata{junitPackage()}))

	a, ok := store.GetMetadataFor(core.Identity{GroupID: "junit", ArtifactID: "junit-dep", Version: "4.0", Extension: "jar"})
	require.True(t, ok)
	assert.Equal(t, "/usr/share/java/junit.jar", a.Path)
	assert.Equal(t, "junit", a.ArtifactID)
}

func TestStoreProviderOrder(t *testing.T) {
	first := NewIndex([]*core.PackageMetadata{{Artifacts: []core.ArtifactMetadata{
		{Identity: core.Identity{GroupID: "g", ArtifactID: "a", Extension: "jar"}, Path: "/first/a.jar"},
	}}})
	second := NewIndex([]*core.PackageMetadata{{Artifacts: []core.ArtifactMetadata{
		{Identity: core.Identity{GroupID: "g", ArtifactID: "a", Extension: "jar"}, Path: "/second/a.jar"},
		{Identity: core.Identity{GroupID: "g", ArtifactID: "a", Extension: "jar"}, Path: "/second/a-1.jar", CompatVersions: []string{"1"}},
	}}})
	store := NewStore(first, second)

	a, ok := store.GetMetadataFor(core.Identity{GroupID: "g", ArtifactID: "a", Extension: "jar"})
	require.True(t, ok)
	assert.Equal(t, "/first/a.jar", a.Path)

	a, ok = store.GetMetadataFor(core.Identity{GroupID: "g", ArtifactID: "a", Version: "1", Extension: "jar"})
	require.True(t, ok)
	assert.Equal(t, "/second/a-1.jar", a.Path)

	_, ok = NewStore().GetMetadataFor(core.Identity{GroupID: "g", ArtifactID: "a"})
	assert.False(t, ok)
}

func TestIndexDuplicates(t *testing.T) {
	dup := &core.PackageMetadata{Artifacts: []core.ArtifactMetadata{
		{Identity: core.Identity{GroupID: "junit", ArtifactID: "junit", Extension: "jar"}, Path: "/opt/junit.jar"},
	}}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	ix := NewIndex([]*core.PackageMetadata{junitPackage(), dup}, WithLogger(logger))

	a, ok := ix.Lookup(core.Identity{GroupID: "junit", ArtifactID: "junit", Extension: "jar"})
	require.True(t, ok)
	assert.Equal(t, "/usr/share/java/junit.jar", a.Path)
	assert.Contains(t, logs.String(), "duplicate artifact metadata")

	logs.Reset()
	NewIndex([]*core.PackageMetadata{junitPackage(), dup}, WithLogger(logger), IgnoreDuplicates(true))
	assert.Empty(t, logs.String())
}

func TestCodecOmitsAbsentUUID(t *testing.T) {
	data, err := Marshal(junitPackage())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "uuid")

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, junitPackage(), back)
}

func TestCodecRoundTripWithUUID(t *testing.T) {
	pkg := compatPackage()
	pkg.Properties = map[string]string{"requiresJava": "11"}
	AssignUUIDs(pkg)
	_, err := uuid.Parse(pkg.UUID)
	require.NoError(t, err)
	require.NotEmpty(t, pkg.Artifacts[0].UUID)

	data, err := Marshal(pkg)
	require.NoError(t, err)
	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, pkg, back)
}

func TestDecodeDocument(t *testing.T) {
	doc := `
uuid: 7c9e6679-7425-40de-944b-e07fc1f90ae7
artifacts:
  - groupId: org.ow2.asm
    artifactId: asm
    version: "9.5"
    extension: jar
    path: /usr/share/java/objectweb-asm/asm.jar
    compatVersions: ["9"]
    aliases:
      - groupId: asm
        artifactId: asm
`
	pkg, err := Unmarshal([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", pkg.UUID)
	require.Len(t, pkg.Artifacts, 1)
	assert.Equal(t, core.Identity{GroupID: "org.ow2.asm", ArtifactID: "asm", Version: "9.5", Extension: "jar"}, pkg.Artifacts[0].Identity)
	assert.Equal(t, []core.Identity{{GroupID: "asm", ArtifactID: "asm"}}, pkg.Artifacts[0].Aliases)
	assert.Empty(t, pkg.Artifacts[0].UUID)
}

func TestDecodeRejects(t *testing.T) {
	tests := map[string]string{
		"bad package uuid":  "uuid: nope\nartifacts: []\n",
		"bad artifact uuid": "artifacts:\n  - {groupId: g, artifactId: a, path: /a.jar, uuid: nope}\n",
		"relative path":     "artifacts:\n  - {groupId: g, artifactId: a, path: a.jar}\n",
		"missing artifact":  "artifacts:\n  - {groupId: g, path: /a.jar}\n",
		"unknown field":     "artifacts: []\nfoo: bar\n",
		"empty":             "",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Unmarshal([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadPaths(t *testing.T) {
	dir := t.TempDir()
	junit, err := Marshal(junitPackage())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junit.yaml"), junit, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("artifacts: [{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("not metadata"), 0o644))

	single := filepath.Join(t.TempDir(), "compat.yml")
	compat, err := Marshal(compatPackage())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(single, compat, 0o644))

	var logs bytes.Buffer
	ix, err := LoadPaths([]string{dir, single, filepath.Join(dir, "missing")},
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)

	store := NewStore(ix)
	a, ok := store.GetMetadataFor(core.Identity{GroupID: "junit", ArtifactID: "junit", Version: "3.8", Extension: "jar"})
	require.True(t, ok)
	assert.Equal(t, "/usr/share/java/junit3.jar", a.Path)

	a, ok = store.GetMetadataFor(core.Identity{GroupID: "junit", ArtifactID: "junit", Version: "4.12", Extension: "jar"})
	require.True(t, ok)
	assert.Equal(t, "/usr/share/java/junit.jar", a.Path)

	assert.Contains(t, logs.String(), "broken.yaml")
}
