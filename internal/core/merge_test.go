package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() *Configuration {
	return &Configuration{
		Properties: []Property{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
		BuildSettings: BuildSettings{
			Debug:     Bool(true),
			SkipTests: Bool(false),
		},
		ResolverSettings: ResolverSettings{
			LocalRepository:      String("/tmp/repo"),
			MetadataRepositories: []string{"/usr/share/maven-metadata"},
			Prefixes:             []string{"/buildroot"},
			Blacklist:            []Identity{{GroupID: "junit"}},
		},
		InstallerSettings: InstallerSettings{MetadataDir: String("/foo")},
		Repositories: []RepositoryDescriptor{
			{ID: "jpp", Type: "jpp", Properties: map[string]string{"root": "/usr/share/java"}},
			{ID: "maven", Type: "maven", Stereotypes: []Stereotype{{Extension: "jar"}}},
		},
		ArtifactManagement: []Rule{
			{ArtifactGlob: Identity{GroupID: "org.codehaus.plexus"}, CompatVersions: []string{"1.0"}},
			{Aliases: []Identity{{GroupID: "x", ArtifactID: "y"}}},
		},
	}
}

func TestMergeIdentity(t *testing.T) {
	x := sampleConfig()

	assert.Same(t, x, Merge(nil, x))
	assert.Same(t, x, Merge(x, nil))
	assert.Nil(t, Merge(nil, nil))
	assert.Equal(t, x, Merge(x, x))
	assert.Equal(t, &Configuration{}, Merge(&Configuration{}, &Configuration{}))
}

func TestMergeScalars(t *testing.T) {
	dominant := &Configuration{BuildSettings: BuildSettings{SkipTests: Bool(false)}}
	recessive := &Configuration{BuildSettings: BuildSettings{SkipTests: Bool(true), Debug: Bool(true)}}

	merged := Merge(dominant, recessive)
	require.NotNil(t, merged.BuildSettings.SkipTests)
	assert.False(t, *merged.BuildSettings.SkipTests)
	assert.True(t, BoolValue(merged.BuildSettings.Debug))
}

func TestMergeLists(t *testing.T) {
	dominant := &Configuration{
		Repositories:       []RepositoryDescriptor{{ID: "a", Type: "jpp"}},
		ArtifactManagement: []Rule{{ArtifactGlob: Identity{GroupID: "g1"}}},
		ResolverSettings:   ResolverSettings{Prefixes: []string{"/p1"}},
	}
	recessive := &Configuration{
		Repositories:       []RepositoryDescriptor{{ID: "b", Type: "maven"}, {ID: "a", Type: "jpp"}, {ID: "a", Type: "flat"}},
		ArtifactManagement: []Rule{{ArtifactGlob: Identity{GroupID: "g2"}}, {ArtifactGlob: Identity{GroupID: "g1"}}},
		ResolverSettings:   ResolverSettings{Prefixes: []string{"/p2", "/p1"}},
	}

	merged := Merge(dominant, recessive)
	assert.Equal(t, []RepositoryDescriptor{{ID: "a", Type: "jpp"}, {ID: "b", Type: "maven"}, {ID: "a", Type: "flat"}}, merged.Repositories)
	assert.Equal(t, []Rule{{ArtifactGlob: Identity{GroupID: "g1"}}, {ArtifactGlob: Identity{GroupID: "g2"}}}, merged.ArtifactManagement)
	assert.Equal(t, []string{"/p1", "/p2"}, merged.ResolverSettings.Prefixes)
}

func TestMergeProperties(t *testing.T) {
	dominant := &Configuration{Properties: []Property{{Key: "k", Value: "dominant"}, {Key: "d", Value: "1"}}}
	recessive := &Configuration{Properties: []Property{{Key: "r", Value: "2"}, {Key: "k", Value: "recessive"}}}

	merged := Merge(dominant, recessive)
	assert.Equal(t, []Property{{Key: "k", Value: "dominant"}, {Key: "d", Value: "1"}, {Key: "r", Value: "2"}}, merged.Properties)

	v, ok := merged.Property("k")
	assert.True(t, ok)
	assert.Equal(t, "dominant", v)
}

func TestMergeDoesNotShareDominantSlices(t *testing.T) {
	dominant := &Configuration{ResolverSettings: ResolverSettings{Prefixes: []string{"/a"}}}
	recessive := &Configuration{ResolverSettings: ResolverSettings{Prefixes: []string{"/b"}}}

	merged := Merge(dominant, recessive)
	merged.ResolverSettings.Prefixes[0] = "/changed"
	assert.Equal(t, []string{"/a"}, dominant.ResolverSettings.Prefixes)
}

func TestMerge3Precedence(t *testing.T) {
	superdominant := &Configuration{
		Properties: []Property{{Key: "p3", Value: "v3"}},
	}
	dominant := &Configuration{
		Properties: []Property{{Key: "p2", Value: "v2"}},
		BuildSettings: BuildSettings{
			Debug:     Bool(true),
			SkipTests: Bool(false),
		},
	}
	recessive := &Configuration{
		Properties:        []Property{{Key: "p1", Value: "v1"}},
		InstallerSettings: InstallerSettings{Debug: Bool(true), MetadataDir: String("/foo/bar")},
	}

	merged := Merge3(superdominant, dominant, recessive)

	assert.True(t, BoolValue(merged.BuildSettings.Debug))
	require.NotNil(t, merged.BuildSettings.SkipTests)
	assert.False(t, *merged.BuildSettings.SkipTests)
	assert.True(t, BoolValue(merged.InstallerSettings.Debug))
	assert.Equal(t, "/foo/bar", StringValue(merged.InstallerSettings.MetadataDir))
	assert.ElementsMatch(t, []Property{{Key: "p1", Value: "v1"}, {Key: "p2", Value: "v2"}, {Key: "p3", Value: "v3"}}, merged.Properties)

	assert.Equal(t, merged, MergeAll(superdominant, dominant, recessive))
}

func TestMerge3EmptySuperdominant(t *testing.T) {
	dominant := &Configuration{BuildSettings: BuildSettings{Debug: Bool(true), SkipTests: Bool(false)}}
	recessive := &Configuration{
		Properties:        []Property{{Key: "p1", Value: "v1"}},
		InstallerSettings: InstallerSettings{Debug: Bool(true), MetadataDir: String("/foo/bar")},
	}

	merged := Merge3(&Configuration{}, dominant, recessive)
	assert.True(t, BoolValue(merged.BuildSettings.Debug))
	assert.False(t, BoolValue(merged.BuildSettings.SkipTests))
	assert.NotNil(t, merged.BuildSettings.SkipTests)
	assert.True(t, BoolValue(merged.InstallerSettings.Debug))
	assert.Equal(t, []Property{{Key: "p1", Value: "v1"}}, merged.Properties)
}
