package core

// Configuration is the merged settings tree. It is built once at start-up
// and treated as read-only afterwards.
type Configuration struct {
	Properties         []Property             `yaml:"properties,omitempty"`
	BuildSettings      BuildSettings          `yaml:"buildSettings,omitempty"`
	ResolverSettings   ResolverSettings       `yaml:"resolverSettings,omitempty"`
	InstallerSettings  InstallerSettings      `yaml:"installerSettings,omitempty"`
	Repositories       []RepositoryDescriptor `yaml:"repositories,omitempty"`
	ArtifactManagement []Rule                 `yaml:"artifactManagement,omitempty"`
}

// Property is a single key/value entry. Properties keep their document order.
type Property struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// BuildSettings control how packaged builds are run.
type BuildSettings struct {
	Debug          *bool   `yaml:"debug,omitempty"`
	SkipTests      *bool   `yaml:"skipTests,omitempty"`
	CompilerSource *string `yaml:"compilerSource,omitempty"`
}

// ResolverSettings control artifact resolution.
type ResolverSettings struct {
	Debug                   *bool      `yaml:"debug,omitempty"`
	LocalRepository         *string    `yaml:"localRepository,omitempty"`
	MetadataRepositories    []string   `yaml:"metadataRepositories,omitempty"`
	IgnoreDuplicateMetadata *bool      `yaml:"ignoreDuplicateMetadata,omitempty"`
	Prefixes                []string   `yaml:"prefixes,omitempty"`
	Blacklist               []Identity `yaml:"blacklist,omitempty"`
	PlaceholderPath         *string    `yaml:"placeholderPath,omitempty"`
}

// InstallerSettings control artifact installation.
type InstallerSettings struct {
	Debug       *bool   `yaml:"debug,omitempty"`
	MetadataDir *string `yaml:"metadataDir,omitempty"`
}

// RepositoryDescriptor configures one repository in the resolution chain.
type RepositoryDescriptor struct {
	ID          string            `yaml:"id"`
	Type        string            `yaml:"type"`
	Namespace   string            `yaml:"namespace,omitempty"`
	Stereotypes []Stereotype      `yaml:"stereotypes,omitempty"`
	Properties  map[string]string `yaml:"properties,omitempty"`
}

// Stereotype restricts a repository to artifacts of one extension/classifier.
// Empty fields match anything.
type Stereotype struct {
	Extension  string `yaml:"extension,omitempty"`
	Classifier string `yaml:"classifier,omitempty"`
}

// Rule maps identities matching ArtifactGlob to aliases and compatible versions.
type Rule struct {
	ArtifactGlob   Identity   `yaml:"artifactGlob,omitempty"`
	Aliases        []Identity `yaml:"aliases,omitempty"`
	CompatVersions []string   `yaml:"compatVersions,omitempty"`
}

// Property looks up a property value by key.
func (c *Configuration) Property(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, p := range c.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Repository returns the first repository descriptor with the given id.
func (c *Configuration) Repository(id string) (RepositoryDescriptor, bool) {
	if c == nil {
		return RepositoryDescriptor{}, false
	}
	for _, r := range c.Repositories {
		if r.ID == id {
			return r, true
		}
	}
	return RepositoryDescriptor{}, false
}

// Debug reports whether any settings group enables debug output.
func (c *Configuration) Debug() bool {
	if c == nil {
		return false
	}
	return BoolValue(c.BuildSettings.Debug) ||
		BoolValue(c.ResolverSettings.Debug) ||
		BoolValue(c.InstallerSettings.Debug)
}

// Bool returns a pointer to v, for building settings literals.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v, for building settings literals.
func String(v string) *string { return &v }

// BoolValue dereferences p, treating nil as false.
func BoolValue(p *bool) bool { return p != nil && *p }

// StringValue dereferences p, treating nil as "".
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
