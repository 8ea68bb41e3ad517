// Package core provides the shared identity, configuration and repository
// types, and the layout registry.
package core

// PackageMetadata describes the artifacts one installed package provides.
type PackageMetadata struct {
	UUID       string             `yaml:"uuid,omitempty"`
	Properties map[string]string  `yaml:"properties,omitempty"`
	Artifacts  []ArtifactMetadata `yaml:"artifacts"`
}

// ArtifactMetadata maps one identity to its installed location.
type ArtifactMetadata struct {
	Identity       `yaml:",inline"`
	UUID           string     `yaml:"uuid,omitempty"`
	Path           string     `yaml:"path"`
	Namespace      string     `yaml:"namespace,omitempty"`
	Aliases        []Identity `yaml:"aliases,omitempty"`
	CompatVersions []string   `yaml:"compatVersions,omitempty"`
}

// Request is a single resolution request.
type Request struct {
	Identity  Identity
	Namespace string
}

// Result is the outcome of resolving a Request.
type Result struct {
	Request Request

	// Identity is the candidate that was found, after rule expansion.
	Identity Identity

	// Path is the located file, or the placeholder path for Dummy.
	Path string

	// Repository is the id of the repository that produced Path.
	Repository string

	// Placeholder is set when Path is the builtin empty placeholder.
	Placeholder bool
}
