// Package sysdeps resolves build dependencies to artifacts already installed
// by the system package manager.
//
// A build configured for distribution packaging must only consume
// dependencies that are themselves packaged. sysdeps maps artifact
// coordinates to installed files through a chain of repositories and
// artifact-management rules, replaces bundled copies in a build tree with
// links to the installed files, and reports which package owns a file.
//
// Basic usage:
//
//	import (
//		"github.com/git-pkgs/sysdeps"
//		_ "github.com/git-pkgs/sysdeps/all"
//	)
//
//	cfg, err := sysdeps.LoadConfiguration(sysdeps.DefaultLayers("/"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	env, err := sysdeps.NewEnv(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	id, _ := sysdeps.ParseIdentity("junit:junit:4.13.2")
//	res, err := env.Resolver.ResolveIdentity(id)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Path)
//
// The all subpackage registers every repository layout.
package sysdeps

import (
	"github.com/git-pkgs/sysdeps/config"
	"github.com/git-pkgs/sysdeps/internal/core"
)

// Re-export types from internal/core
type (
	// Identity names an artifact by its coordinates.
	Identity = core.Identity

	// Configuration is the merged settings tree.
	Configuration = core.Configuration

	// Property is a single configuration key/value entry.
	Property = core.Property

	BuildSettings     = core.BuildSettings
	ResolverSettings  = core.ResolverSettings
	InstallerSettings = core.InstallerSettings

	// RepositoryDescriptor configures one repository.
	RepositoryDescriptor = core.RepositoryDescriptor

	// Stereotype restricts a repository to one extension/classifier.
	Stereotype = core.Stereotype

	// Rule maps matching identities to aliases and compatible versions.
	Rule = core.Rule

	// Repository locates artifacts following one layout.
	Repository = core.Repository

	// Layout maps an identity to a path relative to a repository root.
	Layout = core.Layout

	// PackageMetadata describes the artifacts of one installed package.
	PackageMetadata = core.PackageMetadata

	// ArtifactMetadata maps one identity to its installed location.
	ArtifactMetadata = core.ArtifactMetadata

	Request = core.Request
	Result  = core.Result
)

// Re-export constants
const (
	SystemVersion    = core.SystemVersion
	DefaultExtension = core.DefaultExtension
	MaxRuleHops      = core.MaxRuleHops
)

// Dummy is the identity that always resolves to the empty placeholder.
var Dummy = core.Dummy

// Re-export errors
var (
	ErrNotFound       = core.ErrNotFound
	ErrConfigParse    = core.ErrConfigParse
	ErrRuleCycle      = core.ErrRuleCycle
	ErrOwnershipQuery = core.ErrOwnershipQuery
	ErrCrossDevice    = core.ErrCrossDevice
)

// Error types
type (
	ConfigParseError        = core.ConfigParseError
	RuleCycleError          = core.RuleCycleError
	UnresolvedArtifactError = core.UnresolvedArtifactError
	OwnershipQueryFailure   = core.OwnershipQueryFailure
	SubstitutionIOError     = core.SubstitutionIOError
)

// ParseIdentity parses groupId:artifactId[:extension[:classifier]][:version].
func ParseIdentity(s string) (Identity, error) {
	return core.ParseIdentity(s)
}

// IdentityFromPURL parses a pkg:maven package URL.
func IdentityFromPURL(s string) (Identity, error) {
	return core.IdentityFromPURL(s)
}

// Merge combines two configurations, dominant first.
func Merge(dominant, recessive *Configuration) *Configuration {
	return core.Merge(dominant, recessive)
}

// Merge3 combines three configurations as Merge(super, Merge(dominant, recessive)).
func Merge3(super, dominant, recessive *Configuration) *Configuration {
	return core.Merge3(super, dominant, recessive)
}

// DefaultLayers returns the standard configuration documents below root,
// most dominant first.
func DefaultLayers(root string) []string {
	return config.DefaultLayers(root)
}

// LoadConfiguration reads and merges the configuration documents at paths,
// most dominant first. Missing documents are skipped.
func LoadConfiguration(paths []string) (*Configuration, error) {
	return config.LoadLayers(paths)
}

// SupportedLayouts returns all registered repository types.
// Note: layouts must be imported to be registered.
func SupportedLayouts() []string {
	return core.SupportedLayouts()
}
