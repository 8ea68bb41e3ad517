package core

import (
	"maps"
	"slices"
)

// Merge combines two configurations, dominant taking precedence.
//
// Scalars take the dominant value when set. Lists keep dominant entries
// followed by recessive entries, in order; a recessive entry exactly equal to
// a dominant one is dropped since it can never change a first-match result.
// Properties are deduplicated by key, keeping the dominant occurrence.
//
// Merge(nil, x) returns x and Merge(x, nil) returns x.
func Merge(dominant, recessive *Configuration) *Configuration {
	if dominant == nil {
		return recessive
	}
	if recessive == nil {
		return dominant
	}

	return &Configuration{
		Properties:         mergeProperties(dominant.Properties, recessive.Properties),
		BuildSettings:      mergeBuild(dominant.BuildSettings, recessive.BuildSettings),
		ResolverSettings:   mergeResolver(dominant.ResolverSettings, recessive.ResolverSettings),
		InstallerSettings:  mergeInstaller(dominant.InstallerSettings, recessive.InstallerSettings),
		Repositories:       mergeList(dominant.Repositories, recessive.Repositories, repositoryEqual),
		ArtifactManagement: mergeList(dominant.ArtifactManagement, recessive.ArtifactManagement, ruleEqual),
	}
}

// Merge3 applies Merge(superdominant, Merge(dominant, recessive)). This fixed
// order is the contract; Merge is not associative in general.
func Merge3(superdominant, dominant, recessive *Configuration) *Configuration {
	return Merge(superdominant, Merge(dominant, recessive))
}

// MergeAll folds layers given in precedence order, most dominant first.
func MergeAll(layers ...*Configuration) *Configuration {
	var merged *Configuration
	for i := len(layers) - 1; i >= 0; i-- {
		merged = Merge(layers[i], merged)
	}
	return merged
}

func mergeBuild(d, r BuildSettings) BuildSettings {
	return BuildSettings{
		Debug:          pick(d.Debug, r.Debug),
		SkipTests:      pick(d.SkipTests, r.SkipTests),
		CompilerSource: pick(d.CompilerSource, r.CompilerSource),
	}
}

func mergeResolver(d, r ResolverSettings) ResolverSettings {
	return ResolverSettings{
		Debug:                   pick(d.Debug, r.Debug),
		LocalRepository:         pick(d.LocalRepository, r.LocalRepository),
		MetadataRepositories:    mergeList(d.MetadataRepositories, r.MetadataRepositories, equal[string]),
		IgnoreDuplicateMetadata: pick(d.IgnoreDuplicateMetadata, r.IgnoreDuplicateMetadata),
		Prefixes:                mergeList(d.Prefixes, r.Prefixes, equal[string]),
		Blacklist:               mergeList(d.Blacklist, r.Blacklist, equal[Identity]),
		PlaceholderPath:         pick(d.PlaceholderPath, r.PlaceholderPath),
	}
}

func mergeInstaller(d, r InstallerSettings) InstallerSettings {
	return InstallerSettings{
		Debug:       pick(d.Debug, r.Debug),
		MetadataDir: pick(d.MetadataDir, r.MetadataDir),
	}
}

func pick[T any](dominant, recessive *T) *T {
	if dominant != nil {
		return dominant
	}
	return recessive
}

func equal[T comparable](a, b T) bool { return a == b }

func mergeList[T any](dominant, recessive []T, eq func(a, b T) bool) []T {
	merged := slices.Clone(dominant)
	for _, r := range recessive {
		if slices.ContainsFunc(dominant, func(d T) bool { return eq(d, r) }) {
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

func mergeProperties(dominant, recessive []Property) []Property {
	if dominant == nil && recessive == nil {
		return nil
	}
	seen := make(map[string]bool, len(dominant)+len(recessive))
	merged := make([]Property, 0, len(dominant)+len(recessive))
	for _, p := range slices.Concat(dominant, recessive) {
		if seen[p.Key] {
			continue
		}
		seen[p.Key] = true
		merged = append(merged, p)
	}
	return merged
}

func repositoryEqual(a, b RepositoryDescriptor) bool {
	return a.ID == b.ID &&
		a.Type == b.Type &&
		a.Namespace == b.Namespace &&
		slices.Equal(a.Stereotypes, b.Stereotypes) &&
		maps.Equal(a.Properties, b.Properties)
}

func ruleEqual(a, b Rule) bool {
	return a.ArtifactGlob == b.ArtifactGlob &&
		slices.Equal(a.Aliases, b.Aliases) &&
		slices.Equal(a.CompatVersions, b.CompatVersions)
}
