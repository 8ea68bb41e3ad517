package core

import "slices"

// MaxRuleHops bounds how many times alias rules may re-enter rule matching.
const MaxRuleHops = 8

// GlobMatches reports whether id matches glob. Every non-empty glob field must
// equal the corresponding identity field; empty glob fields match anything.
// Version and extension are compared after defaulting, so a glob naming
// SYSTEM or pom matches identities that leave those fields empty.
func GlobMatches(glob, id Identity) bool {
	return fieldMatches(glob.GroupID, id.GroupID) &&
		fieldMatches(glob.ArtifactID, id.ArtifactID) &&
		fieldMatches(glob.Version, id.ResolvedVersion()) &&
		fieldMatches(glob.Extension, id.ResolvedExtension()) &&
		fieldMatches(glob.Classifier, id.Classifier)
}

func fieldMatches(pattern, value string) bool {
	return pattern == "" || pattern == value
}

// MatchRule returns the first rule whose glob matches id.
func MatchRule(id Identity, rules []Rule) (Rule, bool) {
	for _, r := range rules {
		if GlobMatches(r.ArtifactGlob, id) {
			return r, true
		}
	}
	return Rule{}, false
}

// ExpandRules returns the identities to try, in order, when id is requested.
//
// Only the first matching rule applies. Its compat versions are checked
// first: a listed requested version is rewritten to SystemVersion. Its aliases
// are applied second: each alias replaces groupId and artifactId (and
// extension or classifier when the alias sets them) and is expanded again,
// in order. An alias naming the identity it came from ends the chain there.
//
// A chain longer than MaxRuleHops returns a *RuleCycleError.
func ExpandRules(id Identity, rules []Rule) ([]Identity, error) {
	var out []Identity
	if err := expand(id, rules, []Identity{id}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func expand(id Identity, rules []Rule, chain []Identity, out *[]Identity) error {
	rule, ok := MatchRule(id, rules)
	if !ok {
		appendUnique(out, id)
		return nil
	}

	if slices.Contains(rule.CompatVersions, id.ResolvedVersion()) {
		id = id.WithVersion(SystemVersion)
	}

	if len(rule.Aliases) == 0 {
		appendUnique(out, id)
		return nil
	}

	for _, alias := range rule.Aliases {
		next := applyAlias(id, alias)
		if next.GroupID == id.GroupID && next.ArtifactID == id.ArtifactID {
			appendUnique(out, next)
			continue
		}
		if len(chain) > MaxRuleHops {
			return &RuleCycleError{Chain: slices.Clone(append(chain, next))}
		}
		if err := expand(next, rules, append(chain, next), out); err != nil {
			return err
		}
	}
	return nil
}

func applyAlias(id, alias Identity) Identity {
	id.GroupID = alias.GroupID
	id.ArtifactID = alias.ArtifactID
	if alias.Extension != "" {
		id.Extension = alias.Extension
	}
	if alias.Classifier != "" {
		id.Classifier = alias.Classifier
	}
	return id
}

func appendUnique(out *[]Identity, id Identity) {
	for _, existing := range *out {
		if existing.Equal(id) {
			return
		}
	}
	*out = append(*out, id)
}
