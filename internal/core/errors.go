package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no repository can locate an artifact.
	ErrNotFound = errors.New("not found")

	// ErrConfigParse is returned when a persisted configuration is malformed.
	ErrConfigParse = errors.New("malformed configuration")

	// ErrRuleCycle is returned when alias or compat rules chain past MaxRuleHops.
	ErrRuleCycle = errors.New("artifact rule cycle")

	// ErrOwnershipQuery is returned when the package database query fails.
	ErrOwnershipQuery = errors.New("package ownership query failed")

	// ErrCrossDevice is returned when a substitution would link across filesystems.
	ErrCrossDevice = errors.New("target is on a different device")
)

// ConfigParseError wraps ErrConfigParse with the offending document.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing configuration: %v", e.Err)
	}
	return fmt.Sprintf("parsing configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Is(target error) bool {
	return target == ErrConfigParse
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// RuleCycleError names the identities visited before the hop bound was hit.
type RuleCycleError struct {
	Chain []Identity
}

func (e *RuleCycleError) Error() string {
	names := make([]string, len(e.Chain))
	for i, id := range e.Chain {
		names[i] = id.String()
	}
	return fmt.Sprintf("artifact rules exceed %d hops: %s", MaxRuleHops, strings.Join(names, " -> "))
}

func (e *RuleCycleError) Unwrap() error {
	return ErrRuleCycle
}

// UnresolvedArtifactError wraps ErrNotFound with the repositories consulted.
type UnresolvedArtifactError struct {
	Identity     Identity
	Repositories []string
}

func (e *UnresolvedArtifactError) Error() string {
	if len(e.Repositories) == 0 {
		return fmt.Sprintf("artifact %s not found: no repositories configured", e.Identity)
	}
	return fmt.Sprintf("artifact %s not found in repositories %s", e.Identity, strings.Join(e.Repositories, ", "))
}

func (e *UnresolvedArtifactError) Unwrap() error {
	return ErrNotFound
}

// OwnershipQueryFailure records why the ownership index fell back to empty.
type OwnershipQueryFailure struct {
	Command []string
	Err     error
}

func (e *OwnershipQueryFailure) Error() string {
	return fmt.Sprintf("package ownership query %q: %v", strings.Join(e.Command, " "), e.Err)
}

func (e *OwnershipQueryFailure) Is(target error) bool {
	return target == ErrOwnershipQuery
}

func (e *OwnershipQueryFailure) Unwrap() error {
	return e.Err
}

// SubstitutionIOError is recorded when a file could not be replaced by a link.
type SubstitutionIOError struct {
	Path   string
	Target string
	Err    error
}

func (e *SubstitutionIOError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("substituting %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("substituting %s with link to %s: %v", e.Path, e.Target, e.Err)
}

func (e *SubstitutionIOError) Unwrap() error {
	return e.Err
}
