// Package resolve locates artifacts in the configured repository chain after
// applying artifact-management rules.
package resolve

import (
	"errors"
	"io"
	"log/slog"
	"slices"

	"github.com/git-pkgs/sysdeps/internal/core"
	"github.com/git-pkgs/sysdeps/metrics"
)

// DefaultPlaceholder is the builtin empty file Dummy resolves to.
const DefaultPlaceholder = "/dev/null"

// Resolver determines installed locations for artifact identities. It is
// read-only after construction and safe for concurrent use.
type Resolver struct {
	repos       []core.Repository
	repoIDs     []string
	rules       []core.Rule
	blacklist   []core.Identity
	placeholder string
	exists      core.ExistsFunc
	logger      *slog.Logger
	metrics     *metrics.Collector
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// WithMetrics records outcomes on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Resolver) {
		r.metrics = c
	}
}

// WithExistsFunc replaces the file existence check used by repositories.
func WithExistsFunc(fn core.ExistsFunc) Option {
	return func(r *Resolver) {
		r.exists = fn
	}
}

// New builds a resolver from cfg. Repositories are queried in configuration
// order; each configured prefix adds a re-rooted copy of the whole chain,
// queried before the unprefixed chain.
func New(cfg *core.Configuration, opts ...Option) (*Resolver, error) {
	if cfg == nil {
		cfg = &core.Configuration{}
	}

	r := &Resolver{
		rules:       cfg.ArtifactManagement,
		blacklist:   cfg.ResolverSettings.Blacklist,
		placeholder: DefaultPlaceholder,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if p := core.StringValue(cfg.ResolverSettings.PlaceholderPath); p != "" {
		r.placeholder = p
	}
	for _, opt := range opts {
		opt(r)
	}

	base, err := core.NewRepositories(cfg.Repositories, r.exists)
	if err != nil {
		return nil, err
	}
	for _, prefix := range cfg.ResolverSettings.Prefixes {
		for _, repo := range base {
			r.repos = append(r.repos, core.Prefix(repo, prefix))
		}
	}
	r.repos = append(r.repos, base...)

	for _, repo := range base {
		if !slices.Contains(r.repoIDs, repo.ID()) {
			r.repoIDs = append(r.repoIDs, repo.ID())
		}
	}
	return r, nil
}

// Repositories returns the ids of the configured repositories, in order.
func (r *Resolver) Repositories() []string {
	return slices.Clone(r.repoIDs)
}

// Resolve locates the artifact named by req.
//
// Dummy always resolves to the placeholder. Otherwise the identity is
// expanded through the artifact-management rules and every candidate is
// looked up in every repository, in order; the first hit wins. A miss
// returns *core.UnresolvedArtifactError, a rule cycle *core.RuleCycleError.
func (r *Resolver) Resolve(req core.Request) (*core.Result, error) {
	id := req.Identity

	if id.IsDummy() {
		r.metrics.RecordResolution(metrics.OutcomePlaceholder)
		r.logger.Debug("resolved dummy artifact to placeholder", "artifact", id.String(), "path", r.placeholder)
		return &core.Result{Request: req, Identity: id, Path: r.placeholder, Placeholder: true}, nil
	}

	if r.blacklisted(id) {
		r.metrics.RecordResolution(metrics.OutcomeBlacklisted)
		r.logger.Debug("artifact is blacklisted", "artifact", id.String())
		return nil, &core.UnresolvedArtifactError{Identity: id}
	}

	candidates, err := core.ExpandRules(id, r.rules)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		for _, repo := range r.repos {
			if !namespaceMatches(repo.Namespace(), req.Namespace) {
				continue
			}
			if path, ok := repo.Locate(candidate); ok {
				r.metrics.RecordResolution(metrics.OutcomeResolved)
				r.logger.Debug("resolved artifact",
					"artifact", id.String(),
					"candidate", candidate.String(),
					"repository", repo.ID(),
					"path", path)
				return &core.Result{Request: req, Identity: candidate, Path: path, Repository: repo.ID()}, nil
			}
		}
	}

	r.metrics.RecordResolution(metrics.OutcomeUnresolved)
	r.logger.Debug("artifact not found", "artifact", id.String(), "candidates", len(candidates))
	return nil, &core.UnresolvedArtifactError{Identity: id, Repositories: r.Repositories()}
}

// ResolveIdentity resolves id without a namespace restriction.
func (r *Resolver) ResolveIdentity(id core.Identity) (*core.Result, error) {
	return r.Resolve(core.Request{Identity: id})
}

func (r *Resolver) blacklisted(id core.Identity) bool {
	for _, glob := range r.blacklist {
		if glob != (core.Identity{}) && core.GlobMatches(glob, id) {
			return true
		}
	}
	return false
}

// Repositories restricted to a namespace only serve requests in that
// namespace; a request without a namespace is served by every repository.
func namespaceMatches(repoNS, reqNS string) bool {
	return repoNS == "" || reqNS == "" || repoNS == reqNS
}

// IsFatal reports whether err should abort a whole run rather than a single
// request.
func IsFatal(err error) bool {
	return errors.Is(err, core.ErrRuleCycle) || errors.Is(err, core.ErrConfigParse)
}
