package sysdeps

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/git-pkgs/sysdeps/internal/core"
	"github.com/git-pkgs/sysdeps/metadata"
	"github.com/git-pkgs/sysdeps/metrics"
	"github.com/git-pkgs/sysdeps/owner"
	"github.com/git-pkgs/sysdeps/resolve"
	"github.com/git-pkgs/sysdeps/subst"
)

// Env wires the components built from one configuration. It replaces
// process-wide state: create one per process and pass it down.
type Env struct {
	Config   *Configuration
	Logger   *slog.Logger
	Metrics  *metrics.Collector
	Resolver *resolve.Resolver
	Metadata *metadata.Store
	Owners   *owner.Index
}

// Option configures an Env.
type Option func(*envOptions)

type envOptions struct {
	logger   *slog.Logger
	registry prometheus.Registerer
	querier  owner.Querier
	exists   core.ExistsFunc
	extra    []metadata.Provider
}

// WithLogger sets the logger shared by all components.
func WithLogger(l *slog.Logger) Option {
	return func(o *envOptions) {
		o.logger = l
	}
}

// WithRegisterer registers the metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *envOptions) {
		o.registry = reg
	}
}

// WithQuerier replaces the package database query behind the ownership index.
func WithQuerier(q owner.Querier) Option {
	return func(o *envOptions) {
		o.querier = q
	}
}

// WithExistsFunc replaces the file existence check used by repositories.
func WithExistsFunc(fn core.ExistsFunc) Option {
	return func(o *envOptions) {
		o.exists = fn
	}
}

// WithMetadata adds providers queried after the configured metadata
// repositories.
func WithMetadata(providers ...metadata.Provider) Option {
	return func(o *envOptions) {
		o.extra = append(o.extra, providers...)
	}
}

// NewEnv builds the resolver, the metadata store and the ownership index for
// cfg. The ownership index is not queried until first used.
func NewEnv(cfg *Configuration, opts ...Option) (*Env, error) {
	if cfg == nil {
		cfg = &Configuration{}
	}

	o := &envOptions{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		querier: owner.NewCommandQuerier(),
	}
	for _, opt := range opts {
		opt(o)
	}

	collector := metrics.NewCollector(o.registry)

	resolver, err := resolve.New(cfg,
		resolve.WithLogger(o.logger),
		resolve.WithMetrics(collector),
		resolve.WithExistsFunc(o.exists))
	if err != nil {
		return nil, err
	}

	index, err := metadata.LoadPaths(cfg.ResolverSettings.MetadataRepositories,
		metadata.WithLogger(o.logger),
		metadata.IgnoreDuplicates(core.BoolValue(cfg.ResolverSettings.IgnoreDuplicateMetadata)))
	if err != nil {
		return nil, err
	}
	providers := append([]metadata.Provider{index}, o.extra...)

	return &Env{
		Config:   cfg,
		Logger:   o.logger,
		Metrics:  collector,
		Resolver: resolver,
		Metadata: metadata.NewStore(providers...),
		Owners:   owner.NewIndex(o.querier, owner.WithLogger(o.logger)),
	}, nil
}

// Walker returns a substitution walker backed by the environment's metadata
// store. opts are applied after the environment's logger and metrics.
func (e *Env) Walker(opts ...subst.Option) *subst.Walker {
	base := []subst.Option{subst.WithLogger(e.Logger), subst.WithMetrics(e.Metrics)}
	return subst.New(e.Metadata, append(base, opts...)...)
}
