// Package metrics exposes resolution and substitution counters for Prometheus.
//
// A nil *Collector is valid and records nothing, so components can take one
// unconditionally.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sysdeps"

// Resolution outcomes.
const (
	OutcomeResolved    = "resolved"
	OutcomePlaceholder = "placeholder"
	OutcomeUnresolved  = "unresolved"
	OutcomeBlacklisted = "blacklisted"
)

// Substitution outcomes.
const (
	OutcomeReplaced    = "replaced"
	OutcomeNoMetadata  = "no_metadata"
	OutcomeNoIdentity  = "no_identity"
	OutcomeSameFile    = "same_file"
	OutcomeCrossDevice = "cross_device"
	OutcomeFailed      = "failed"
)

// Collector holds the counters.
type Collector struct {
	resolutions   *prometheus.CounterVec
	substitutions *prometheus.CounterVec
}

// NewCollector creates the counters and registers them on reg. If reg is
// nil a private registry is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	c := &Collector{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Artifact resolutions by outcome.",
		}, []string{"outcome"}),
		substitutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "substitutions_total",
			Help:      "Build-tree archives visited by the substitution walker, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(c.resolutions, c.substitutions)
	return c
}

// RecordResolution increments the resolution counter for outcome.
func (c *Collector) RecordResolution(outcome string) {
	if c == nil {
		return
	}
	c.resolutions.WithLabelValues(outcome).Inc()
}

// RecordSubstitution increments the substitution counter for outcome.
func (c *Collector) RecordSubstitution(outcome string) {
	if c == nil {
		return
	}
	c.substitutions.WithLabelValues(outcome).Inc()
}

// Resolutions exposes the resolution counter, mainly for tests.
func (c *Collector) Resolutions() *prometheus.CounterVec { return c.resolutions }

// Substitutions exposes the substitution counter, mainly for tests.
func (c *Collector) Substitutions() *prometheus.CounterVec { return c.substitutions }
