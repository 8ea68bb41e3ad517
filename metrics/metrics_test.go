package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordResolution(OutcomeResolved)
	c.RecordResolution(OutcomeResolved)
	c.RecordResolution(OutcomeUnresolved)
	c.RecordSubstitution(OutcomeReplaced)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Resolutions().WithLabelValues(OutcomeResolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Resolutions().WithLabelValues(OutcomeUnresolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Substitutions().WithLabelValues(OutcomeReplaced)))
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordResolution(OutcomeResolved)
		c.RecordSubstitution(OutcomeFailed)
	})
}
