package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestParseLabels(t *testing.T) {
	t.Parallel()

	labels := ParseLabels("chain", "objectchain", "node", "a")

	assert.Equal(t, prometheus.Labels{"chain": "objectchain", "node": "a"}, labels)
	assert.Panics(t, func() { ParseLabels("chain") })
}

func TestNilCollectors(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		CounterInc(nil)
		GaugeAdd(nil, 1)
		HistogramObserve(nil, 1)
		ObserveSince(nil, time.Now())
	})
}
