package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseLabels turns alternating name, value pairs into const labels
func ParseLabels(labelsWithValues ...string) prometheus.Labels {
	if len(labelsWithValues)%2 != 0 {
		panic("invalid labels")
	}

	constLabels := make(prometheus.Labels, len(labelsWithValues)/2)

	for i := 1; i < len(labelsWithValues); i += 2 {
		constLabels[labelsWithValues[i-1]] = labelsWithValues[i]
	}

	return constLabels
}

// The collectors of a nil metrics set are nil. Every helper below is a
// no-op on them.

func CounterInc(counter prometheus.Counter) {
	if counter == nil {
		return
	}

	counter.Inc()
}

func GaugeAdd(gauge prometheus.Gauge, delta float64) {
	if gauge == nil {
		return
	}

	gauge.Add(delta)
}

func HistogramObserve(histogram prometheus.Histogram, v float64) {
	if histogram == nil {
		return
	}

	histogram.Observe(v)
}

// ObserveSince records the seconds elapsed from start
func ObserveSince(histogram prometheus.Histogram, start time.Time) {
	HistogramObserve(histogram, time.Since(start).Seconds())
}
