package authority

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dogechain-lab/objectchain/helper/metrics"
)

const subsystem = "authority"

// Metrics represents the authority metrics
type Metrics struct {
	// Orders signed and locked
	ordersSigned prometheus.Counter
	// Orders rejected before locking
	ordersRejected prometheus.Counter
	// Lock conflicts with another pending order
	lockConflicts prometheus.Counter
	// Certificates executed and committed
	certificatesExecuted prometheus.Counter
	// Certificates whose execution failed
	executionFailures prometheus.Counter
	// Gas charged per certificate
	gasUsed prometheus.Histogram
	// Execution plus commit duration
	confirmationSeconds prometheus.Histogram
}

func (m *Metrics) OrdersSignedInc() {
	metrics.CounterInc(m.ordersSigned)
}

func (m *Metrics) OrdersRejectedInc() {
	metrics.CounterInc(m.ordersRejected)
}

func (m *Metrics) LockConflictsInc() {
	metrics.CounterInc(m.lockConflicts)
}

func (m *Metrics) CertificatesExecutedInc() {
	metrics.CounterInc(m.certificatesExecuted)
}

func (m *Metrics) ExecutionFailuresInc() {
	metrics.CounterInc(m.executionFailures)
}

func (m *Metrics) GasUsedObserve(v float64) {
	metrics.HistogramObserve(m.gasUsed, v)
}

func (m *Metrics) ConfirmationSecondsObserve(start time.Time) {
	metrics.ObserveSince(m.confirmationSeconds, start)
}

// GetPrometheusMetrics return the authority metrics instance
func GetPrometheusMetrics(namespace string, labelsWithValues ...string) *Metrics {
	constLabels := metrics.ParseLabels(labelsWithValues...)

	m := &Metrics{
		ordersSigned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "orders_signed",
			Help:        "orders signed and locked",
			ConstLabels: constLabels,
		}),
		ordersRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "orders_rejected",
			Help:        "orders rejected by input checks",
			ConstLabels: constLabels,
		}),
		lockConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "lock_conflicts",
			Help:        "orders conflicting with a pending lock",
			ConstLabels: constLabels,
		}),
		certificatesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "certificates_executed",
			Help:        "certificates executed and committed",
			ConstLabels: constLabels,
		}),
		executionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "execution_failures",
			Help:        "certificates committed with a failed status",
			ConstLabels: constLabels,
		}),
		gasUsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "gas_used",
			Help:        "gas charged per certificate",
			ConstLabels: constLabels,
		}),
		confirmationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "confirmation_seconds",
			Help:        "certificate execution and commit time (seconds)",
			ConstLabels: constLabels,
		}),
	}

	prometheus.MustRegister(
		m.ordersSigned,
		m.ordersRejected,
		m.lockConflicts,
		m.certificatesExecuted,
		m.executionFailures,
		m.gasUsed,
		m.confirmationSeconds,
	)

	return m
}

// NilMetrics will return the non operational authority metrics
func NilMetrics() *Metrics {
	return &Metrics{}
}

// NewDummyMetrics will return the no nil authority metrics
func NewDummyMetrics(metrics *Metrics) *Metrics {
	if metrics != nil {
		return metrics
	}

	return NilMetrics()
}
