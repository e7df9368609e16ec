package jsonrpc

import (
	"time"

	"github.com/dogechain-lab/objectchain/helper/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type AuthorityAPILabels prometheus.Labels

var (
	AuthorityHandleOrderLabel             = AuthorityAPILabels{"method": "authority_handleOrder"}
	AuthorityHandleConfirmationOrderLabel = AuthorityAPILabels{"method": "authority_handleConfirmationOrder"}
	AuthorityGetOrderInfoLabel            = AuthorityAPILabels{"method": "authority_getOrderInfo"}
	AuthorityGetObjectInfoLabel           = AuthorityAPILabels{"method": "authority_getObjectInfo"}
	AuthorityGetAccountInfoLabel          = AuthorityAPILabels{"method": "authority_getAccountInfo"}
	AuthorityGetObjectVersionLabel        = AuthorityAPILabels{"method": "authority_getObjectVersion"}
	AuthorityClientVersionLabel           = AuthorityAPILabels{"method": "authority_clientVersion"}
)

type Web3APILabels prometheus.Labels

var (
	Web3ClientVersionLabel = Web3APILabels{"method": "web3_clientVersion"}
	Web3Sha3Label          = Web3APILabels{"method": "web3_sha3"}
)

// Metrics represents the jsonrpc metrics
type Metrics struct {
	// Requests number
	requests prometheus.Counter

	// Errors number
	errors prometheus.Counter

	// Requests duration (seconds)
	responseTime prometheus.Histogram

	// Open websocket connections
	wsConnections prometheus.Gauge

	// Authority metrics
	authorityAPI *prometheus.CounterVec

	// Web3 metrics
	web3API *prometheus.CounterVec
}

func (m *Metrics) RequestsCounterInc() {
	metrics.CounterInc(m.requests)
}

func (m *Metrics) ErrorsCounterInc() {
	metrics.CounterInc(m.errors)
}

func (m *Metrics) ResponseTimeObserve(start time.Time) {
	metrics.ObserveSince(m.responseTime, start)
}

func (m *Metrics) WsConnectionsAdd(delta float64) {
	metrics.GaugeAdd(m.wsConnections, delta)
}

func (m *Metrics) AuthorityAPICounterInc(label AuthorityAPILabels) {
	if m.authorityAPI != nil {
		m.authorityAPI.With((prometheus.Labels)(label)).Inc()
	}
}

func (m *Metrics) Web3APICounterInc(label Web3APILabels) {
	if m.web3API != nil {
		m.web3API.With((prometheus.Labels)(label)).Inc()
	}
}

// GetPrometheusMetrics return the jsonrpc metrics instance
func GetPrometheusMetrics(namespace string, labelsWithValues ...string) *Metrics {
	constLabels := metrics.ParseLabels(labelsWithValues...)

	m := &Metrics{
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "jsonrpc",
			Name:        "requests",
			Help:        "Requests number",
			ConstLabels: constLabels,
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "jsonrpc",
			Name:        "request_errors",
			Help:        "Request errors number",
			ConstLabels: constLabels,
		}),
		responseTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "jsonrpc",
			Name:      "response_seconds",
			Help:      "Response time (seconds)",
			Buckets: []float64{
				0.001,
				0.01,
				0.1,
				0.5,
				1.0,
				2.0,
			},
			ConstLabels: constLabels,
		}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "jsonrpc",
			Name:        "ws_connections",
			Help:        "Open websocket connections",
			ConstLabels: constLabels,
		}),
		authorityAPI: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "jsonrpc",
			Name:        "authority_api_requests",
			Help:        "authority api requests",
			ConstLabels: constLabels,
		}, []string{"method"}),
		web3API: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "jsonrpc",
			Name:        "web3_api_requests",
			Help:        "web3 api requests",
			ConstLabels: constLabels,
		}, []string{"method"}),
	}

	prometheus.MustRegister(
		m.requests,
		m.errors,
		m.responseTime,
		m.wsConnections,
		m.authorityAPI,
		m.web3API,
	)

	return m
}

// NilMetrics will return the non operational jsonrpc metrics
func NilMetrics() *Metrics {
	return &Metrics{}
}

// NewDummyMetrics will return the no nil jsonrpc metrics
func NewDummyMetrics(metrics *Metrics) *Metrics {
	if metrics != nil {
		return metrics
	}

	return NilMetrics()
}
