package server

import (
	"github.com/dogechain-lab/objectchain/authority"
	"github.com/dogechain-lab/objectchain/jsonrpc"
)

// serverMetrics holds the metric instances of all sub systems
type serverMetrics struct {
	authority *authority.Metrics
	jsonrpc   *jsonrpc.Metrics
}

// metricProvider serverMetric instance for the given chain and nameSpace
func metricProvider(nameSpace string, chainName string, metricsRequired bool) *serverMetrics {
	if metricsRequired {
		return &serverMetrics{
			authority: authority.GetPrometheusMetrics(nameSpace, "chain", chainName),
			jsonrpc:   jsonrpc.GetPrometheusMetrics(nameSpace, "chain", chainName),
		}
	}

	return &serverMetrics{
		authority: authority.NilMetrics(),
		jsonrpc:   jsonrpc.NilMetrics(),
	}
}
