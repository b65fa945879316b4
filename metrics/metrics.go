// Package metrics provides Prometheus metrics for the FourMeme trader MCP
// server. It tracks tool calls, upstream latencies, swap submissions, and
// cache performance.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics.
const (
	Namespace = "fourmeme_trader_mcp"
)

var (
	// RequestsTotal counts MCP tool calls by tool name and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures tool call latency distribution.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Tool call latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 120},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing tool calls.
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of tool calls currently being processed",
	}, []string{"tool"})

	// BitqueryLatency measures Bitquery GraphQL call latency by query name.
	BitqueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "bitquery_latency_seconds",
		Help:      "Bitquery GraphQL call latency by query",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query"})

	// BitqueryRequestsTotal counts Bitquery GraphQL requests.
	BitqueryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "bitquery_requests_total",
		Help:      "Total Bitquery requests by query and status",
	}, []string{"query", "status"})

	// ChainRPCLatency measures BSC RPC call latency by method.
	ChainRPCLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "chain_rpc_latency_seconds",
		Help:      "BSC RPC call latency by method",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	// ChainRPCRequestsTotal counts BSC RPC requests.
	ChainRPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "chain_rpc_requests_total",
		Help:      "Total BSC RPC requests by method and status",
	}, []string{"method", "status"})

	// SwapsSubmitted counts swap transactions by direction and outcome.
	// Direction is "buy", "sell", or "approve".
	SwapsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "swaps_submitted_total",
		Help:      "Swap transactions submitted by direction and status",
	}, []string{"direction", "status"})

	// SwapGasUsed tracks gas used by confirmed swap transactions.
	SwapGasUsed = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "swap_gas_used",
		Help:      "Gas used by confirmed transactions",
		Buckets:   []float64{21000, 50000, 100000, 150000, 200000, 250000, 300000},
	}, []string{"direction"})

	// CacheHits counts cache hits.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_hits_total",
		Help:      "Total cache hit count",
	})

	// CacheMisses counts cache misses.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_misses_total",
		Help:      "Total cache miss count",
	})

	// CacheSize tracks current cache entry count.
	CacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "cache_entries",
		Help:      "Current number of cache entries",
	})

	// JournalWrites counts trade journal writes by status.
	JournalWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "journal_writes_total",
		Help:      "Trade journal writes by status",
	}, []string{"status"})

	// PanicsRecovered counts recovered panics in tool handlers.
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})
)

// RecordRequest records a completed tool call with its duration and status.
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordBitqueryCall records a Bitquery GraphQL call.
func RecordBitqueryCall(query string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	BitqueryRequestsTotal.WithLabelValues(query, status).Inc()
	BitqueryLatency.WithLabelValues(query).Observe(duration)
}

// RecordChainCall records a BSC RPC call.
func RecordChainCall(method string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	ChainRPCRequestsTotal.WithLabelValues(method, status).Inc()
	ChainRPCLatency.WithLabelValues(method).Observe(duration)
}

// RecordSwap records a submitted swap or approval transaction.
func RecordSwap(direction string, success bool, gasUsed uint64) {
	status := "success"
	if !success {
		status = "failed"
	}
	SwapsSubmitted.WithLabelValues(direction, status).Inc()
	if gasUsed > 0 {
		SwapGasUsed.WithLabelValues(direction).Observe(float64(gasUsed))
	}
}

// RecordCacheAccess records a cache hit or miss.
func RecordCacheAccess(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// SetCacheSize updates the current cache size gauge.
func SetCacheSize(size int64) {
	CacheSize.Set(float64(size))
}

// RecordJournalWrite records a trade journal write attempt.
func RecordJournalWrite(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	JournalWrites.WithLabelValues(status).Inc()
}
