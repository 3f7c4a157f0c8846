package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	panelRendersTotal     *prometheus.CounterVec
	clusterWarningsTotal  prometheus.Counter
	websocketSessionsOpen prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the dashboard.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "Total number of dashboard API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_latency_seconds",
			Help:    "Latency distribution for dashboard API requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_errors_total",
			Help: "Total number of error responses returned by dashboard endpoints.",
		}, []string{"method", "route", "status"})

		panelRendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_panel_renders_total",
			Help: "Panel renders by panel slug and outcome.",
		}, []string{"panel", "outcome"})

		clusterWarningsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_cluster_warnings_total",
			Help: "Clustering requests answered with the not-enough-data warning.",
		})

		websocketSessionsOpen = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_websocket_sessions",
			Help: "Currently open panel websocket sessions.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			panelRendersTotal,
			clusterWarningsTotal,
			websocketSessionsOpen,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// PanelRenders counts panel renders labelled by panel and outcome.
func PanelRenders() *prometheus.CounterVec {
	RegisterMetrics()
	return panelRendersTotal
}

// ClusterWarnings counts clustering renders that fell back to a warning.
func ClusterWarnings() prometheus.Counter {
	RegisterMetrics()
	return clusterWarningsTotal
}

// WebsocketSessions tracks open websocket sessions.
func WebsocketSessions() prometheus.Gauge {
	RegisterMetrics()
	return websocketSessionsOpen
}
