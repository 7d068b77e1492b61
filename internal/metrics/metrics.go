package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	MetricsEndpoint = "0.0.0.0:9090"
)

var (
	// ESMQueryCount counts upstream calls by response status code.
	ESMQueryCount *prometheus.CounterVec

	// ESMQueryErrorCount counts failed upstream queries by query kind.
	ESMQueryErrorCount *prometheus.CounterVec

	ESMQueryRunTimeSummary prometheus.Summary

	// ReauthCount counts credential invalidations triggered by an
	// auth-expired upstream response.
	ReauthCount prometheus.Counter

	ConnectorsLive  prometheus.Gauge
	ConnectorsDead  prometheus.Gauge
	ConnectorsTotal prometheus.Gauge

	HealthScrapeErrorCount     prometheus.Counter
	HealthScrapeRunTimeSummary prometheus.Summary
)

func init() {
	ESMQueryCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esmbridge_query_count",
			Help: "A counter metric to measure the total count of ESM API calls, by response status code.",
		},
		[]string{"code"},
	)

	ESMQueryRunTimeSummary = promauto.NewSummary(
		prometheus.SummaryOpts{
			Name: "esmbridge_query_duration_seconds",
			Help: "A summary metric to measure the total time spent in each ESM API call.",
		},
	)

	ESMQueryErrorCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esmbridge_query_error_count",
			Help: "A counter metric to measure the total count of errors querying the ESM API.",
		},
		[]string{"query_kind"},
	)

	ReauthCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "esmbridge_reauth_count",
			Help: "A counter metric to measure how often the cached ESM credential was invalidated and re-obtained.",
		},
	)

	ConnectorsLive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "esmbridge_connectors_live",
			Help: "The count of connectors the upstream reports as operationally alive.",
		},
	)

	ConnectorsDead = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "esmbridge_connectors_dead",
			Help: "The count of connectors the upstream reports as dead.",
		},
	)

	ConnectorsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "esmbridge_connectors_total",
			Help: "The combined live and dead connector count.",
		},
	)

	HealthScrapeErrorCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "esmbridge_health_scrape_error_count",
			Help: "A counter metric to measure failed health monitor scrapes.",
		},
	)

	HealthScrapeRunTimeSummary = promauto.NewSummary(
		prometheus.SummaryOpts{
			Name: "esmbridge_health_scrape_duration_seconds",
			Help: "A summary metric to measure the total time spent in each health scrape.",
		},
	)
}

// ListenAndServe exposes prometheus metrics as /metrics
func ListenAndServe() {
	go func() {
		http.Handle("/metrics", promhttp.Handler())

		server := &http.Server{
			Addr:              MetricsEndpoint,
			ReadHeaderTimeout: 2 * time.Second,
		}

		if err := server.ListenAndServe(); err != nil {
			slog.Error("Failed to start metrics server", "error", err)
		}
	}()
}
