// Package telemetry provides Prometheus metrics and correlation-id aware logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	PagesFetched         prometheus.Counter
	MessagesIngested     prometheus.Counter
	AggregationsComputed prometheus.Counter
	AnalysesStarted      prometheus.Counter
	FetchErrors          *prometheus.CounterVec // labeled by error kind

	// Histograms (seconds)
	FetchDuration prometheus.Observer

	// Gauges
	StoreSizeGauge     prometheus.Gauge
	SessionActiveGauge prometheus.Gauge // 1=live session, 0=none
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		PagesFetched = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_pages_fetched_total", Help: "Number of live chat pages fetched"})
		MessagesIngested = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_messages_ingested_total", Help: "Number of chat messages appended to the store"})
		AggregationsComputed = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_aggregations_total", Help: "Number of aggregate computations served"})
		AnalysesStarted = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_analyses_started_total", Help: "Number of analysis sessions started"})
		FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{Name: "chat_fetch_errors_total", Help: "Number of failed chat fetches by error kind"}, []string{"kind"})
		FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "chat_fetch_duration_seconds", Help: "Chat page fetch duration seconds", Buckets: prometheus.DefBuckets})
		StoreSizeGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "chat_store_size", Help: "Messages accumulated in the live session store"})
		SessionActiveGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "chat_session_active", Help: "Live analysis session present=1 absent=0"})
	})
}

// RecordFetch observes one fetch attempt: its duration plus either the
// page/message counters or the per-kind error counter.
func RecordFetch(d time.Duration, messages int, errKind string) {
	if FetchDuration != nil {
		FetchDuration.Observe(d.Seconds())
	}
	if errKind != "" {
		if FetchErrors != nil {
			FetchErrors.WithLabelValues(errKind).Inc()
		}
		return
	}
	if PagesFetched != nil {
		PagesFetched.Inc()
	}
	if MessagesIngested != nil {
		MessagesIngested.Add(float64(messages))
	}
}

// SetStoreSize records the live store's message count.
func SetStoreSize(n int) {
	if StoreSizeGauge != nil {
		StoreSizeGauge.Set(float64(n))
	}
}

// SetSessionActive flips the session gauge.
func SetSessionActive(active bool) {
	if SessionActiveGauge == nil {
		return
	}
	if active {
		SessionActiveGauge.Set(1)
	} else {
		SessionActiveGauge.Set(0)
	}
}

// TimeFunc measures the duration of fn and records in observer if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding correlation id (if absent) and the id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	v := ctx.Value(corrKey)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
