// Package metrics provides Prometheus metrics for ai-news-daily.
//
// Collectors live on a private registry so a run can dump them as a
// node_exporter textfile and the scheduler can serve them over HTTP.
// Every recording method is safe to call on a nil *Collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ainews"

// Status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusSkipped = "skipped"
	StatusEmpty   = "empty"
)

// Backend attempt outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeQuota     = "quota"
	OutcomeError     = "error"
	OutcomeMalformed = "malformed"
)

// Collector owns the registry and every collector registered on it.
type Collector struct {
	registry *prometheus.Registry

	FeedFetchTotal      *prometheus.CounterVec
	ArticlesRanked      prometheus.Gauge
	BackendAttemptTotal *prometheus.CounterVec
	FallbackTotal       *prometheus.CounterVec
	PublishTotal        *prometheus.CounterVec
	RunsTotal           *prometheus.CounterVec
	RunDuration         prometheus.Histogram
	NextTrigger         prometheus.Gauge
}

// New creates a Collector on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		FeedFetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "feed_fetch_total",
				Help:      "Total number of feed fetches by source and status",
			},
			[]string{"source", "status"},
		),
		ArticlesRanked: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "articles_ranked",
				Help:      "Number of articles left after dedup and ranking in the last run",
			},
		),
		BackendAttemptTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_attempts_total",
				Help:      "Total number of completion attempts by stage, model and outcome",
			},
			[]string{"stage", "model", "outcome"},
		),
		FallbackTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fallback_total",
				Help:      "Total number of stages that used the fallback result",
			},
			[]string{"stage"},
		),
		PublishTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "publish_total",
				Help:      "Total number of page uploads by status",
			},
			[]string{"status"},
		),
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of pipeline runs by status",
			},
			[]string{"status"},
		),
		RunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of pipeline runs in seconds",
				Buckets:   []float64{5, 15, 30, 60, 120, 300, 600, 1200},
			},
		),
		NextTrigger: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "next_trigger_timestamp_seconds",
				Help:      "Unix time of the next scheduled run",
			},
		),
	}
}

// Registry exposes the registry for promhttp.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// RecordFeedFetch records one source fetch.
func (c *Collector) RecordFeedFetch(source string, err error) {
	if c == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	c.FeedFetchTotal.WithLabelValues(source, status).Inc()
}

// SetArticlesRanked records the size of the ranked list.
func (c *Collector) SetArticlesRanked(n int) {
	if c == nil {
		return
	}
	c.ArticlesRanked.Set(float64(n))
}

// RecordBackendAttempt records one completion attempt.
func (c *Collector) RecordBackendAttempt(stage, model, outcome string) {
	if c == nil {
		return
	}
	c.BackendAttemptTotal.WithLabelValues(stage, model, outcome).Inc()
}

// RecordFallback records a stage that ended on the fallback path.
func (c *Collector) RecordFallback(stage string) {
	if c == nil {
		return
	}
	c.FallbackTotal.WithLabelValues(stage).Inc()
}

// RecordPublish records an upload outcome.
func (c *Collector) RecordPublish(status string) {
	if c == nil {
		return
	}
	c.PublishTotal.WithLabelValues(status).Inc()
}

// RecordRun records a finished run.
func (c *Collector) RecordRun(status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.RunsTotal.WithLabelValues(status).Inc()
	c.RunDuration.Observe(duration.Seconds())
}

// SetNextTrigger records when the scheduler will fire next.
func (c *Collector) SetNextTrigger(t time.Time) {
	if c == nil {
		return
	}
	c.NextTrigger.Set(float64(t.Unix()))
}

// WriteTextfile dumps the registry in the text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.registry)
}
