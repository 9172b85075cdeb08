package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
)

// Classification outcomes recorded on the counter.
const (
	OutcomeOK            = "ok"
	OutcomeCacheHit      = "cache_hit"
	OutcomeProviderError = "provider_error"
	OutcomeParseError    = "parse_error"
	OutcomeError         = "error"
)

var (
	classificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_classifications_total",
			Help: "Classification requests by task, label, and outcome.",
		},
		[]string{"task", "label", "outcome"},
	)

	providerLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triage_provider_latency_seconds",
			Help:    "Latency of language model provider calls.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"task"},
	)
)

// ObserveClassification records one classification attempt. elapsed is
// zero for cache hits, where no provider call happened.
func ObserveClassification(task entity.TaskType, label, outcome string, elapsed time.Duration) {
	classificationsTotal.WithLabelValues(string(task), label, outcome).Inc()
	if outcome == OutcomeOK {
		providerLatency.WithLabelValues(string(task)).Observe(elapsed.Seconds())
	}
}
