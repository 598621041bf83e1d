// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// StyleResolutions counts engine results by the tier that produced them.
	StyleResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "style_resolutions_total",
			Help: "Engine results by operation and provenance",
		},
		[]string{"operation", "provenance"},
	)

	ChatBackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_backend_requests_total",
			Help: "Chat backend calls by call name and outcome",
		},
		[]string{"call", "outcome"},
	)

	ChatBackendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_backend_duration_seconds",
			Help:    "Latency of chat backend calls",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"call"},
	)

	Translations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translations_total",
			Help: "Translator lookups by result",
		},
		[]string{"result"},
	)
)

// Chat backend outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeStatus   = "status_error"
	OutcomeFailure  = "failure"
	OutcomeDeadline = "deadline"
)

// Translation results.
const (
	TranslationCacheHit = "cache_hit"
	TranslationBackend  = "backend"
	TranslationFailed   = "failed"
)
