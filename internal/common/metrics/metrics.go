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

	MatchComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_computations_total",
			Help: "Total match computations by resulting confidence band",
		},
		[]string{"band"},
	)

	MatchPartialScoring = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_partial_scoring_total",
			Help: "Matches scored with one or more signals unavailable",
		},
	)

	ScoreClampViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_score_clamp_violations_total",
			Help: "Sub-scores produced outside [0,1] and clamped by the combiner",
		},
		[]string{"signal"},
	)

	EmbeddingCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedding_cache_requests_total",
			Help: "Embedding vector cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
