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

	MissionAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mission_analyses_total",
			Help: "Mission statements scored, by profile",
		},
		[]string{"profile"},
	)

	MissionOverallScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mission_overall_score",
			Help:    "Distribution of overall mission scores",
			Buckets: []float64{20, 40, 50, 60, 70, 80, 85, 90, 95, 100},
		},
		[]string{"profile"},
	)

	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "HTTP API requests by route and status",
		},
		[]string{"route", "status"},
	)

	AccessGrants = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_grants_total",
			Help: "Purchase webhook outcomes",
		},
		[]string{"result"},
	)
)

// ObserveScore records one scored mission statement.
func ObserveScore(profile string, overall int) {
	MissionAnalyses.WithLabelValues(profile).Inc()
	MissionOverallScore.WithLabelValues(profile).Observe(float64(overall))
}
