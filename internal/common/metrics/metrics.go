// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Worker job metrics
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
)

// Triage metrics
var (
	TriageAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_analyses_total",
			Help: "Symptom analyses by resulting severity and producing path",
		},
		[]string{"severity", "source"},
	)

	TriageEmergencies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_emergencies_total",
			Help: "Inputs classified as medical emergencies",
		},
	)

	GenAIFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genai_fallbacks_total",
			Help: "Analyses that fell back to the rule-based path",
		},
		[]string{"reason"},
	)
)

// Pharmacy metrics
var (
	PharmacySearches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pharmacy_searches_total",
			Help: "Medicine searches served by the marketplace simulator",
		},
	)

	PharmacyOrders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pharmacy_orders_total",
			Help: "Orders placed per pharmacy",
		},
		[]string{"pharmacy"},
	)
)

// HTTPRequests counts API requests by chi route pattern and status code.
var HTTPRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route and status",
	},
	[]string{"route", "status"},
)
