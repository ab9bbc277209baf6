package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Failure reasons used as the "reason" label on AnalysisFailed.
const (
	ReasonExtraction = "extraction"
	ReasonExternal   = "external"
	ReasonSchema     = "schema"
	ReasonInternal   = "internal"
)

var (
	AnalysisStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transcript_analysis_started_total",
		Help: "Total transcript analyses started",
	})

	AnalysisCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transcript_analysis_completed_total",
		Help: "Total transcript analyses completed",
	})

	AnalysisFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transcript_analysis_failed_total",
		Help: "Total transcript analyses failed",
	}, []string{"reason"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "transcript_analysis_duration_seconds",
		Help:    "End-to-end analysis duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_request_duration_seconds",
		Help:    "Completion endpoint call duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"provider", "outcome"})

	LLMRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "llm_retries_total",
		Help: "Total retried completion calls",
	})
)

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
