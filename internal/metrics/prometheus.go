package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "copilot_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"stage"},
	)

	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copilot_analyses_total",
			Help: "Total customer communications analyzed",
		},
		[]string{"mode"},
	)

	StageFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copilot_stage_fallbacks_total",
			Help: "Stages that degraded to their fixed fallback value",
		},
		[]string{"stage"},
	)

	EscalationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "copilot_escalations_total",
			Help: "Analyses flagged for escalation",
		},
	)

	LLMTokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copilot_llm_tokens_used",
			Help: "Total LLM tokens used",
		},
		[]string{"model", "type"},
	)

	QualityScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "copilot_response_quality_score",
			Help:    "Overall response quality scores (0-10)",
			Buckets: []float64{2, 4, 5, 6, 6.5, 7, 7.5, 8, 8.5, 9, 10},
		},
	)

	TimeSavedMinutes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "copilot_time_saved_minutes_total",
			Help: "Cumulative estimated analyst minutes saved",
		},
	)

	EmailTokenEstimate = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "copilot_email_token_estimate",
			Help:    "Estimated token counts for inbound email bodies",
			Buckets: []float64{50, 100, 250, 500, 1000, 2000, 4000},
		},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copilot_cache_hits_total",
			Help: "Total cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copilot_cache_misses_total",
			Help: "Total cache misses",
		},
		[]string{"cache_type"},
	)
)

func Init() {
	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(AnalysesTotal)
	prometheus.MustRegister(StageFallbacks)
	prometheus.MustRegister(EscalationsTotal)
	prometheus.MustRegister(LLMTokensUsed)
	prometheus.MustRegister(QualityScore)
	prometheus.MustRegister(TimeSavedMinutes)
	prometheus.MustRegister(EmailTokenEstimate)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
