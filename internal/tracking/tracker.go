// Package tracking wraps the copilot with conversation-level
// observability: full traces, response quality scores, business-impact
// figures, and the aggregate dashboard snapshot.
package tracking

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cs-copilot/backend/internal/analysis"
	"github.com/cs-copilot/backend/internal/evaluation"
	"github.com/cs-copilot/backend/internal/metrics"
	"github.com/cs-copilot/backend/internal/textproc"
	"github.com/cs-copilot/backend/pkg/logger"
)

// ConversationTrace snapshots one full analysis-and-response cycle.
// Traces are metrics-only: nothing downstream reads them back into the
// pipeline.
type ConversationTrace struct {
	ConversationID    string                    `json:"conversation_id"`
	Timestamp         time.Time                 `json:"timestamp"`
	CustomerProfile   *analysis.CustomerProfile `json:"customer_profile,omitempty"`
	EmailExcerpt      string                    `json:"email_excerpt"`
	Analysis          *analysis.AnalysisResult  `json:"analysis_results"`
	ResponseLength    int                       `json:"response_length"`
	ToneGuidance      string                    `json:"tone_guidance"`
	FollowUpActions   string                    `json:"follow_up_actions"`
	Timing            TimingMetrics             `json:"performance_metrics"`
	QualityScores     evaluation.QualityScores  `json:"quality_scores"`
	BusinessImpact    BusinessImpact            `json:"business_impact"`
	EscalationFactors []string                  `json:"escalation_factors,omitempty"`
}

type TimingMetrics struct {
	TotalProcessingSec    float64 `json:"total_processing_time"`
	AnalysisSec           float64 `json:"analysis_time"`
	ResponseGenerationSec float64 `json:"response_generation_time"`
	EvaluationSec         float64 `json:"evaluation_time"`
}

// TrackedResult is the tracked API surface's return value.
type TrackedResult struct {
	Analysis       *analysis.AnalysisResult     `json:"analysis"`
	ResponseData   *analysis.ResponseSuggestion `json:"response_data"`
	QualityScores  evaluation.QualityScores     `json:"quality_scores"`
	BusinessImpact BusinessImpact               `json:"business_impact"`
	Trace          *ConversationTrace           `json:"conversation_trace"`
	Timing         TimingMetrics                `json:"performance_metrics"`
}

// TracePersister is the optional durable sink for traces.
type TracePersister interface {
	InsertTrace(trace *ConversationTrace) error
}

type Tracker struct {
	copilot   *analysis.Copilot
	evaluator *evaluation.Evaluator
	persister TracePersister

	mu     sync.RWMutex
	traces []ConversationTrace
	perf   performanceTotals
}

type performanceTotals struct {
	conversations      int
	totalProcessingSec float64
	totalQuality       float64
	escalations        int
}

func NewTracker(copilot *analysis.Copilot, evaluator *evaluation.Evaluator, persister TracePersister) *Tracker {
	return &Tracker{
		copilot:   copilot,
		evaluator: evaluator,
		persister: persister,
	}
}

// AnalyzeWithTracking runs the full tracked cycle: pipeline, response
// generation, quality evaluation, business-impact calculation, trace
// assembly. Like the untracked path it cannot fail partway: every
// LLM-backed step degrades to its fixed fallback.
func (t *Tracker) AnalyzeWithTracking(ctx context.Context, email string, profile *analysis.CustomerProfile) *TrackedResult {
	start := time.Now()

	result := t.copilot.Analyze(ctx, email, profile)
	analysisSec := time.Since(start).Seconds()

	responseStart := time.Now()
	response := t.copilot.GenerateResponse(ctx, result, email)
	responseSec := time.Since(responseStart).Seconds()

	evalStart := time.Now()
	quality := t.evaluator.Score(ctx, email, result, response.SuggestedResponse)
	evalSec := time.Since(evalStart).Seconds()

	totalSec := time.Since(start).Seconds()

	impact := CalculateBusinessImpact(
		totalSec,
		quality.Overall,
		result.EscalationNeeded,
		result.Urgency.Level.Elevated(),
	)

	trace := &ConversationTrace{
		ConversationID:  uuid.New().String(),
		Timestamp:       time.Now(),
		CustomerProfile: profile,
		EmailExcerpt:    textproc.Truncate(email, 200),
		Analysis:        result,
		ResponseLength:  len(response.SuggestedResponse),
		ToneGuidance:    response.ToneGuidance,
		FollowUpActions: response.FollowUpActions,
		Timing: TimingMetrics{
			TotalProcessingSec:    totalSec,
			AnalysisSec:           analysisSec,
			ResponseGenerationSec: responseSec,
			EvaluationSec:         evalSec,
		},
		QualityScores:     quality,
		BusinessImpact:    impact,
		EscalationFactors: EscalationFactors(result, profile),
	}

	t.appendTrace(trace)

	if t.persister != nil {
		if err := t.persister.InsertTrace(trace); err != nil {
			logger.Warn("Failed to persist conversation trace",
				zap.String("conversation_id", trace.ConversationID),
				zap.Error(err),
			)
		}
	}

	metrics.AnalysesTotal.WithLabelValues("tracked").Inc()
	metrics.QualityScore.Observe(quality.Overall)
	if impact.TimeSavedMinutes > 0 {
		metrics.TimeSavedMinutes.Add(impact.TimeSavedMinutes)
	}

	logger.Info("Tracked conversation completed",
		zap.String("conversation_id", trace.ConversationID),
		zap.Float64("total_processing_sec", totalSec),
		zap.Float64("quality_score", quality.Overall),
		zap.Float64("time_saved_minutes", impact.TimeSavedMinutes),
	)

	return &TrackedResult{
		Analysis:       result,
		ResponseData:   response,
		QualityScores:  quality,
		BusinessImpact: impact,
		Trace:          trace,
		Timing:         trace.Timing,
	}
}

func (t *Tracker) appendTrace(trace *ConversationTrace) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.traces = append(t.traces, *trace)
	t.perf.conversations++
	t.perf.totalProcessingSec += trace.Timing.TotalProcessingSec
	t.perf.totalQuality += trace.QualityScores.Overall
	if trace.Analysis.EscalationNeeded {
		t.perf.escalations++
	}
}

// RecentTraces returns up to n traces, newest last.
func (t *Tracker) RecentTraces(n int) []ConversationTrace {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n <= 0 || n > len(t.traces) {
		n = len(t.traces)
	}

	out := make([]ConversationTrace, n)
	copy(out, t.traces[len(t.traces)-n:])
	return out
}

// EscalationFactors tags what drove the escalation decision, for trace
// display and filtering.
func EscalationFactors(result *analysis.AnalysisResult, profile *analysis.CustomerProfile) []string {
	var factors []string

	if result.Sentiment.Label.Negative() {
		factors = append(factors, "negative_sentiment_"+strings.ToLower(string(result.Sentiment.Label)))
	}

	if result.Urgency.Level.Elevated() {
		factors = append(factors, "high_urgency_"+strings.ToLower(string(result.Urgency.Level)))
	}

	if profile != nil && profile.Tier == analysis.TierPremium {
		factors = append(factors, "premium_customer")
	}

	if profile != nil && profile.SupportTicketsCount > 5 {
		factors = append(factors, "high_support_history")
	}

	return factors
}
