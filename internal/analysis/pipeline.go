package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cs-copilot/backend/internal/history"
	"github.com/cs-copilot/backend/internal/llm"
	"github.com/cs-copilot/backend/internal/metrics"
	"github.com/cs-copilot/backend/internal/textproc"
	"github.com/cs-copilot/backend/pkg/logger"
)

// Outcome carries a stage result through the fail-soft pipeline: either
// the parsed value, or the stage's fixed fallback plus a diagnostic.
// Stage failures never cross the pipeline boundary as errors.
type Outcome[T any] struct {
	Value      T
	Fallback   bool
	Diagnostic string
}

func ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

func degraded[T any](v T, diagnostic string) Outcome[T] {
	return Outcome[T]{Value: v, Fallback: true, Diagnostic: diagnostic}
}

// Copilot runs the analysis pipeline and the response generator
// against a chat-completion gateway.
type Copilot struct {
	gateway       llm.Completer
	responseModel string
	history       history.Store[*AnalysisResult]
	knowledge     CompanyKnowledge
	stageTimeout  time.Duration
}

type Config struct {
	// ResponseModel is the model slot for reply generation; the
	// gateway's default model handles classification.
	ResponseModel string
	// StageTimeout bounds the three concurrent classification calls
	// as a group. Zero means 45s.
	StageTimeout time.Duration
}

func NewCopilot(gateway llm.Completer, store history.Store[*AnalysisResult], cfg Config) *Copilot {
	timeout := cfg.StageTimeout
	if timeout == 0 {
		timeout = 45 * time.Second
	}

	return &Copilot{
		gateway:       gateway,
		responseModel: cfg.ResponseModel,
		history:       store,
		knowledge:     DefaultKnowledge(),
		stageTimeout:  timeout,
	}
}

// Analyze runs the five-stage pipeline. The three classification calls
// are data-independent and run concurrently under a shared deadline;
// escalation and resolution estimation are deterministic and run after
// the join. Completion is guaranteed: a failed stage degrades to its
// fixed fallback instead of surfacing an error.
func (c *Copilot) Analyze(ctx context.Context, email string, profile *CustomerProfile) *AnalysisResult {
	conversationID := uuid.New().String()
	email = textproc.CleanEmail(email)

	stats := textproc.Stats(email)
	metrics.EmailTokenEstimate.Observe(stats.TokenEstimate)

	logger.Info("Analyzing customer communication",
		zap.String("conversation_id", conversationID),
		zap.Int("email_words", stats.Words),
		zap.Int("email_sentences", stats.Sentences),
		zap.Bool("profile_available", profile != nil),
	)

	stageCtx, cancel := context.WithTimeout(ctx, c.stageTimeout)
	defer cancel()

	var (
		wg               sync.WaitGroup
		sentimentOutcome Outcome[sentimentUrgency]
		intentOutcome    Outcome[[]string]
		issuesOutcome    Outcome[[]string]
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		sentimentOutcome = c.analyzeSentimentUrgency(stageCtx, email)
	}()
	go func() {
		defer wg.Done()
		intentOutcome = c.classifyIntent(stageCtx, email)
	}()
	go func() {
		defer wg.Done()
		issuesOutcome = c.extractKeyIssues(stageCtx, email)
	}()
	wg.Wait()

	sentiment := sentimentOutcome.Value.Sentiment
	urgency := sentimentOutcome.Value.Urgency
	intents := intentOutcome.Value
	issues := issuesOutcome.Value

	escalationNeeded := AssessEscalation(email, sentiment.Label, urgency.Level, profile)
	resolutionTime := EstimateResolutionTime(intents, escalationNeeded)

	result := &AnalysisResult{
		Sentiment:               sentiment,
		Urgency:                 urgency,
		Intent:                  intents,
		KeyIssues:               issues,
		CustomerContext:         BuildCustomerContext(profile),
		EscalationNeeded:        escalationNeeded,
		EstimatedResolutionTime: resolutionTime,
	}

	for _, stage := range []struct {
		name       string
		fallback   bool
		diagnostic string
	}{
		{"sentiment_urgency", sentimentOutcome.Fallback, sentimentOutcome.Diagnostic},
		{"intent", intentOutcome.Fallback, intentOutcome.Diagnostic},
		{"key_issues", issuesOutcome.Fallback, issuesOutcome.Diagnostic},
	} {
		if stage.fallback {
			result.Fallbacks = append(result.Fallbacks, StageFallback{Stage: stage.name, Diagnostic: stage.diagnostic})
			metrics.StageFallbacks.WithLabelValues(stage.name).Inc()
		}
	}

	if escalationNeeded {
		metrics.EscalationsTotal.Inc()
	}
	metrics.AnalysesTotal.WithLabelValues("standard").Inc()

	if c.history != nil {
		c.history.Append(history.Entry[*AnalysisResult]{
			ConversationID: conversationID,
			CreatedAt:      time.Now(),
			Result:         result,
		})
	}

	logger.Info("Analysis completed",
		zap.String("conversation_id", conversationID),
		zap.String("sentiment", string(sentiment.Label)),
		zap.String("urgency", string(urgency.Level)),
		zap.Strings("intents", intents),
		zap.Bool("escalation_needed", escalationNeeded),
		zap.Int("degraded_stages", len(result.Fallbacks)),
	)

	return result
}

type sentimentUrgency struct {
	Sentiment Sentiment
	Urgency   Urgency
}

func fallbackSentimentUrgency(diagnostic string) sentimentUrgency {
	return sentimentUrgency{
		Sentiment: Sentiment{Label: SentimentNeutral, Confidence: 0.5},
		Urgency:   Urgency{Level: UrgencyMedium, Reasoning: "Analysis error: " + diagnostic},
	}
}

func (c *Copilot) analyzeSentimentUrgency(ctx context.Context, email string) Outcome[sentimentUrgency] {
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("sentiment_urgency").Observe(time.Since(start).Seconds())
	}()

	prompt := fmt.Sprintf(`Analyze this customer email for sentiment and urgency:

Email: "%s"

Provide analysis in this exact JSON format:
{
    "sentiment": {
        "label": "Positive/Neutral/Frustrated/Angry",
        "confidence": 0.0-1.0,
        "key_indicators": ["specific phrases that indicate sentiment"]
    },
    "urgency": {
        "level": "Low/Medium/High/Critical",
        "reasoning": "Explanation of urgency level",
        "urgency_indicators": ["specific phrases indicating urgency"]
    }
}

Consider factors like:
- Emotional language and tone
- Explicit urgency indicators ("urgent", "immediately", "ASAP")
- Business impact mentions
- Threat of cancellation or escalation`, email)

	resp, err := c.gateway.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: "You are an expert customer success analyst. Provide accurate sentiment and urgency analysis in valid JSON format.",
		UserPrompt:   prompt,
		Temperature:  0.2,
		MaxTokens:    500,
	})
	if err != nil {
		logger.Warn("Sentiment analysis degraded to fallback", zap.Error(err))
		return degraded(fallbackSentimentUrgency(err.Error()), err.Error())
	}

	var payload struct {
		Sentiment struct {
			Label         string   `json:"label"`
			Confidence    float64  `json:"confidence"`
			KeyIndicators []string `json:"key_indicators"`
		} `json:"sentiment"`
		Urgency struct {
			Level             string   `json:"level"`
			Reasoning         string   `json:"reasoning"`
			UrgencyIndicators []string `json:"urgency_indicators"`
		} `json:"urgency"`
	}
	if err := llm.DecodeObject(resp.Content, &payload); err != nil {
		logger.Warn("Sentiment analysis returned unparsable JSON", zap.Error(err))
		return degraded(fallbackSentimentUrgency(err.Error()), err.Error())
	}

	confidence := payload.Sentiment.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return ok(sentimentUrgency{
		Sentiment: Sentiment{
			Label:      CoerceSentiment(payload.Sentiment.Label),
			RawLabel:   payload.Sentiment.Label,
			Confidence: confidence,
			Indicators: payload.Sentiment.KeyIndicators,
		},
		Urgency: Urgency{
			Level:      CoerceUrgency(payload.Urgency.Level),
			RawLevel:   payload.Urgency.Level,
			Reasoning:  payload.Urgency.Reasoning,
			Indicators: payload.Urgency.UrgencyIndicators,
		},
	})
}

func (c *Copilot) classifyIntent(ctx context.Context, email string) Outcome[[]string] {
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("intent").Observe(time.Since(start).Seconds())
	}()

	prompt := fmt.Sprintf(`Classify the intent(s) in this customer email:

Email: "%s"

Common intents include:
- Billing Dispute
- Feature Request
- Technical Issue
- Account Access
- Cancellation Request
- Integration Support
- Training Request
- General Inquiry
- Complaint
- Compliment

Return ONLY a JSON array of applicable intents:
["Intent 1", "Intent 2"]`, email)

	resp, err := c.gateway.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: "You are an expert at classifying customer support intents. Return only valid JSON arrays.",
		UserPrompt:   prompt,
		Temperature:  0.1,
		MaxTokens:    200,
	})
	if err != nil {
		logger.Warn("Intent classification degraded to fallback", zap.Error(err))
		return degraded([]string{IntentGeneralInquiry}, err.Error())
	}

	intents, err := llm.DecodeStringArray(resp.Content)
	if err != nil || len(intents) == 0 {
		diagnostic := "empty intent list"
		if err != nil {
			diagnostic = err.Error()
		}
		logger.Warn("Intent classification returned unparsable JSON", zap.String("diagnostic", diagnostic))
		return degraded([]string{IntentGeneralInquiry}, diagnostic)
	}

	return ok(CoerceIntents(intents))
}

func (c *Copilot) extractKeyIssues(ctx context.Context, email string) Outcome[[]string] {
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("key_issues").Observe(time.Since(start).Seconds())
	}()

	prompt := fmt.Sprintf(`Extract the specific issues or problems mentioned in this email:

Email: "%s"

Return ONLY a JSON array of specific, actionable issues:
["Issue 1", "Issue 2", "Issue 3"]

Focus on:
- Concrete problems that need solving
- Specific features not working
- Billing discrepancies
- Access issues
- Integration failures`, email)

	resp, err := c.gateway.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: "You are an expert at identifying specific customer issues. Return only valid JSON arrays of concrete, actionable problems.",
		UserPrompt:   prompt,
		Temperature:  0.1,
		MaxTokens:    300,
	})
	if err != nil {
		logger.Warn("Issue extraction degraded to fallback", zap.Error(err))
		return degraded([]string{"Unable to extract specific issues"}, err.Error())
	}

	issues, err := llm.DecodeStringArray(resp.Content)
	if err != nil {
		logger.Warn("Issue extraction returned unparsable JSON", zap.Error(err))
		return degraded([]string{"Unable to extract specific issues"}, err.Error())
	}

	cleaned := make([]string, 0, len(issues))
	for _, issue := range issues {
		if trimmed := strings.TrimSpace(issue); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return degraded([]string{"Unable to extract specific issues"}, "empty issue list")
	}

	return ok(cleaned)
}
