// Package evaluation scores generated replies with an LLM judge. Scores
// feed the tracked variant's quality metrics and the business-impact
// calculator.
package evaluation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cs-copilot/backend/internal/analysis"
	"github.com/cs-copilot/backend/internal/llm"
	"github.com/cs-copilot/backend/internal/textproc"
	"github.com/cs-copilot/backend/pkg/logger"
)

// QualityScores rates a reply 1-10 on each dimension. Overall is the
// mean of the six.
type QualityScores struct {
	IssueCoverage       float64 `json:"issue_coverage"`
	ToneAppropriateness float64 `json:"tone_appropriateness"`
	Professionalism     float64 `json:"professionalism"`
	Empathy             float64 `json:"empathy"`
	Actionability       float64 `json:"actionability"`
	Personalization     float64 `json:"personalization"`
	Overall             float64 `json:"overall_score"`
}

// FallbackScores is the fixed fail-soft result when the judge call or
// its JSON cannot be used.
func FallbackScores() QualityScores {
	return QualityScores{
		IssueCoverage:       7.0,
		ToneAppropriateness: 7.0,
		Professionalism:     8.0,
		Empathy:             7.0,
		Actionability:       7.0,
		Personalization:     6.0,
		Overall:             7.0,
	}
}

type Evaluator struct {
	gateway llm.Completer
	model   string
}

func NewEvaluator(gateway llm.Completer, model string) *Evaluator {
	return &Evaluator{gateway: gateway, model: model}
}

// Score rates the generated reply against the original email and the
// analysis context. Never returns an error: judge failures degrade to
// FallbackScores.
func (e *Evaluator) Score(ctx context.Context, email string, result *analysis.AnalysisResult, reply string) QualityScores {
	issues := result.KeyIssues
	if len(issues) > 3 {
		issues = issues[:3]
	}

	prompt := fmt.Sprintf(`You are an expert customer service quality evaluator. Rate this response across multiple dimensions.

Original Customer Email: "%s"

Customer Analysis Context:
- Sentiment: %s (confidence: %.2f)
- Urgency: %s
- Key Issues: %s
- Escalation Needed: %t

Generated Response: "%s"

Rate each dimension from 1-10:
1. Issue Coverage: How well does the response address all customer concerns?
2. Tone Appropriateness: Does the tone match the customer's emotional state?
3. Professionalism: Is the response professional and well-structured?
4. Empathy: Does it show understanding and care for the customer?
5. Actionability: Are next steps clear and specific?
6. Personalization: Is it tailored to the customer context?

Return ONLY a JSON object with these scores:
{"issue_coverage": X, "tone_appropriateness": X, "professionalism": X, "empathy": X, "actionability": X, "personalization": X}`,
		textproc.Truncate(email, 500),
		result.Sentiment.Label,
		result.Sentiment.Confidence,
		result.Urgency.Level,
		strings.Join(issues, ", "),
		result.EscalationNeeded,
		reply,
	)

	resp, err := e.gateway.Complete(ctx, llm.CompletionRequest{
		Model:        e.model,
		SystemPrompt: "You are an expert customer service evaluator. Return only valid JSON with numeric scores 1-10.",
		UserPrompt:   prompt,
		Temperature:  0.1,
		MaxTokens:    200,
	})
	if err != nil {
		logger.Warn("Response evaluation degraded to fallback scores", zap.Error(err))
		return FallbackScores()
	}

	var scores QualityScores
	if err := llm.DecodeObject(resp.Content, &scores); err != nil {
		logger.Warn("Response evaluation returned unparsable JSON", zap.Error(err))
		return FallbackScores()
	}

	scores.Overall = (scores.IssueCoverage +
		scores.ToneAppropriateness +
		scores.Professionalism +
		scores.Empathy +
		scores.Actionability +
		scores.Personalization) / 6.0

	logger.Debug("Response quality evaluated", zap.Float64("overall_score", scores.Overall))

	return scores
}
