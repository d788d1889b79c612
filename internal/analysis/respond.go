package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cs-copilot/backend/internal/llm"
	"github.com/cs-copilot/backend/internal/metrics"
	"github.com/cs-copilot/backend/pkg/logger"
)

const fallbackReply = "I apologize for the delay in my response. I'm looking into your inquiry and will get back to you shortly with a resolution."

// GenerateResponse produces a suggested reply conditioned on the
// analysis. Gateway failure degrades to a fixed apologetic reply; tone
// guidance and follow-up actions are deterministic and are always
// computed from the real analysis.
func (c *Copilot) GenerateResponse(ctx context.Context, result *AnalysisResult, email string) *ResponseSuggestion {
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("response").Observe(time.Since(start).Seconds())
	}()

	tone := ToneGuidance(result.Sentiment.Label, result.Urgency.Level)
	actions := FollowUpActions(result)

	prompt := fmt.Sprintf(`Generate a professional, empathetic customer support response based on this analysis:

%s

The response should:
1. Acknowledge their concerns specifically
2. Address each key issue mentioned
3. Match the appropriate tone (more formal for angry customers)
4. Include next steps and timeline
5. Be personalized if customer info is available
6. Be concise but comprehensive

Generate a response that a customer success professional would send.`, c.renderResponseContext(result, email))

	resp, err := c.gateway.Complete(ctx, llm.CompletionRequest{
		Model:        c.responseModel,
		SystemPrompt: "You are an expert customer success manager who writes empathetic, professional, and effective customer responses.",
		UserPrompt:   prompt,
		Temperature:  0.3,
		MaxTokens:    800,
	})
	if err != nil {
		logger.Warn("Response generation degraded to fallback", zap.Error(err))
		return &ResponseSuggestion{
			SuggestedResponse: fallbackReply,
			ToneGuidance:      tone,
			FollowUpActions:   actions,
			Fallback:          true,
		}
	}

	logger.Info("Response suggestion generated",
		zap.Int("response_length", len(resp.Content)),
		zap.String("tone_guidance", tone),
	)

	return &ResponseSuggestion{
		SuggestedResponse: strings.TrimSpace(resp.Content),
		ToneGuidance:      tone,
		FollowUpActions:   actions,
	}
}

func (c *Copilot) renderResponseContext(result *AnalysisResult, email string) string {
	tier := result.CustomerContext.Tier
	if tier == "" {
		tier = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Customer Analysis:\n")
	fmt.Fprintf(&b, "- Sentiment: %s (confidence: %.2f)\n", result.Sentiment.Label, result.Sentiment.Confidence)
	fmt.Fprintf(&b, "- Urgency: %s\n", result.Urgency.Level)
	fmt.Fprintf(&b, "- Intents: %s\n", strings.Join(result.Intent, ", "))
	fmt.Fprintf(&b, "- Key Issues: %s\n", strings.Join(result.KeyIssues, ", "))
	fmt.Fprintf(&b, "- Escalation Needed: %t\n", result.EscalationNeeded)
	fmt.Fprintf(&b, "- Customer Tier: %s\n", tier)

	if len(c.knowledge.BillingPolicies) > 0 {
		fmt.Fprintf(&b, "\nCompany Policies:\n")
		for _, policy := range c.knowledge.BillingPolicies {
			fmt.Fprintf(&b, "- %s\n", policy)
		}
	}

	fmt.Fprintf(&b, "\nOriginal Email: %q\n", email)
	return b.String()
}

// ToneGuidance is a pure function of the coerced sentiment and urgency
// labels; identical inputs always yield the identical string.
func ToneGuidance(sentiment SentimentLabel, urgency UrgencyLevel) string {
	switch {
	case sentiment.Negative() && urgency.Elevated():
		return "Extremely empathetic, formal, and solution-focused. Acknowledge frustration explicitly."
	case sentiment.Negative():
		return "Empathetic and professional. Focus on understanding and resolving concerns."
	case urgency.Elevated():
		return "Professional and urgent. Emphasize quick resolution timeline."
	default:
		return "Friendly and professional. Maintain positive relationship tone."
	}
}

// FollowUpActions builds the internal action list. Order is fixed and
// load-bearing: escalation first, then intent-driven actions, then the
// premium SLA, always ending with the follow-up-within segment.
func FollowUpActions(result *AnalysisResult) string {
	var actions []string

	if result.EscalationNeeded {
		actions = append(actions, "Escalate to manager immediately")
	}

	if containsIntent(result.Intent, IntentBillingDispute) {
		actions = append(actions, "Review billing history and usage")
	}

	if containsIntent(result.Intent, IntentTechnicalIssue) {
		actions = append(actions, "Engage engineering team for technical review")
	}

	if containsIntent(result.Intent, IntentFeatureRequest) {
		actions = append(actions, "Log feature request in product backlog")
	}

	if result.CustomerContext.Tier == string(TierPremium) {
		actions = append(actions, "Apply premium support SLA (< 4 hour response)")
	}

	actions = append(actions, fmt.Sprintf("Follow up within %s", result.EstimatedResolutionTime))

	return strings.Join(actions, " | ")
}

func containsIntent(intents []string, intent string) bool {
	for _, i := range intents {
		if i == intent {
			return true
		}
	}
	return false
}
