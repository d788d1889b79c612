package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/cs-copilot/backend/internal/analysis"
	"github.com/cs-copilot/backend/internal/evaluation"
	"github.com/cs-copilot/backend/internal/history"
	"github.com/cs-copilot/backend/internal/llm"
	"github.com/cs-copilot/backend/internal/tracking"
)

type stubGateway struct{}

func (s *stubGateway) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	switch {
	case strings.Contains(req.SystemPrompt, "sentiment and urgency"):
		return &llm.CompletionResponse{Content: `{
			"sentiment": {"label": "Frustrated", "confidence": 0.85},
			"urgency": {"level": "High", "reasoning": "deadline mentioned"}
		}`}, nil
	case strings.Contains(req.SystemPrompt, "classifying customer support intents"):
		return &llm.CompletionResponse{Content: `["Technical Issue"]`}, nil
	case strings.Contains(req.SystemPrompt, "identifying specific customer issues"):
		return &llm.CompletionResponse{Content: `["Export job fails"]`}, nil
	case strings.Contains(req.SystemPrompt, "customer service evaluator"):
		return &llm.CompletionResponse{Content: `{
			"issue_coverage": 8, "tone_appropriateness": 8, "professionalism": 8,
			"empathy": 8, "actionability": 8, "personalization": 8
		}`}, nil
	default:
		return &llm.CompletionResponse{Content: "Thanks for flagging this, we are looking into it."}, nil
	}
}

func newTestApp() *fiber.App {
	gateway := &stubGateway{}
	copilot := analysis.NewCopilot(gateway, history.NewMemoryStore[*analysis.AnalysisResult](10), analysis.Config{})
	evaluator := evaluation.NewEvaluator(gateway, "gpt-3.5-turbo")
	tracker := tracking.NewTracker(copilot, evaluator, nil)

	analyzeHandler := NewAnalyzeHandler(copilot, nil)
	conversationsHandler := NewConversationsHandler(tracker, nil)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/respond", analyzeHandler.HandleRespond)
	api.Post("/conversations", conversationsHandler.HandleCreate)
	api.Get("/conversations", conversationsHandler.HandleRecent)
	api.Get("/dashboard", conversationsHandler.HandleDashboard)
	api.Post("/feedback", conversationsHandler.HandleFeedback)

	return app
}

func TestHandleAnalyze(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/analyze",
		strings.NewReader(`{"email": "The export job fails every night before our deadline."}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result analysis.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Sentiment.Label != analysis.SentimentFrustrated {
		t.Errorf("Sentiment.Label = %q, want Frustrated", result.Sentiment.Label)
	}
	if len(result.Intent) != 1 || result.Intent[0] != analysis.IntentTechnicalIssue {
		t.Errorf("Intent = %v", result.Intent)
	}
}

func TestHandleAnalyzeRequiresEmail(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader(`{"email": ""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleRespondRequiresAnalysis(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/respond",
		strings.NewReader(`{"email": "some email"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleCreateConversation(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/conversations",
		strings.NewReader(`{"email": "The export job fails every night.", "profile": {"name": "Dana", "tier": "Premium"}}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result tracking.TrackedResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Analysis == nil || result.ResponseData == nil || result.Trace == nil {
		t.Fatal("tracked result is missing sections")
	}
	if result.QualityScores.Overall != 8.0 {
		t.Errorf("Overall = %v, want 8.0", result.QualityScores.Overall)
	}
	if !result.Analysis.CustomerContext.ProfileAvailable {
		t.Error("profile should flow through to the customer context")
	}
}

func TestHandleDashboardEmpty(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/api/v1/dashboard", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var data tracking.DashboardData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if data.PerformanceMetrics.AvgQualityScore != 8.1 {
		t.Errorf("AvgQualityScore = %v, want demo value 8.1", data.PerformanceMetrics.AvgQualityScore)
	}
}

func TestHandleFeedbackWithoutStore(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/feedback",
		strings.NewReader(`{"trace_id": "trace-1", "helpful": true}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when storage is disabled", resp.StatusCode)
	}
}

func TestHandleFeedbackRequiresTraceID(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/feedback",
		strings.NewReader(`{"helpful": true}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
