package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cs-copilot/backend/internal/analysis"
	"github.com/cs-copilot/backend/internal/storage/models"
	"github.com/cs-copilot/backend/internal/storage/sqlite"
	"github.com/cs-copilot/backend/internal/tracking"
	"github.com/cs-copilot/backend/pkg/logger"
)

type ConversationsHandler struct {
	tracker *tracking.Tracker
	store   *sqlite.Client
}

// NewConversationsHandler wires the tracked analysis surface. The
// store may be nil when sqlite persistence is not configured.
func NewConversationsHandler(tracker *tracking.Tracker, store *sqlite.Client) *ConversationsHandler {
	return &ConversationsHandler{
		tracker: tracker,
		store:   store,
	}
}

type conversationRequest struct {
	Email   string                    `json:"email"`
	Profile *analysis.CustomerProfile `json:"profile"`
}

// HandleCreate runs the full tracked pipeline: analysis, response
// generation, quality evaluation and business impact.
func (h *ConversationsHandler) HandleCreate(c *fiber.Ctx) error {
	var req conversationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email is required",
		})
	}

	result := h.tracker.AnalyzeWithTracking(c.Context(), req.Email, req.Profile)
	return c.JSON(result)
}

func (h *ConversationsHandler) HandleRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	traces := h.tracker.RecentTraces(limit)
	return c.JSON(fiber.Map{
		"conversations": traces,
		"count":         len(traces),
	})
}

func (h *ConversationsHandler) HandleDashboard(c *fiber.Ctx) error {
	return c.JSON(h.tracker.Dashboard())
}

type feedbackRequest struct {
	TraceID       string `json:"trace_id"`
	Helpful       bool   `json:"helpful"`
	IssueCategory string `json:"issue_category"`
	Comment       string `json:"comment"`
}

func (h *ConversationsHandler) HandleFeedback(c *fiber.Ctx) error {
	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.TraceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "trace_id is required",
		})
	}

	if h.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Feedback storage is not configured",
		})
	}

	err := h.store.StoreFeedback(&models.Feedback{
		TraceID:       req.TraceID,
		Helpful:       req.Helpful,
		IssueCategory: req.IssueCategory,
		Comment:       req.Comment,
	})
	if err != nil {
		logger.Error("Failed to store feedback", zap.Error(err), zap.String("trace_id", req.TraceID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store feedback",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "recorded",
	})
}
