package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cs-copilot/backend/internal/analysis"
	cache "github.com/cs-copilot/backend/internal/cache/redis"
	"github.com/cs-copilot/backend/pkg/logger"
)

type AnalyzeHandler struct {
	copilot *analysis.Copilot
	cache   *cache.Client
}

// NewAnalyzeHandler wires the untracked analysis surface. The cache
// client may be nil when redis is not configured.
func NewAnalyzeHandler(copilot *analysis.Copilot, cacheClient *cache.Client) *AnalyzeHandler {
	return &AnalyzeHandler{
		copilot: copilot,
		cache:   cacheClient,
	}
}

type analyzeRequest struct {
	Email   string                    `json:"email"`
	Profile *analysis.CustomerProfile `json:"profile"`
}

func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req analyzeRequest
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

	if h.cache != nil {
		key := cache.Key(req.Email, req.Profile)
		if cached, found, err := h.cache.GetAnalysis(c.Context(), key); err == nil && found {
			return c.JSON(cached)
		}
	}

	result := h.copilot.Analyze(c.Context(), req.Email, req.Profile)

	if h.cache != nil {
		key := cache.Key(req.Email, req.Profile)
		if err := h.cache.SetAnalysis(c.Context(), key, result); err != nil {
			logger.Warn("Failed to cache analysis", zap.Error(err))
		}
	}

	return c.JSON(result)
}

type respondRequest struct {
	Email    string                   `json:"email"`
	Analysis *analysis.AnalysisResult `json:"analysis"`
}

func (h *AnalyzeHandler) HandleRespond(c *fiber.Ctx) error {
	var req respondRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.Analysis == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email and analysis are required",
		})
	}

	suggestion := h.copilot.GenerateResponse(c.Context(), req.Analysis, req.Email)
	return c.JSON(suggestion)
}
