package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/cs-copilot/backend/internal/analysis"
	"github.com/cs-copilot/backend/internal/tracking"
	"github.com/cs-copilot/backend/pkg/logger"
)

type WebSocketHandler struct {
	tracker *tracking.Tracker
}

func NewWebSocketHandler(tracker *tracking.Tracker) *WebSocketHandler {
	return &WebSocketHandler{
		tracker: tracker,
	}
}

func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	logger.Info("WebSocket connection established")

	defer func() {
		c.Close()
		logger.Info("WebSocket connection closed")
	}()

	for {
		var msg struct {
			Type    string                    `json:"type"`
			Email   string                    `json:"email"`
			Profile *analysis.CustomerProfile `json:"profile"`
		}

		err := c.ReadJSON(&msg)
		if err != nil {
			logger.Error("Failed to read WebSocket message", zap.Error(err))
			break
		}

		if msg.Type != "analyze" || msg.Email == "" {
			continue
		}

		logger.Info("Processing WebSocket analysis request",
			zap.Int("email_length", len(msg.Email)))

		err = h.streamAnalysis(c, msg.Email, msg.Profile)
		if err != nil {
			logger.Error("Failed to stream analysis", zap.Error(err))
			h.sendError(c, "Failed to process email")
		}
	}
}

func (h *WebSocketHandler) streamAnalysis(c *websocket.Conn, email string, profile *analysis.CustomerProfile) error {
	ctx := context.Background()

	if err := h.sendStatus(c, "Analyzing email..."); err != nil {
		return err
	}

	result := h.tracker.AnalyzeWithTracking(ctx, email, profile)

	if err := h.sendStatus(c, "Streaming suggested response..."); err != nil {
		return err
	}

	words := strings.Fields(result.ResponseData.SuggestedResponse)
	for i, word := range words {
		chunk := word
		if i < len(words)-1 {
			chunk += " "
		}

		if err := h.sendChunk(c, chunk); err != nil {
			return err
		}
	}

	return h.sendComplete(c, result)
}

func (h *WebSocketHandler) sendStatus(c *websocket.Conn, content string) error {
	return c.WriteJSON(map[string]interface{}{
		"type":    "status",
		"content": content,
	})
}

func (h *WebSocketHandler) sendChunk(c *websocket.Conn, content string) error {
	return c.WriteJSON(map[string]interface{}{
		"type":    "chunk",
		"content": content,
	})
}

func (h *WebSocketHandler) sendComplete(c *websocket.Conn, result *tracking.TrackedResult) error {
	return c.WriteJSON(map[string]interface{}{
		"type":   "complete",
		"result": result,
	})
}

func (h *WebSocketHandler) sendError(c *websocket.Conn, errorMsg string) {
	msg := map[string]interface{}{
		"type":  "error",
		"error": errorMsg,
	}

	if err := c.WriteJSON(msg); err != nil {
		logger.Error("Failed to send error message", zap.Error(err))
	}
}
