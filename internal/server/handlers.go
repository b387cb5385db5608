package server

import (
	"errors"
	"net/http"

	"github.com/finai-labs/finai-go/internal/advisor"
	"github.com/finai-labs/finai-go/internal/llm"
	"github.com/labstack/echo/v4"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	History         []string       `json:"history"`
	SessionID       string         `json:"session_id,omitempty"`
	UserPreferences map[string]any `json:"user_preferences,omitempty"`
}

// ChatResponse is the reply of POST /chat.
type ChatResponse struct {
	Response   string   `json:"response"`
	SessionID  string   `json:"session_id"`
	ToolsUsed  []string `json:"tools_used"`
	Confidence float64  `json:"confidence"`
}

// ErrorResponse carries a stable error code plus a human-readable message.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned to callers.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeSessionNotFound = "SESSION_NOT_FOUND"
	CodeUpstream        = "AI_SERVICE_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// Chat processes one conversation turn.
// POST /chat
func (s *Server) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidation,
			Message: "malformed request body",
		})
	}
	if req.History == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidation,
			Message: "history is required",
		})
	}

	resp, err := s.advisor.ProcessTurn(c.Request().Context(), advisor.TurnRequest{
		History:     req.History,
		SessionID:   req.SessionID,
		Preferences: req.UserPreferences,
	})
	if err != nil {
		if errors.Is(err, advisor.ErrValidation) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    CodeValidation,
				Message: err.Error(),
			})
		}
		if errors.Is(err, advisor.ErrUpstream) {
			if errors.Is(err, llm.ErrFatalAPI) {
				s.logger.Error("upstream quota or auth failure", "error", err)
			}
			return c.JSON(http.StatusBadGateway, ErrorResponse{
				Code:    CodeUpstream,
				Message: "failed to generate response",
			})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    CodeInternal,
			Message: "failed to process turn",
		})
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Response:   resp.Response,
		SessionID:  resp.SessionID,
		ToolsUsed:  resp.ToolsUsed,
		Confidence: resp.Confidence,
	})
}

// GetSession returns session state.
// GET /session/:id
func (s *Server) GetSession(c echo.Context) error {
	sess, ok := s.advisor.GetSession(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    CodeSessionNotFound,
			Message: "session not found",
		})
	}
	return c.JSON(http.StatusOK, sess)
}

// DeleteSession removes a session. Idempotent.
// DELETE /session/:id
func (s *Server) DeleteSession(c echo.Context) error {
	deleted := s.advisor.DeleteSession(c.Param("id"))
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Session deleted",
		"deleted": deleted,
	})
}

// Health returns service status.
// GET /health
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":          "healthy",
		"active_sessions": s.advisor.SessionCount(),
	})
}

// Metrics returns runtime statistics.
// GET /metrics
func (s *Server) Metrics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.advisor.Metrics().Snapshot())
}
