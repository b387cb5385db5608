package server

import (
	"errors"
	"net/http"

	"github.com/finai-labs/finai-go/internal/advisor"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// maxMessageLogLen bounds inbound message text in log lines.
const maxMessageLogLen = 200

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// wsInbound is one client frame: a single new message for the session.
type wsInbound struct {
	Message string `json:"message"`
}

// wsOutbound is one server frame.
type wsOutbound struct {
	Type       string   `json:"type"` // "message" or "error"
	Content    string   `json:"content"`
	SessionID  string   `json:"session_id"`
	ToolsUsed  []string `json:"tools_used,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	Code       string   `json:"code,omitempty"`
}

// ChatSocket handles real-time chat. Each inbound frame is processed as one
// turn; the conversation history is reconstructed from the session record so
// clients only send the new message.
// GET /ws/:session_id
func (s *Server) ChatSocket(c echo.Context) error {
	sessionID := c.Param("session_id")

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	s.logger.Info("websocket connected", "session_id", sessionID)

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Info("websocket disconnected", "session_id", sessionID)
			} else {
				s.logger.Warn("websocket read failed", "session_id", sessionID, "error", err)
			}
			return nil
		}

		s.logger.Debug("websocket message", "session_id", sessionID,
			"message", truncate(in.Message, maxMessageLogLen))

		resp, err := s.advisor.ProcessTurn(c.Request().Context(), advisor.TurnRequest{
			History:   s.historyFor(sessionID, in.Message),
			SessionID: sessionID,
		})
		if err != nil {
			out := wsOutbound{
				Type:      "error",
				Content:   "failed to generate response",
				SessionID: sessionID,
				Code:      CodeInternal,
			}
			if errors.Is(err, advisor.ErrUpstream) {
				out.Code = CodeUpstream
			}
			if err := conn.WriteJSON(out); err != nil {
				return nil
			}
			continue
		}

		out := wsOutbound{
			Type:       "message",
			Content:    resp.Response,
			SessionID:  resp.SessionID,
			ToolsUsed:  resp.ToolsUsed,
			Confidence: resp.Confidence,
		}
		if err := conn.WriteJSON(out); err != nil {
			s.logger.Warn("websocket write failed", "session_id", sessionID, "error", err)
			return nil
		}
	}
}

// historyFor flattens the stored conversation into alternating lines and
// appends the new message, matching the shape POST /chat clients send.
func (s *Server) historyFor(sessionID, message string) []string {
	history := []string{}
	if sess, ok := s.advisor.GetSession(sessionID); ok {
		for _, entry := range sess.History {
			history = append(history, entry.UserMessage, entry.AIResponse)
		}
	}
	return append(history, message)
}
