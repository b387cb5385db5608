// Package client provides a small REST client for the FinAI server,
// used by the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/finai-labs/finai-go/internal/session"
)

// ErrNotFound is returned when the server reports a missing session.
var ErrNotFound = errors.New("session not found")

// Client talks to a running FinAI server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client. If baseURL is empty, uses FINAI_SERVER_URL or
// defaults to localhost. Timeout is configurable via FINAI_CLIENT_TIMEOUT
// and is generous because turns block on the upstream model.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("FINAI_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	timeout := 2 * time.Minute
	if t := os.Getenv("FINAI_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ChatResult is the server's reply to a chat turn.
type ChatResult struct {
	Response   string   `json:"response"`
	SessionID  string   `json:"session_id"`
	ToolsUsed  []string `json:"tools_used"`
	Confidence float64  `json:"confidence"`
}

type chatPayload struct {
	History         []string       `json:"history"`
	SessionID       string         `json:"session_id,omitempty"`
	UserPreferences map[string]any `json:"user_preferences,omitempty"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Chat sends one turn and returns the advisor's reply.
func (c *Client) Chat(ctx context.Context, history []string, sessionID string, preferences map[string]any) (*ChatResult, error) {
	body, err := json.Marshal(chatPayload{
		History:         history,
		SessionID:       sessionID,
		UserPreferences: preferences,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var result ChatResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	return &result, nil
}

// GetSession fetches a session snapshot. Returns ErrNotFound for unknown ids.
func (c *Client) GetSession(ctx context.Context, id string) (*session.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/session/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var sess session.Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// DeleteSession removes a session, reporting whether it existed.
func (c *Client) DeleteSession(ctx context.Context, id string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/session/"+id, nil)
	if err != nil {
		return false, fmt.Errorf("build delete request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, decodeError(resp)
	}

	var body struct {
		Deleted bool `json:"deleted"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decode delete response: %w", err)
	}
	return body.Deleted, nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload errorPayload
	if json.Unmarshal(data, &payload) == nil && payload.Code != "" {
		return fmt.Errorf("server error %s: %s", payload.Code, payload.Message)
	}
	return fmt.Errorf("server returned status %d", resp.StatusCode)
}
