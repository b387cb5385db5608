// Package advisor implements the request-enrichment pipeline: intent
// detection, deterministic calculation, prompt composition, and the
// per-turn orchestration around the upstream model call.
package advisor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finai-labs/finai-go/internal/calc"
	"github.com/finai-labs/finai-go/internal/intent"
	"github.com/finai-labs/finai-go/internal/metrics"
	"github.com/finai-labs/finai-go/internal/session"
	"github.com/google/uuid"
)

var (
	// ErrUpstream marks a failed upstream generation call. The turn is
	// aborted and no session state is written.
	ErrUpstream = errors.New("upstream generation failed")

	// ErrValidation marks malformed caller input, surfaced before any
	// session state is touched.
	ErrValidation = errors.New("invalid request")
)

// Placeholder confidence scores, not statistically derived.
const (
	confidenceWithTool = 0.9
	confidenceBase     = 0.8
)

// Generator produces a natural-language reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TurnRequest is one inbound chat turn.
type TurnRequest struct {
	History     []string
	SessionID   string
	Preferences map[string]any
}

// TurnResponse is the result of a processed turn.
type TurnResponse struct {
	Response   string
	SessionID  string
	ToolsUsed  []string
	Confidence float64
}

// Advisor sequences one turn: resolve session, detect intent, run the
// calculation, compose the prompt, call the model, record the entry.
type Advisor struct {
	store     *session.Store
	detector  *intent.Detector
	generator Generator
	persona   Persona
	logger    *slog.Logger
	metrics   *metrics.Collector
}

// New creates an advisor. logger and collector may be nil.
func New(store *session.Store, detector *intent.Detector, generator Generator, persona Persona, logger *slog.Logger, collector *metrics.Collector) *Advisor {
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Advisor{
		store:     store,
		detector:  detector,
		generator: generator,
		persona:   persona,
		logger:    logger,
		metrics:   collector,
	}
}

// ProcessTurn handles one chat turn. An empty history is accepted and treated
// as an empty latest message. Preferences that do not fit the session schema
// abort the turn with ErrValidation before any state is touched. Calculation
// failures degrade the turn to plain conversation; only a failed upstream
// call aborts it afterwards, in which case the session is left unchanged.
func (a *Advisor) ProcessTurn(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	start := time.Now()

	if err := session.ValidatePreferences(req.Preferences); err != nil {
		return TurnResponse{}, errors.Join(ErrValidation, err)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	sess := a.store.GetOrCreate(sessionID, req.Preferences)

	var latest string
	if len(req.History) > 0 {
		latest = req.History[len(req.History)-1]
	}

	toolsUsed := []string{}
	var result *calc.Result

	if tool, ok := a.detector.Detect(latest); ok {
		if numbers := a.detector.ExtractNumbers(latest); len(numbers) > 0 {
			calcStart := time.Now()
			res, err := calc.Run(calc.Request{Kind: tool.Kind, Operands: numbers})
			if err != nil {
				// Domain errors are absorbed; the turn continues without a
				// tool result and nothing reaches the prompt.
				a.metrics.RecordError(metrics.OpCalculation, time.Since(calcStart))
				a.logger.Debug("calculation skipped", "kind", tool.Kind, "error", err)
			} else {
				result = &res
				toolsUsed = append(toolsUsed, tool.Description)
				a.metrics.RecordTiming(metrics.OpCalculation, time.Since(calcStart))
				a.metrics.RecordTool(string(tool.Kind))
			}
		}
	}

	prompt := BuildPrompt(a.persona, &sess, result, req.History)

	genStart := time.Now()
	response, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		a.metrics.RecordError(metrics.OpLLMGenerate, time.Since(genStart))
		a.metrics.RecordError(metrics.OpTurn, time.Since(start))
		a.logger.Error("generation failed", "session_id", sessionID, "error", err)
		return TurnResponse{}, errors.Join(ErrUpstream, err)
	}
	a.metrics.RecordTiming(metrics.OpLLMGenerate, time.Since(genStart))

	a.store.Append(sessionID, session.Entry{
		Timestamp:   time.Now(),
		UserMessage: latest,
		AIResponse:  response,
		ToolsUsed:   toolsUsed,
	})

	confidence := confidenceBase
	if result != nil {
		confidence = confidenceWithTool
	}

	a.metrics.RecordTiming(metrics.OpTurn, time.Since(start))
	a.logger.Info("chat processed", "session_id", sessionID, "tools", toolsUsed)

	return TurnResponse{
		Response:   response,
		SessionID:  sessionID,
		ToolsUsed:  toolsUsed,
		Confidence: confidence,
	}, nil
}

// GetSession returns a snapshot of the session, or false if unknown.
func (a *Advisor) GetSession(id string) (session.Session, bool) {
	return a.store.Get(id)
}

// DeleteSession removes a session, reporting whether it existed.
func (a *Advisor) DeleteSession(id string) bool {
	return a.store.Delete(id)
}

// SessionCount returns the number of live sessions.
func (a *Advisor) SessionCount() int {
	return a.store.Count()
}

// Metrics returns the advisor's metrics collector.
func (a *Advisor) Metrics() *metrics.Collector {
	return a.metrics
}
