package advisor_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/finai-labs/finai-go/internal/advisor"
	"github.com/finai-labs/finai-go/internal/intent"
	"github.com/finai-labs/finai-go/internal/metrics"
	"github.com/finai-labs/finai-go/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(path, data string) error {
	return os.WriteFile(path, []byte(data), 0644)
}

// fakeGenerator captures the prompt it was called with.
type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestAdvisor(gen *fakeGenerator) (*advisor.Advisor, *session.Store) {
	store := session.NewStore(50, nil)
	return advisor.New(store, intent.NewDetector(nil), gen, advisor.DefaultPersona(), nil, metrics.NewCollector()), store
}

func TestProcessTurnWithCalculation(t *testing.T) {
	gen := &fakeGenerator{response: "Here is what your money does."}
	adv, store := newTestAdvisor(gen)

	resp, err := adv.ProcessTurn(context.Background(), advisor.TurnRequest{
		History: []string{"Calculate compound interest for $10,000 at 5% for 10 years"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Here is what your money does.", resp.Response)
	assert.NotEmpty(t, resp.SessionID, "session id is generated when absent")
	assert.Equal(t, []string{"Calculate compound interest growth over time"}, resp.ToolsUsed)
	assert.Equal(t, 0.9, resp.Confidence)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "CALCULATION RESULT:")
	assert.Contains(t, gen.prompts[0], "final_amount")

	sess, ok := store.Get(resp.SessionID)
	require.True(t, ok)
	require.Len(t, sess.History, 1)
	assert.Equal(t, "Calculate compound interest for $10,000 at 5% for 10 years", sess.History[0].UserMessage)
	assert.Equal(t, resp.ToolsUsed, sess.History[0].ToolsUsed)
}

func TestProcessTurnPlainConversation(t *testing.T) {
	gen := &fakeGenerator{response: "Happy to chat."}
	adv, _ := newTestAdvisor(gen)

	resp, err := adv.ProcessTurn(context.Background(), advisor.TurnRequest{
		History: []string{"What should I read about budgeting?"},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.ToolsUsed)
	assert.Equal(t, 0.8, resp.Confidence)

	require.Len(t, gen.prompts, 1)
	assert.NotContains(t, gen.prompts[0], "CALCULATION RESULT:")
}

func TestProcessTurnInsufficientOperands(t *testing.T) {
	gen := &fakeGenerator{response: "Tell me more."}
	adv, _ := newTestAdvisor(gen)

	// Keyword matches but only one number is present; the calculation needs
	// three, so the turn degrades to plain conversation.
	resp, err := adv.ProcessTurn(context.Background(), advisor.TurnRequest{
		History: []string{"compound interest on 10000?"},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.ToolsUsed)
	assert.Equal(t, 0.8, resp.Confidence)
	assert.NotContains(t, gen.prompts[0], "CALCULATION RESULT:")
}

func TestProcessTurnCalculationErrorAbsorbed(t *testing.T) {
	gen := &fakeGenerator{response: "Let's try again."}
	adv, _ := newTestAdvisor(gen)

	// A zero-year loan term is invalid; the domain error is absorbed and
	// nothing reaches the prompt.
	resp, err := adv.ProcessTurn(context.Background(), advisor.TurnRequest{
		History: []string{"loan payment on 12000 at 5 for 0 years"},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.ToolsUsed)
	assert.Equal(t, 0.8, resp.Confidence)
	assert.NotContains(t, gen.prompts[0], "CALCULATION RESULT:")
}

func TestProcessTurnInvalidPreferences(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	adv, store := newTestAdvisor(gen)

	_, err := adv.ProcessTurn(context.Background(), advisor.TurnRequest{
		History:     []string{"hi"},
		SessionID:   "s1",
		Preferences: map[string]any{"shoe_size": 42},
	})
	require.ErrorIs(t, err, advisor.ErrValidation)

	// Validation happens before any session state is touched.
	_, ok := store.Get("s1")
	assert.False(t, ok)
	assert.Empty(t, gen.prompts)
}

func TestProcessTurnUpstreamFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	adv, store := newTestAdvisor(gen)

	_, err := adv.ProcessTurn(context.Background(), advisor.TurnRequest{
		History:   []string{"hello"},
		SessionID: "s1",
	})
	require.ErrorIs(t, err, advisor.ErrUpstream)

	// The failed turn must not be recorded.
	sess, ok := store.Get("s1")
	require.True(t, ok, "session is still created before generation")
	assert.Empty(t, sess.History)
}

func TestProcessTurnEmptyHistory(t *testing.T) {
	gen := &fakeGenerator{response: "Hello! How can I help?"}
	adv, _ := newTestAdvisor(gen)

	resp, err := adv.ProcessTurn(context.Background(), advisor.TurnRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0.8, resp.Confidence)
	assert.Empty(t, resp.ToolsUsed)
}

func TestProcessTurnReusesSession(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	adv, store := newTestAdvisor(gen)

	first, err := adv.ProcessTurn(context.Background(), advisor.TurnRequest{
		History:     []string{"hi"},
		Preferences: map[string]any{"risk_tolerance": "low"},
	})
	require.NoError(t, err)

	second, err := adv.ProcessTurn(context.Background(), advisor.TurnRequest{
		History:   []string{"hi", "ok", "what about retirement savings of 500 for 20 years at 6"},
		SessionID: first.SessionID,
	})
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)

	sess, ok := store.Get(first.SessionID)
	require.True(t, ok)
	assert.Len(t, sess.History, 2)
	assert.Equal(t, "low", sess.Preferences["risk_tolerance"])

	// Second turn's prompt carried the session context from the first.
	require.Len(t, gen.prompts, 2)
	assert.Contains(t, gen.prompts[1], "- Previous interactions: 1")
}

func TestGetAndDeleteSession(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	adv, _ := newTestAdvisor(gen)

	resp, err := adv.ProcessTurn(context.Background(), advisor.TurnRequest{History: []string{"hi"}})
	require.NoError(t, err)

	sess, ok := adv.GetSession(resp.SessionID)
	require.True(t, ok)
	assert.Equal(t, resp.SessionID, sess.ID)

	assert.True(t, adv.DeleteSession(resp.SessionID))
	_, ok = adv.GetSession(resp.SessionID)
	assert.False(t, ok)
	assert.False(t, adv.DeleteSession(resp.SessionID))
}

func TestProcessTurnRecordsMetrics(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	adv, _ := newTestAdvisor(gen)

	_, err := adv.ProcessTurn(context.Background(), advisor.TurnRequest{
		History: []string{"loan payment on 200,000 at 5 for 30 years"},
	})
	require.NoError(t, err)

	snap := adv.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.Operations["turn"].Count)
	assert.Equal(t, int64(1), snap.Operations["llm_generate"].Count)
	assert.Equal(t, int64(1), snap.ToolUsage["loan_payment"])
}
