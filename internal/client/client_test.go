package client_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/finai-labs/finai-go/internal/advisor"
	"github.com/finai-labs/finai-go/internal/client"
	"github.com/finai-labs/finai-go/internal/intent"
	"github.com/finai-labs/finai-go/internal/metrics"
	"github.com/finai-labs/finai-go/internal/server"
	"github.com/finai-labs/finai-go/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticGenerator struct{ response string }

func (g staticGenerator) Generate(_ context.Context, _ string) (string, error) {
	return g.response, nil
}

func startServer(t *testing.T) *client.Client {
	t.Helper()
	store := session.NewStore(50, nil)
	adv := advisor.New(store, intent.NewDetector(nil), staticGenerator{response: "advice"},
		advisor.DefaultPersona(), nil, metrics.NewCollector())
	ts := httptest.NewServer(server.New(adv, []string{"*"}, nil).Handler())
	t.Cleanup(ts.Close)
	return client.New(ts.URL)
}

func TestClientRoundTrip(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	res, err := c.Chat(ctx, []string{"emergency fund for 2000"}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "advice", res.Response)
	assert.Equal(t, 0.9, res.Confidence)
	require.NotEmpty(t, res.SessionID)

	sess, err := c.GetSession(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Len(t, sess.History, 1)

	deleted, err := c.DeleteSession(ctx, res.SessionID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = c.GetSession(ctx, res.SessionID)
	assert.ErrorIs(t, err, client.ErrNotFound)

	deleted, err = c.DeleteSession(ctx, res.SessionID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
