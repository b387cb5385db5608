package config_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/finai-labs/finai-go/internal/config"
	"github.com/finai-labs/finai-go/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 50, cfg.MaxHistory)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FINAI_PORT", "9090")
	t.Setenv("FINAI_LLM_PROVIDER", "ollama")
	t.Setenv("FINAI_LLM_MODEL", "llama3")
	t.Setenv("FINAI_MAX_HISTORY", "10")
	t.Setenv("FINAI_LOG_LEVEL", "debug")
	t.Setenv("FINAI_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := config.Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, llm.ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, 10, cfg.MaxHistory)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadBadMaxHistoryFallsBack(t *testing.T) {
	t.Setenv("FINAI_MAX_HISTORY", "lots")
	assert.Equal(t, 50, config.Load().MaxHistory)
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := config.SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("turn processed", "session_id", "s1")

	assert.Contains(t, stderr.String(), "turn processed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &entry))
	assert.Equal(t, "turn processed", entry["msg"])
	assert.Equal(t, "s1", entry["session_id"])
}
