// Package config loads service configuration from environment variables.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/finai-labs/finai-go/internal/llm"
)

// Config holds all configuration values.
type Config struct {
	// HTTP server
	Host        string
	Port        string
	CORSOrigins []string

	// Upstream model
	LLM llm.Config

	// Sessions
	MaxHistory int

	// Persona override file (optional)
	PersonaFile string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Host:        getEnv("FINAI_HOST", "0.0.0.0"),
		Port:        getEnv("FINAI_PORT", "8000"),
		CORSOrigins: splitList(getEnv("FINAI_CORS_ORIGINS", "*")),

		LLM: llm.Config{
			Provider:        llm.Provider(getEnv("FINAI_LLM_PROVIDER", "gemini")),
			Model:           getEnv("FINAI_LLM_MODEL", "gemini-2.5-flash"),
			GoogleAPIKey:    os.Getenv("GOOGLE_API_KEY"),
			OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		},

		MaxHistory: getEnvInt("FINAI_MAX_HISTORY", 50),

		PersonaFile: os.Getenv("FINAI_PERSONA_FILE"),

		LogFile:  getEnv("FINAI_LOG_FILE", ""),
		LogLevel: parseLogLevel(getEnv("FINAI_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
