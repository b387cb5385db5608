// Package main provides the FinAI HTTP/WebSocket server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finai-labs/finai-go/internal/advisor"
	"github.com/finai-labs/finai-go/internal/config"
	"github.com/finai-labs/finai-go/internal/intent"
	"github.com/finai-labs/finai-go/internal/llm"
	"github.com/finai-labs/finai-go/internal/metrics"
	"github.com/finai-labs/finai-go/internal/server"
	"github.com/finai-labs/finai-go/internal/session"
)

func main() {
	cfg := config.Load()

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("failed to close log file", "error", err)
		}
	}()
	slog.SetDefault(logger)

	slog.Info("starting finai-server",
		"host", cfg.Host,
		"port", cfg.Port,
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
	)

	persona, err := advisor.LoadPersona(cfg.PersonaFile)
	if err != nil {
		slog.Error("failed to load persona", "error", err, "file", cfg.PersonaFile)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	model, err := llm.NewModel(ctx, cfg.LLM)
	cancel()
	if err != nil {
		slog.Error("failed to create model", "error", err)
		os.Exit(1)
	}

	store := session.NewStore(cfg.MaxHistory, logger)
	collector := metrics.NewCollector()
	adv := advisor.New(store, intent.NewDetector(nil), model, persona, logger, collector)
	srv := server.New(adv, cfg.CORSOrigins, logger)

	// Start server in goroutine
	go func() {
		if err := srv.Start(cfg.Host + ":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
