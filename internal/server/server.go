// Package server provides the HTTP and WebSocket transport for the advisor.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/finai-labs/finai-go/internal/advisor"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// slowRequestThreshold is the duration above which requests are logged at
// WARN level. Generation calls dominate, so the bar is generous.
const slowRequestThreshold = 2 * time.Second

// Server wraps echo with the advisor and lifecycle management.
type Server struct {
	echo    *echo.Echo
	advisor *advisor.Advisor
	logger  *slog.Logger
}

// New creates the HTTP server and registers all routes.
func New(adv *advisor.Advisor, corsOrigins []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins,
	}))

	s := &Server{
		echo:    e,
		advisor: adv,
		logger:  logger,
	}
	e.Use(s.requestLogger)

	e.POST("/chat", s.Chat)
	e.GET("/session/:id", s.GetSession)
	e.DELETE("/session/:id", s.DeleteSession)
	e.GET("/ws/:session_id", s.ChatSocket)
	e.GET("/health", s.Health)
	e.GET("/metrics", s.Metrics)

	return s
}

// Handler returns the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start begins serving on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestLogger logs every request with timing. Slow requests are logged at
// WARN level.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		duration := time.Since(start)

		attrs := []any{
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", duration.Milliseconds(),
		}

		switch {
		case err != nil:
			attrs = append(attrs, "error", err.Error())
			s.logger.Error("request failed", attrs...)
		case duration > slowRequestThreshold:
			s.logger.Warn("slow request", attrs...)
		default:
			s.logger.Debug("request completed", attrs...)
		}

		return err
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
