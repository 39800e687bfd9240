package middleware

import (
	"log/slog"

	"inventory/config"

	"github.com/labstack/echo/v4"
	slogecho "github.com/samber/slog-echo"
)

// LoggerMiddleware writes one access log line per request when debug is on.
type LoggerMiddleware struct {
	access echo.MiddlewareFunc
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config) *LoggerMiddleware {
	m := &LoggerMiddleware{}
	if cfg.Env.Debug {
		m.access = slogecho.NewWithConfig(logger, slogecho.Config{
			DefaultLevel:     slog.LevelInfo,
			ClientErrorLevel: slog.LevelWarn,
			ServerErrorLevel: slog.LevelError,
			WithUserAgent:    true,
			// Picks up the X-Request-Id set by RequestIDMiddleware.
			WithRequestID: true,
		})
	}

	return m
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	if m.access == nil {
		return next
	}

	return m.access(next)
}
