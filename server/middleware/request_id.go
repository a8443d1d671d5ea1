package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tuhang/eduplan/internal/observability"
)

const requestIDHeader = "X-Request-Id"

// RequestLogger assigns each request a UUID and logs method, path, status
// and latency when the handler returns.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(requestIDHeader, requestID)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("request",
				observability.KeyRequestID, requestID,
				observability.KeyMethod, c.Request().Method,
				observability.KeyPath, c.Request().URL.Path,
				observability.KeyStatus, c.Response().Status,
				observability.KeyLatency, time.Since(start).Milliseconds(),
			)
			return nil
		}
	}
}
