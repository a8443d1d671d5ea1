// Package observability wires structured logging for the service.
package observability

import (
	"log/slog"
	"os"
)

// Shared attribute keys so log lines stay greppable across packages.
const (
	KeyRequestID = "request_id"
	KeyMethod    = "method"
	KeyPath      = "path"
	KeyStatus    = "status"
	KeyLatency   = "latency_ms"
	KeyError     = "error"
)

// NewLogger builds the process logger. Dev and demo modes log human-readable
// text at debug level, prod logs JSON at info level.
func NewLogger(mode string) *slog.Logger {
	var handler slog.Handler
	if mode == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
