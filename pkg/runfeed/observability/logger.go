// Package observability provides structured logging, metrics, and
// distributed tracing for the notification layer.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Every logging helper tolerates a nil logger.
package observability

import "log/slog"

// ListenerLogger adds listener context to a logger.
// Returns a new logger with listener and listener_id fields.
func ListenerLogger(logger *slog.Logger, name, id string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("listener", name),
		slog.String("listener_id", id),
	)
}

// LogListenerError logs a listener construction failure. The listener
// is dropped; the run continues without it.
func LogListenerError(logger *slog.Logger, name string, err error) {
	if logger == nil {
		return
	}
	logger.Error("taking listener into use failed",
		slog.String("listener", name),
		slog.String("error", err.Error()),
	)
}

// LogListenerRegistered logs a successfully constructed listener.
func LogListenerRegistered(logger *slog.Logger, name, id string, version int) {
	if logger == nil {
		return
	}
	logger.Debug("listener registered",
		slog.String("listener", name),
		slog.String("listener_id", id),
		slog.Int("api_version", version),
	)
}

// LogInvokeFailure logs a failed listener method call: a short record
// at error level and the full detail (typically a stack trace) at info
// level. The event is still considered delivered; no retry follows.
func LogInvokeFailure(logger *slog.Logger, method, listener string, cause error, details string) {
	if logger == nil {
		return
	}
	logger.Error("calling listener method failed",
		slog.String("method", method),
		slog.String("listener", listener),
		slog.String("error", cause.Error()),
	)
	logger.Info("listener failure details",
		slog.String("method", method),
		slog.String("listener", listener),
		slog.String("details", details),
	)
}

// LogJournalError logs a failure-journal write error. Journal problems
// never interrupt event delivery.
func LogJournalError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Warn("recording listener failure failed",
		slog.String("error", err.Error()),
	)
}
