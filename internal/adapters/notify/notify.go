// Package notify provides outcome observers for the orchestrators' Notifier
// port. The UI layer injects one; nothing in the core ever holds a global
// toast function.
package notify

import "log/slog"

// Slog logs every mutation outcome as a structured event.
type Slog struct{}

// Success records a settled mutation.
func (Slog) Success(operation, entityID, message string) {
	slog.Info("notify_event", "outcome", "success", "operation", operation, "entity_id", entityID, "message", message)
}

// Failure records a failed mutation.
func (Slog) Failure(operation, entityID string, err error) {
	slog.Warn("notify_event", "outcome", "failure", "operation", operation, "entity_id", entityID, "error", err)
}
