package ports

import (
	"XuBank/internal/core/domain"
	"context"
)

// AuditSink is the append-only security log the core writes to.
// Implementations must never panic or report failures to the caller.
type AuditSink interface {
	// LogEvent records a security-relevant event (e.g. "LOGIN_FAILED").
	LogEvent(kind, message string)

	// LogError records a failure. cause may be nil.
	LogError(kind, message string, cause error)
}

// AuditRepository persists audit events outside the process.
type AuditRepository interface {
	// Append stores one event. Events are never updated or deleted.
	Append(ctx context.Context, event domain.AuditEvent) error

	// ListRecent returns the newest events first.
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}
