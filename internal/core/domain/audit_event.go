package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditSeverity is a custom type for our ENUM
type AuditSeverity string

const (
	SeveritySecurity AuditSeverity = "security"
	SeverityError    AuditSeverity = "error"
)

// AuditEvent is one append-only entry of the security log.
type AuditEvent struct {
	ID         uuid.UUID
	Kind       string // e.g. "DEPOSIT_COMPLETED"
	Message    string
	Severity   AuditSeverity
	Cause      string // Empty unless Severity is error and a cause was given
	OccurredAt time.Time
}

// NewAuditEvent stamps a new event with an ID and the current time.
func NewAuditEvent(kind, message string, severity AuditSeverity, cause error) AuditEvent {
	ev := AuditEvent{
		ID:         uuid.New(),
		Kind:       kind,
		Message:    message,
		Severity:   severity,
		OccurredAt: time.Now().UTC(),
	}
	if cause != nil {
		ev.Cause = cause.Error()
	}
	return ev
}
