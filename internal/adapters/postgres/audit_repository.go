package postgres

import (
	"XuBank/internal/core/domain"
	"XuBank/internal/core/ports"
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type auditRepository struct {
	db     *DB
	secSvc ports.SecurityPort
	log    zerolog.Logger
}

var _ ports.AuditRepository = (*auditRepository)(nil)

// NewAuditRepository stores audit events with message and cause sealed by
// secSvc. Kind, severity and time stay in clear text so they can be queried.
func NewAuditRepository(db *DB, secSvc ports.SecurityPort, baseLogger *zerolog.Logger) ports.AuditRepository {
	return &auditRepository{
		db:     db,
		secSvc: secSvc,
		log:    baseLogger.With().Str("component", "audit_repo").Logger(),
	}
}

// fieldAD binds a sealed field to its row and column, so a value copied
// into another event or swapped with the cause does not open.
func fieldAD(ev domain.AuditEvent, field string) []byte {
	return append(ev.ID[:], field...)
}

func (r *auditRepository) seal(ev domain.AuditEvent, field, plain string) (string, error) {
	return r.secSvc.Seal([]byte(plain), fieldAD(ev, field))
}

func (r *auditRepository) open(ev domain.AuditEvent, field, sealed string) (string, error) {
	plain, err := r.secSvc.Open(sealed, fieldAD(ev, field))
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// Append inserts one event.
func (r *auditRepository) Append(ctx context.Context, ev domain.AuditEvent) error {
	msg, err := r.seal(ev, "message", ev.Message)
	if err != nil {
		r.log.Error().Err(err).Str("kind", ev.Kind).Msg("Failed to encrypt audit message")
		return err
	}

	var cause *string
	if ev.Cause != "" {
		sealed, err := r.seal(ev, "cause", ev.Cause)
		if err != nil {
			r.log.Error().Err(err).Str("kind", ev.Kind).Msg("Failed to encrypt audit cause")
			return err
		}
		cause = &sealed
	}

	query := `
		INSERT INTO audit_events (id, kind, severity, message, cause, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.pool.Exec(ctx, query, ev.ID, ev.Kind, string(ev.Severity), msg, cause, ev.OccurredAt)
	if err != nil {
		r.log.Error().Err(err).Str("event_id", ev.ID.String()).Msg("Failed to insert audit event")
	}
	return err
}

// ListRecent returns at most limit events, newest first.
func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `
		SELECT id, kind, severity, message, cause, occurred_at
		FROM audit_events
		ORDER BY occurred_at DESC
		LIMIT $1
	`
	rows, err := r.db.pool.Query(ctx, query, limit)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to query audit events")
		return nil, err
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AuditEvent, error) {
		var (
			ev       domain.AuditEvent
			severity string
			msg      string
			cause    *string
		)
		if err := row.Scan(&ev.ID, &ev.Kind, &severity, &msg, &cause, &ev.OccurredAt); err != nil {
			return ev, err
		}
		ev.Severity = domain.AuditSeverity(severity)

		if ev.Message, err = r.open(ev, "message", msg); err != nil {
			r.log.Error().Err(err).Str("event_id", ev.ID.String()).Msg("Failed to decrypt audit message (tampered?)")
			return ev, err
		}
		if cause != nil {
			if ev.Cause, err = r.open(ev, "cause", *cause); err != nil {
				r.log.Error().Err(err).Str("event_id", ev.ID.String()).Msg("Failed to decrypt audit cause (tampered?)")
				return ev, err
			}
		}
		return ev, nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
