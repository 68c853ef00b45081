package audit

import (
	"XuBank/internal/core/ports"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const storeTimeout = 5 * time.Second

// StoreWriter persists audit events through an AuditRepository.
type StoreWriter struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewStoreWriter(repo ports.AuditRepository, baseLogger *zerolog.Logger) *StoreWriter {
	return &StoreWriter{
		repo: repo,
		log:  baseLogger.With().Str("component", "audit_store_writer").Logger(),
	}
}

// Handle is a ports.EventHandler.
func (s *StoreWriter) Handle(ctx context.Context, event ports.Event) error {
	ev, ok := eventFrom(event)
	if !ok {
		return fmt.Errorf("audit store writer: unexpected payload %T on %s", event.Data, event.Topic)
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.repo.Append(ctx, ev); err != nil {
		s.log.Error().Err(err).Str("kind", ev.Kind).Msg("Failed to persist audit event")
		return err
	}
	return nil
}
