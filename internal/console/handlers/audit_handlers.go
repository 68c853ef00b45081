package handlers

import (
	"XuBank/internal/console"
	"XuBank/internal/core/ledger"
	"XuBank/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

const recentAuditEvents = 20

func init() {
	console.RegisterMenu(NewRecentAuditHandler)
}

// recentAuditHandler is the plugin for option 13. It exists only when an
// audit store is configured.
type recentAuditHandler struct {
	log      zerolog.Logger
	auditLog ports.AuditRepository
}

func NewRecentAuditHandler(_ *ledger.Bank, auditLog ports.AuditRepository, baseLogger *zerolog.Logger) ports.MenuHandler {
	if auditLog == nil {
		return nil
	}
	return &recentAuditHandler{
		log:      baseLogger.With().Str("component", "recent_audit_handler").Logger(),
		auditLog: auditLog,
	}
}

func (h *recentAuditHandler) Option() string { return "13" }
func (h *recentAuditHandler) Title() string  { return "Recent audit events" }

func (h *recentAuditHandler) Handle(ctx context.Context, p ports.Prompter) error {
	events, err := h.auditLog.ListRecent(ctx, recentAuditEvents)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load audit events")
		return err
	}

	p.Say("")
	p.Say("=== RECENT AUDIT EVENTS ===")
	if len(events) == 0 {
		p.Say("No audit events recorded.")
		return nil
	}
	for _, ev := range events {
		p.Say("%s [%s] %s - %s", ev.OccurredAt.Format("2006-01-02 15:04:05"), ev.Severity, ev.Kind, ev.Message)
		if ev.Cause != "" {
			p.Say("    cause: %s", ev.Cause)
		}
	}
	return nil
}
