package console

import (
	"XuBank/internal/core/ledger"
	"XuBank/internal/core/ports"

	"github.com/rs/zerolog"
)

// MenuHandlerConstructor lets handlers receive their dependencies from main.go.
// auditLog is nil when no audit store is configured; a constructor may
// return nil to leave its option out of the menu.
type MenuHandlerConstructor func(
	bank *ledger.Bank,
	auditLog ports.AuditRepository,
	baseLogger *zerolog.Logger,
) ports.MenuHandler

var menuRegistry []MenuHandlerConstructor

// RegisterMenu is called by handlers in their init() function
func RegisterMenu(constructor MenuHandlerConstructor) {
	menuRegistry = append(menuRegistry, constructor)
}

// RegisterAllHandlers builds every registered handler and passes it to the router.
func RegisterAllHandlers(
	router *MenuRouter,
	bank *ledger.Bank,
	auditLog ports.AuditRepository,
	baseLogger *zerolog.Logger,
) {
	log := baseLogger.With().Str("component", "menu_registry").Logger()

	registered := 0
	for _, constructor := range menuRegistry {
		handler := constructor(bank, auditLog, baseLogger)
		if handler == nil {
			continue
		}
		router.RegisterMenuHandler(handler)
		registered++
	}
	log.Info().Int("handlers", registered).Msg("Registered menu handlers")
}
