package console

import (
	"XuBank/internal/core/ports"
	"cmp"
	"context"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// ExitOption ends the menu loop.
const ExitOption = "0"

// MenuRouter holds every menu "plugin" and dispatches the user's choice.
type MenuRouter struct {
	log      zerolog.Logger
	audit    ports.AuditSink
	handlers map[string]ports.MenuHandler
}

func NewMenuRouter(audit ports.AuditSink, baseLogger *zerolog.Logger) *MenuRouter {
	return &MenuRouter{
		log:      baseLogger.With().Str("component", "menu_router").Logger(),
		audit:    audit,
		handlers: make(map[string]ports.MenuHandler),
	}
}

// RegisterMenuHandler adds a "plugin" to the router. A later handler for
// the same option replaces the earlier one.
func (r *MenuRouter) RegisterMenuHandler(handler ports.MenuHandler) {
	opt := handler.Option()
	r.handlers[opt] = handler
	r.log.Debug().Str("option", opt).Msg("Registered new menu handler")
}

// options returns the registered keys, numeric ones first in numeric order.
func (r *MenuRouter) options() []string {
	opts := make([]string, 0, len(r.handlers))
	for opt := range r.handlers {
		opts = append(opts, opt)
	}
	slices.SortFunc(opts, func(a, b string) int {
		na, errA := strconv.Atoi(a)
		nb, errB := strconv.Atoi(b)
		switch {
		case errA == nil && errB == nil:
			return cmp.Compare(na, nb)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		}
		return strings.Compare(a, b)
	})
	return opts
}

func (r *MenuRouter) showMenu(p ports.Prompter) {
	p.Say("")
	p.Say("=== XUBANK MENU ===")
	for _, opt := range r.options() {
		p.Say("%s - %s", opt, r.handlers[opt].Title())
	}
	p.Say("%s - Exit", ExitOption)
}

// Run shows the menu until the user exits, input ends or ctx is done.
// Handler failures are reported to the user and the loop continues.
func (r *MenuRouter) Run(ctx context.Context, p ports.Prompter) error {
	for {
		r.showMenu(p)

		choice, err := p.Ask(ctx, "Choose an option: ")
		if err != nil {
			return endOfSession(err)
		}
		choice = strings.TrimSpace(choice)
		if choice == ExitOption {
			return nil
		}

		if err := r.Dispatch(ctx, p, choice); err != nil {
			if done := endOfSession(err); done == nil || ctx.Err() != nil {
				return done
			}
			r.log.Error().Err(err).Str("option", choice).Msg("Menu handler failed")
			r.audit.LogError("MENU_PROCESSING_ERROR", "Error while processing option: "+choice, err)
			p.Say("Internal error. Try again.")
		}
	}
}

// Dispatch runs the handler registered for choice.
func (r *MenuRouter) Dispatch(ctx context.Context, p ports.Prompter, choice string) error {
	handler, ok := r.handlers[choice]
	if !ok {
		p.Say("Invalid option.")
		return nil
	}

	r.log.Info().Str("option", choice).Msg("Routing to menu handler")
	return handler.Handle(ctx, p)
}

// endOfSession maps exhausted input to a clean exit.
func endOfSession(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
