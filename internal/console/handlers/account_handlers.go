package handlers

import (
	"XuBank/internal/console"
	"XuBank/internal/core/domain"
	"XuBank/internal/core/ledger"
	"XuBank/internal/core/ports"
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

func init() {
	console.RegisterMenu(NewOpenAccountHandler)
	console.RegisterMenu(NewListAccountsHandler)
	console.RegisterMenu(NewLastMonthStatementHandler)
	console.RegisterMenu(NewYieldCatchUpHandler)
}

// openAccountHandler is the plugin for option 2.
type openAccountHandler struct {
	log  zerolog.Logger
	bank *ledger.Bank
}

func NewOpenAccountHandler(bank *ledger.Bank, _ ports.AuditRepository, baseLogger *zerolog.Logger) ports.MenuHandler {
	return &openAccountHandler{
		log:  baseLogger.With().Str("component", "open_account_handler").Logger(),
		bank: bank,
	}
}

func (h *openAccountHandler) Option() string { return "2" }
func (h *openAccountHandler) Title() string  { return "Add account to client" }

func (h *openAccountHandler) Handle(ctx context.Context, p ports.Prompter) error {
	client, err := authenticate(ctx, p, h.bank)
	if err != nil || client == nil {
		return err
	}

	p.Say("Account types:")
	for _, t := range domain.AccountTypes {
		p.Say("%d - %s", int(t), t.Label())
	}
	raw, err := p.Ask(ctx, "Choose the type: ")
	if err != nil {
		return err
	}
	kind, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !domain.AccountType(kind).Valid() {
		p.Say("Invalid account type.")
		return nil
	}

	acc, added, err := h.bank.OpenAccount(client, domain.AccountType(kind))
	if err != nil {
		return userError(p, err)
	}
	if !added {
		p.Say("Could not add the account: the client already has one of this type.")
		return nil
	}

	h.log.Info().Int("account", acc.Number()).Str("type", acc.TypeName()).Msg("Account opened through console")
	p.Say("Account #%d added successfully!", acc.Number())
	return nil
}

// listAccountsHandler is the plugin for option 5.
type listAccountsHandler struct {
	bank *ledger.Bank
}

func NewListAccountsHandler(bank *ledger.Bank, _ ports.AuditRepository, _ *zerolog.Logger) ports.MenuHandler {
	return &listAccountsHandler{bank: bank}
}

func (h *listAccountsHandler) Option() string { return "5" }
func (h *listAccountsHandler) Title() string  { return "List client accounts" }

func (h *listAccountsHandler) Handle(ctx context.Context, p ports.Prompter) error {
	client, err := authenticate(ctx, p, h.bank)
	if err != nil || client == nil {
		return err
	}

	p.Say("")
	p.Say("=== CLIENT ACCOUNTS ===")
	p.Say("%s", client.ListAccounts())
	return nil
}

// lastMonthStatementHandler is the plugin for option 9.
type lastMonthStatementHandler struct {
	bank *ledger.Bank
}

func NewLastMonthStatementHandler(bank *ledger.Bank, _ ports.AuditRepository, _ *zerolog.Logger) ports.MenuHandler {
	return &lastMonthStatementHandler{bank: bank}
}

func (h *lastMonthStatementHandler) Option() string { return "9" }
func (h *lastMonthStatementHandler) Title() string  { return "Last month statement" }

func (h *lastMonthStatementHandler) Handle(ctx context.Context, p ports.Prompter) error {
	client, err := authenticate(ctx, p, h.bank)
	if err != nil || client == nil {
		return err
	}
	acc, err := askAccount(ctx, p, client)
	if err != nil || acc == nil {
		return err
	}

	p.Say("")
	p.Say("%s", acc.LastMonthStatement())
	return nil
}

// yieldCatchUpHandler is the plugin for option 12. It brings every account
// of the client up to date and then lists them.
type yieldCatchUpHandler struct {
	log  zerolog.Logger
	bank *ledger.Bank
}

func NewYieldCatchUpHandler(bank *ledger.Bank, _ ports.AuditRepository, baseLogger *zerolog.Logger) ports.MenuHandler {
	return &yieldCatchUpHandler{
		log:  baseLogger.With().Str("component", "yield_catch_up_handler").Logger(),
		bank: bank,
	}
}

func (h *yieldCatchUpHandler) Option() string { return "12" }
func (h *yieldCatchUpHandler) Title() string  { return "Apply pending monthly yields" }

func (h *yieldCatchUpHandler) Handle(ctx context.Context, p ports.Prompter) error {
	client, err := authenticate(ctx, p, h.bank)
	if err != nil || client == nil {
		return err
	}

	for _, acc := range client.Accounts() {
		if err := acc.ApplyMonthlyYieldCatchUp(); err != nil {
			p.Say("Account #%d:", acc.Number())
			if err := userError(p, err); err != nil {
				return err
			}
		}
	}

	h.log.Info().Str("client", client.MaskedTaxID()).Msg("Yield catch-up applied")
	p.Say("%s", client.ListAccounts())
	return nil
}
