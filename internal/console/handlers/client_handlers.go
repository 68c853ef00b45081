package handlers

import (
	"XuBank/internal/console"
	"XuBank/internal/core/ledger"
	"XuBank/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

func init() {
	console.RegisterMenu(NewRegisterClientHandler)
	console.RegisterMenu(NewChangePasswordHandler)
	console.RegisterMenu(NewSetIncomeHandler)
}

// registerClientHandler is the plugin for option 1.
type registerClientHandler struct {
	log  zerolog.Logger
	bank *ledger.Bank
}

func NewRegisterClientHandler(bank *ledger.Bank, _ ports.AuditRepository, baseLogger *zerolog.Logger) ports.MenuHandler {
	return &registerClientHandler{
		log:  baseLogger.With().Str("component", "register_client_handler").Logger(),
		bank: bank,
	}
}

func (h *registerClientHandler) Option() string { return "1" }
func (h *registerClientHandler) Title() string  { return "Register client" }

func (h *registerClientHandler) Handle(ctx context.Context, p ports.Prompter) error {
	name, err := p.Ask(ctx, "Name: ")
	if err != nil {
		return err
	}
	taxID, err := p.Ask(ctx, "Tax ID (digits only): ")
	if err != nil {
		return err
	}
	password, err := p.Ask(ctx, "Password (min 8 characters, upper case, lower case, digit and symbol): ")
	if err != nil {
		return err
	}
	income, err := askAmount(ctx, p, "Monthly income (R$): ")
	if err != nil {
		return userError(p, err)
	}

	ok, err := h.bank.RegisterClient(name, taxID, password, income)
	if err != nil {
		return userError(p, err)
	}
	if !ok {
		p.Say("A client with this tax ID is already registered.")
		return nil
	}

	h.log.Info().Int("clients", h.bank.NumClients()).Msg("Client registered through console")
	p.Say("Client registered successfully!")
	return nil
}

// changePasswordHandler is the plugin for option 8.
type changePasswordHandler struct {
	log  zerolog.Logger
	bank *ledger.Bank
}

func NewChangePasswordHandler(bank *ledger.Bank, _ ports.AuditRepository, baseLogger *zerolog.Logger) ports.MenuHandler {
	return &changePasswordHandler{
		log:  baseLogger.With().Str("component", "change_password_handler").Logger(),
		bank: bank,
	}
}

func (h *changePasswordHandler) Option() string { return "8" }
func (h *changePasswordHandler) Title() string  { return "Change password" }

func (h *changePasswordHandler) Handle(ctx context.Context, p ports.Prompter) error {
	client, err := authenticate(ctx, p, h.bank)
	if err != nil || client == nil {
		return err
	}

	newPassword, err := p.Ask(ctx, "New password: ")
	if err != nil {
		return err
	}
	current, err := p.Ask(ctx, "Confirm current password: ")
	if err != nil {
		return err
	}

	if err := client.ChangePassword(current, newPassword); err != nil {
		return userError(p, err)
	}
	p.Say("Password changed successfully!")
	return nil
}

// setIncomeHandler is the plugin for option 11.
type setIncomeHandler struct {
	log  zerolog.Logger
	bank *ledger.Bank
}

func NewSetIncomeHandler(bank *ledger.Bank, _ ports.AuditRepository, baseLogger *zerolog.Logger) ports.MenuHandler {
	return &setIncomeHandler{
		log:  baseLogger.With().Str("component", "set_income_handler").Logger(),
		bank: bank,
	}
}

func (h *setIncomeHandler) Option() string { return "11" }
func (h *setIncomeHandler) Title() string  { return "Update monthly income" }

func (h *setIncomeHandler) Handle(ctx context.Context, p ports.Prompter) error {
	client, err := authenticate(ctx, p, h.bank)
	if err != nil || client == nil {
		return err
	}

	income, err := askAmount(ctx, p, "New monthly income (R$): ")
	if err != nil {
		return userError(p, err)
	}
	if err := client.SetMonthlyIncome(income); err != nil {
		return userError(p, err)
	}

	h.log.Info().Str("client", client.MaskedTaxID()).Msg("Monthly income updated")
	p.Say("Monthly income updated. Overdraft limits were recalculated.")
	return nil
}
