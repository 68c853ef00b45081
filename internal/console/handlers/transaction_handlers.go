package handlers

import (
	"XuBank/internal/console"
	"XuBank/internal/core/ledger"
	"XuBank/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

func init() {
	console.RegisterMenu(NewDepositHandler)
	console.RegisterMenu(NewWithdrawHandler)
}

// transactionHandler drives options 3 and 4; they differ only in the
// operation applied and the wording.
type transactionHandler struct {
	log    zerolog.Logger
	bank   *ledger.Bank
	option string
	title  string
	prompt string
	apply  func(acc ledger.Account, amount float64) (bool, error)
	done   string
	denied string
}

func NewDepositHandler(bank *ledger.Bank, _ ports.AuditRepository, baseLogger *zerolog.Logger) ports.MenuHandler {
	return &transactionHandler{
		log:    baseLogger.With().Str("component", "deposit_handler").Logger(),
		bank:   bank,
		option: "3",
		title:  "Deposit",
		prompt: "Amount to deposit: ",
		apply:  ledger.Account.Deposit,
		done:   "Deposit completed successfully!",
		denied: "Deposit failed.",
	}
}

func NewWithdrawHandler(bank *ledger.Bank, _ ports.AuditRepository, baseLogger *zerolog.Logger) ports.MenuHandler {
	return &transactionHandler{
		log:    baseLogger.With().Str("component", "withdraw_handler").Logger(),
		bank:   bank,
		option: "4",
		title:  "Withdraw",
		prompt: "Amount to withdraw: ",
		apply:  ledger.Account.Withdraw,
		done:   "Withdrawal completed successfully!",
		denied: "Withdrawal not authorized.",
	}
}

func (h *transactionHandler) Option() string { return h.option }
func (h *transactionHandler) Title() string  { return h.title }

func (h *transactionHandler) Handle(ctx context.Context, p ports.Prompter) error {
	client, err := authenticate(ctx, p, h.bank)
	if err != nil || client == nil {
		return err
	}
	acc, err := askAccount(ctx, p, client)
	if err != nil || acc == nil {
		return err
	}
	amount, err := askAmount(ctx, p, h.prompt)
	if err != nil {
		return userError(p, err)
	}

	ok, err := h.apply(acc, amount)
	if err != nil {
		return userError(p, err)
	}
	if !ok {
		p.Say("%s", h.denied)
		return nil
	}

	h.log.Info().Int("account", acc.Number()).Msg("Transaction completed through console")
	p.Say("%s", h.done)
	return nil
}
