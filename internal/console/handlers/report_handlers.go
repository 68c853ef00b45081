package handlers

import (
	"XuBank/internal/console"
	"XuBank/internal/core/ledger"
	"XuBank/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

func init() {
	console.RegisterMenu(NewCustodyReportHandler)
	console.RegisterMenu(NewExtremeClientsHandler)
	console.RegisterMenu(NewAverageBalanceHandler)
}

// reportHandler prints one of the bank-wide reports. Reports need no login.
type reportHandler struct {
	option string
	title  string
	render func() string
}

func NewCustodyReportHandler(bank *ledger.Bank, _ ports.AuditRepository, _ *zerolog.Logger) ports.MenuHandler {
	return &reportHandler{option: "6", title: "Total custody report", render: bank.CustodyReport}
}

func NewExtremeClientsHandler(bank *ledger.Bank, _ ports.AuditRepository, _ *zerolog.Logger) ports.MenuHandler {
	return &reportHandler{option: "7", title: "Extreme clients", render: bank.ExtremeClientsReport}
}

func NewAverageBalanceHandler(bank *ledger.Bank, _ ports.AuditRepository, _ *zerolog.Logger) ports.MenuHandler {
	return &reportHandler{option: "10", title: "Average balance per account type", render: bank.AverageBalanceReport}
}

func (h *reportHandler) Option() string { return h.option }
func (h *reportHandler) Title() string  { return h.title }

func (h *reportHandler) Handle(_ context.Context, p ports.Prompter) error {
	p.Say("%s", h.render())
	return nil
}
