package handlers

import (
	"XuBank/internal/core/domain"
	"XuBank/internal/core/ledger"
	"XuBank/internal/core/ports"
	"XuBank/internal/core/validation"
	"context"
	"errors"
	"strconv"
	"strings"
)

// maxAttempts bounds how often a numeric prompt is repeated.
const maxAttempts = 3

// errGaveUp means the user kept typing invalid numbers.
var errGaveUp = errors.New("too many invalid attempts")

// authenticate asks for tax ID and password. It returns nil, nil when the
// user could not be authenticated; the reason has already been shown.
func authenticate(ctx context.Context, p ports.Prompter, bank *ledger.Bank) (*ledger.Client, error) {
	taxID, err := p.Ask(ctx, "Tax ID: ")
	if err != nil {
		return nil, err
	}
	client := bank.FindClientByTaxID(taxID)
	if client == nil {
		p.Say("Client not found.")
		return nil, nil
	}

	password, err := p.Ask(ctx, "Password: ")
	if err != nil {
		return nil, err
	}
	if !bank.Authenticate(taxID, password) {
		p.Say("Invalid credentials.")
		return nil, nil
	}
	return client, nil
}

// askAccount asks for an account number owned by client. It returns nil,
// nil when there is no such account.
func askAccount(ctx context.Context, p ports.Prompter, client *ledger.Client) (ledger.Account, error) {
	raw, err := p.Ask(ctx, "Account number: ")
	if err != nil {
		return nil, err
	}
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		p.Say("Invalid account number.")
		return nil, nil
	}
	acc := client.FindAccountByNumber(number)
	if acc == nil {
		p.Say("Account not found.")
	}
	return acc, nil
}

// askAmount reads a monetary value, accepting a decimal comma.
func askAmount(ctx context.Context, p ports.Prompter, label string) (float64, error) {
	for range maxAttempts {
		raw, err := p.Ask(ctx, label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
		if err != nil {
			p.Say("Invalid value. Use numbers, e.g. 100.50")
			continue
		}
		if !validation.IsValidAmount(v) {
			p.Say("Invalid value.")
			continue
		}
		return v, nil
	}
	p.Say("Too many invalid attempts.")
	return 0, errGaveUp
}

// userError reports validation and authentication failures to the user
// and returns nil for them; anything else is returned to the router.
func userError(p ports.Prompter, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errGaveUp):
		return nil
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrAuthentication):
		p.Say("Error: %v", err)
		return nil
	}
	return err
}
