package ledger

import (
	"XuBank/internal/core/domain"
	"XuBank/internal/core/validation"
	"fmt"
	"math"
)

const (
	investmentMinRate  = -0.6 // percent per month
	investmentMaxRate  = 1.5  // percent per month
	investmentAdminFee = 0.01
	investmentTaxRate  = 0.225
)

// InvestmentAccount draws a random -0.6%..1.5% per month. Positive yields
// pay a 1% administration fee and are taxed at 22.5% on withdrawal. A draw
// below zero is rejected and leaves the balance untouched.
type InvestmentAccount struct {
	account
}

var (
	_ Account   = (*InvestmentAccount)(nil)
	_ TaxPolicy = (*InvestmentAccount)(nil)
)

func NewInvestmentAccount(owner *Client, deps AccountDeps) (*InvestmentAccount, error) {
	inv := &InvestmentAccount{}
	if err := initAccount(&inv.account, owner, domain.AccountInvestment, deps); err != nil {
		return nil, err
	}
	inv.yieldLocked = inv.calculateYieldLocked
	return inv, nil
}

func (inv *InvestmentAccount) calculateYieldLocked() (float64, error) {
	if !validation.IsValidAmount(inv.balance) {
		return 0, inv.inconsistent("INVESTMENT_YIELD_FAILED", "balance for yield", inv.balance)
	}

	rate := investmentMinRate + (investmentMaxRate-investmentMinRate)*inv.env.Random()
	yield := inv.balance * (rate / 100.0)
	// A loss month fails like any other invalid value; the balance is kept.
	if !validation.IsValidAmount(yield) {
		return 0, inv.inconsistent("INVESTMENT_YIELD_FAILED", "yield", yield)
	}

	next := inv.balance + yield
	if yield > 0 {
		fee := yield * investmentAdminFee
		if !validation.IsValidAmount(fee) {
			return 0, inv.inconsistent("INVESTMENT_YIELD_FAILED", "administration fee", fee)
		}
		next -= fee
	}

	if err := inv.storeLocked(math.Max(next, 0)); err != nil {
		return 0, err
	}

	inv.audit.LogEvent("INVESTMENT_YIELD", fmt.Sprintf("Yield calculated - Account: %d Yield: %.2f", inv.number, yield))
	return yield, nil
}

// ApplyTax charges 22.5% of yield. A zero yield is tax free.
func (inv *InvestmentAccount) ApplyTax(yield float64) (float64, error) {
	if !validation.IsValidAmount(yield) {
		return 0, inv.inconsistent("INVESTMENT_TAX_FAILED", "yield for tax", yield)
	}
	tax := 0.0
	if yield > 0 {
		tax = yield * investmentTaxRate
	}
	if !validation.IsValidAmount(tax) {
		return 0, inv.inconsistent("INVESTMENT_TAX_FAILED", "tax", tax)
	}
	return tax, nil
}

// Withdraw applies a month of yield and charges its tax on top of amount.
func (inv *InvestmentAccount) Withdraw(amount float64) (bool, error) {
	return withdrawTaxed(&inv.account, inv, "INVESTMENT_WITHDRAWAL", amount)
}

// HasPositiveBalance reports whether there is anything left to earn on.
func (inv *InvestmentAccount) HasPositiveBalance() bool {
	return inv.Balance() > 0
}
