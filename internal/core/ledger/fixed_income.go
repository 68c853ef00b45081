package ledger

import (
	"XuBank/internal/core/domain"
	"XuBank/internal/core/validation"
	"fmt"
	"math"
)

const (
	fixedIncomeMinRate = 0.5  // percent per month
	fixedIncomeMaxRate = 0.85 // percent per month
	fixedIncomeFee     = 20.0
	fixedIncomeTaxRate = 0.15
)

// FixedIncomeAccount earns a random 0.5%-0.85% per month minus a flat fee
// of 20, and its yield is taxed at 15% on withdrawal.
type FixedIncomeAccount struct {
	account
}

var (
	_ Account   = (*FixedIncomeAccount)(nil)
	_ TaxPolicy = (*FixedIncomeAccount)(nil)
)

func NewFixedIncomeAccount(owner *Client, deps AccountDeps) (*FixedIncomeAccount, error) {
	f := &FixedIncomeAccount{}
	if err := initAccount(&f.account, owner, domain.AccountFixedIncome, deps); err != nil {
		return nil, err
	}
	f.yieldLocked = f.calculateYieldLocked
	return f, nil
}

func (f *FixedIncomeAccount) calculateYieldLocked() (float64, error) {
	if !validation.IsValidAmount(f.balance) {
		return 0, f.inconsistent("FIXED_INCOME_YIELD_FAILED", "balance for yield", f.balance)
	}

	rate := fixedIncomeMinRate + (fixedIncomeMaxRate-fixedIncomeMinRate)*f.env.Random()
	yield := f.balance * (rate / 100.0)
	if !validation.IsValidAmount(yield) {
		return 0, f.inconsistent("FIXED_INCOME_YIELD_FAILED", "yield", yield)
	}

	// The fee is charged every month; the balance never goes below zero.
	if err := f.storeLocked(math.Max(f.balance+yield-fixedIncomeFee, 0)); err != nil {
		return 0, err
	}

	f.audit.LogEvent("FIXED_INCOME_YIELD", fmt.Sprintf("Yield calculated - Account: %d Yield: %.2f Fee: %.2f", f.number, yield, fixedIncomeFee))
	return yield, nil
}

// ApplyTax is a flat 15% of yield regardless of its sign, so a negative
// yield produces a negative tax, which fails validation.
func (f *FixedIncomeAccount) ApplyTax(yield float64) (float64, error) {
	if !validation.IsFiniteSigned(yield) {
		return 0, f.inconsistent("FIXED_INCOME_TAX_FAILED", "yield for tax", yield)
	}
	tax := yield * fixedIncomeTaxRate
	if !validation.IsValidAmount(tax) {
		return 0, f.inconsistent("FIXED_INCOME_TAX_FAILED", "tax", tax)
	}
	return tax, nil
}

// Withdraw applies a month of yield and charges its tax on top of amount.
func (f *FixedIncomeAccount) Withdraw(amount float64) (bool, error) {
	return withdrawTaxed(&f.account, f, "FIXED_INCOME_WITHDRAWAL", amount)
}
