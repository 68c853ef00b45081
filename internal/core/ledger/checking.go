package ledger

import (
	"XuBank/internal/core/domain"
	"XuBank/internal/core/validation"
	"fmt"
	"math"
)

const (
	limitIncomeShare = 0.4
	minimumLimit     = 100.0
	overdraftFeeRate = 0.03
	overdraftFeeBase = 10.0
)

// CheckingAccount has no yield but may be overdrawn down to -Limit().
// Deposits into a negative balance pay an overdraft fee first.
type CheckingAccount struct {
	account
	limit float64 // guarded by account.mu
}

var _ Account = (*CheckingAccount)(nil)

// NewCheckingAccount derives the overdraft limit from the owner's income.
func NewCheckingAccount(owner *Client, deps AccountDeps) (*CheckingAccount, error) {
	if owner == nil {
		return nil, domain.ErrNilClient
	}
	limit, err := calculateLimit(owner.MonthlyIncome())
	if err != nil {
		deps.Audit.LogError("LIMIT_CALCULATION_FAILED", "Could not compute overdraft limit for client: "+owner.MaskedTaxID(), err)
		return nil, err
	}

	c := &CheckingAccount{limit: limit}
	if err := initAccount(&c.account, owner, domain.AccountChecking, deps); err != nil {
		return nil, err
	}
	c.validBalance = validation.IsFiniteSigned
	c.yieldLocked = func() (float64, error) { return 0, nil }
	return c, nil
}

// calculateLimit is max(income * 0.4, 100).
func calculateLimit(income float64) (float64, error) {
	if !validation.IsValidAmount(income) {
		return 0, fmt.Errorf("limit from income %v: %w", income, domain.ErrInvalidIncome)
	}
	return math.Max(income*limitIncomeShare, minimumLimit), nil
}

// Limit is the current overdraft limit.
func (c *CheckingAccount) Limit() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limit
}

// RecalculateLimit re-reads the owner's income. Must not be called while
// holding the owner's lock; Client.SetMonthlyIncome uses applyIncome.
func (c *CheckingAccount) RecalculateLimit() error {
	return c.applyIncome(c.owner.MonthlyIncome())
}

func (c *CheckingAccount) applyIncome(income float64) error {
	limit, err := calculateLimit(income)
	if err != nil {
		c.audit.LogError("LIMIT_UPDATE_FAILED", fmt.Sprintf("Could not update limit - Account: %d", c.number), err)
		return err
	}

	c.mu.Lock()
	c.limit = limit
	c.mu.Unlock()

	c.audit.LogEvent("LIMIT_UPDATED", fmt.Sprintf("Limit updated - Account: %d New limit: %.2f", c.number, limit))
	return nil
}

// Deposit charges |balance| * 3% + 10 out of the deposit when the
// balance is negative.
func (c *CheckingAccount) Deposit(amount float64) (bool, error) {
	if err := c.checkAmount("deposit", amount); err != nil {
		return false, err
	}
	if amount == 0 {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.balance + amount
	if c.balance < 0 {
		fee := math.Abs(c.balance)*overdraftFeeRate + overdraftFeeBase
		if !validation.IsValidAmount(fee) {
			return false, c.inconsistent("DEPOSIT_FAILED", "overdraft fee", fee)
		}
		next -= fee
		c.audit.LogEvent("FEE_APPLIED", fmt.Sprintf("Overdraft fee of %.2f applied - Account: %d", fee, c.number))
	}

	if err := c.storeLocked(next); err != nil {
		return false, err
	}
	c.audit.LogEvent("DEPOSIT_COMPLETED", fmt.Sprintf("Deposit completed in checking account - Account: %d Amount: %.2f", c.number, amount))
	return true, nil
}

// Withdraw allows the balance to go down to -limit.
func (c *CheckingAccount) Withdraw(amount float64) (bool, error) {
	if err := c.checkAmount("withdrawal", amount); err != nil {
		return false, err
	}
	if amount == 0 {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if amount > c.balance+c.limit {
		c.audit.LogEvent("WITHDRAWAL_DENIED", fmt.Sprintf("Withdrawal denied for insufficient limit - Account: %d", c.number))
		return false, nil
	}
	if err := c.storeLocked(c.balance - amount); err != nil {
		return false, err
	}
	c.audit.LogEvent("WITHDRAWAL_COMPLETED", fmt.Sprintf("Withdrawal completed in checking account - Account: %d Amount: %.2f", c.number, amount))
	return true, nil
}

// Statement appends the overdraft limit.
func (c *CheckingAccount) Statement() string {
	return c.account.Statement() + fmt.Sprintf(" - Overdraft limit: R$ %.2f", c.Limit())
}
