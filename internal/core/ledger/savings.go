package ledger

import (
	"XuBank/internal/core/domain"
	"XuBank/internal/core/validation"
	"fmt"
)

const savingsMonthlyRate = 0.006

// SavingsAccount earns a fixed 0.6% per month.
type SavingsAccount struct {
	account
}

var _ Account = (*SavingsAccount)(nil)

func NewSavingsAccount(owner *Client, deps AccountDeps) (*SavingsAccount, error) {
	s := &SavingsAccount{}
	if err := initAccount(&s.account, owner, domain.AccountSavings, deps); err != nil {
		return nil, err
	}
	s.yieldLocked = s.calculateYieldLocked
	return s, nil
}

func (s *SavingsAccount) calculateYieldLocked() (float64, error) {
	if !validation.IsValidAmount(s.balance) {
		return 0, s.inconsistent("SAVINGS_YIELD_FAILED", "balance for yield", s.balance)
	}

	yield := s.balance * savingsMonthlyRate
	if !validation.IsValidAmount(yield) {
		return 0, s.inconsistent("SAVINGS_YIELD_FAILED", "yield", yield)
	}
	if err := s.storeLocked(s.balance + yield); err != nil {
		return 0, err
	}

	s.audit.LogEvent("YIELD_CALCULATED", fmt.Sprintf("Savings yield - Account: %d Amount: %.2f", s.number, yield))
	return yield, nil
}
