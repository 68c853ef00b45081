package ledger

import (
	"fmt"
	"strings"
)

// withdrawTaxed is the withdrawal rule of the taxed variants: a month of
// yield is applied first, then amount plus the tax on that yield must be
// covered by the balance. The applied yield stays even when the
// withdrawal is denied.
func withdrawTaxed(a *account, policy TaxPolicy, event string, amount float64) (bool, error) {
	if err := a.checkAmount("withdrawal", amount); err != nil {
		return false, err
	}
	if amount == 0 {
		return false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	yield, err := a.yieldLocked()
	if err != nil {
		a.audit.LogError(event+"_FAILED", fmt.Sprintf("Withdrawal failed - Account: %d", a.number), err)
		return false, fmt.Errorf("withdrawal on account %d: %w", a.number, err)
	}
	tax, err := policy.ApplyTax(yield)
	if err != nil {
		a.audit.LogError(event+"_FAILED", fmt.Sprintf("Withdrawal failed - Account: %d", a.number), err)
		return false, fmt.Errorf("withdrawal on account %d: %w", a.number, err)
	}

	total := amount + tax
	if total > a.balance {
		a.audit.LogEvent("WITHDRAWAL_DENIED", fmt.Sprintf("Withdrawal denied for insufficient funds - Account: %d", a.number))
		return false, nil
	}
	if err := a.storeLocked(a.balance - total); err != nil {
		return false, err
	}

	a.audit.LogEvent(event, fmt.Sprintf("Withdrawal completed in %s - Account: %d Amount: %.2f Tax: %.2f",
		strings.ToLower(a.kind.Label()), a.number, amount, tax))
	return true, nil
}
