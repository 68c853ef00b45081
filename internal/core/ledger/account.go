package ledger

import (
	"XuBank/internal/core/domain"
	"XuBank/internal/core/ports"
	"XuBank/internal/core/validation"
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxCatchUpMonths caps how far back a yield catch-up may reach (10 years).
const maxCatchUpMonths = 120

// Account is the capability set shared by every account variant.
type Account interface {
	Number() int
	Type() domain.AccountType
	TypeName() string
	Owner() *Client
	Balance() float64
	LastYieldDate() time.Time

	// Deposit returns false for a zero amount and an error for an invalid one.
	Deposit(amount float64) (bool, error)
	// Withdraw returns false for a zero amount or insufficient funds and an
	// error for an invalid amount or an invalid computed value.
	Withdraw(amount float64) (bool, error)
	// CalculateYield applies one month of yield and returns it.
	CalculateYield() (float64, error)
	// ApplyMonthlyYieldCatchUp applies one CalculateYield per whole month
	// elapsed since LastYieldDate.
	ApplyMonthlyYieldCatchUp() error

	Statement() string
	LastMonthStatement() string
}

// TaxPolicy is implemented by variants whose yield is taxed on withdrawal.
type TaxPolicy interface {
	ApplyTax(yield float64) (float64, error)
}

// account holds the state and behavior shared by all variants. mu guards
// balance and lastYieldDate; number, kind and owner never change.
type account struct {
	number int
	kind   domain.AccountType
	owner  *Client
	audit  ports.AuditSink
	env    Environment

	// yieldLocked is the variant's yield rule. Called with mu held.
	yieldLocked func() (float64, error)
	// validBalance decides which balances may be stored.
	validBalance func(float64) bool

	mu            sync.Mutex
	balance       float64
	lastYieldDate time.Time
}

// initAccount fills in a freshly allocated variant. The number is drawn last
// so a rejected owner never consumes one.
func initAccount(a *account, owner *Client, kind domain.AccountType, deps AccountDeps) error {
	if owner == nil {
		return domain.ErrNilClient
	}

	number, err := deps.Numbers.Next()
	if err != nil {
		deps.Audit.LogError("ACCOUNT_NUMBER_EXHAUSTED", "Could not allocate account number for client: "+owner.MaskedTaxID(), err)
		return fmt.Errorf("open %s: %w", kind.Name(), err)
	}

	a.number = number
	a.kind = kind
	a.owner = owner
	a.audit = deps.Audit
	a.env = deps.Env.withDefaults()
	a.validBalance = validation.IsValidAmount
	a.lastYieldDate = dateOf(a.env.Now())

	a.audit.LogEvent("ACCOUNT_CREATED", fmt.Sprintf("Account %d (%s) created for client: %s", number, kind.Name(), owner.MaskedTaxID()))
	return nil
}

func (a *account) Number() int              { return a.number }
func (a *account) Type() domain.AccountType { return a.kind }
func (a *account) TypeName() string         { return a.kind.Name() }
func (a *account) Owner() *Client           { return a.owner }

func (a *account) Balance() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func (a *account) LastYieldDate() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastYieldDate
}

// checkAmount rejects NaN, infinities, negatives and overflow-prone values.
func (a *account) checkAmount(op string, amount float64) error {
	if validation.IsValidAmount(amount) {
		return nil
	}
	a.audit.LogEvent(strings.ToUpper(op)+"_INVALID", fmt.Sprintf("Attempted %s with invalid amount %v - Account: %d", op, amount, a.number))
	return fmt.Errorf("%s of %v on account %d: %w", op, amount, a.number, domain.ErrInvalidAmount)
}

// inconsistent logs and builds an ErrInconsistent failure.
func (a *account) inconsistent(kind, what string, value float64) error {
	err := fmt.Errorf("%w: %s %v on account %d", domain.ErrInconsistent, what, value, a.number)
	a.audit.LogError(kind, fmt.Sprintf("Invalid %s - Account: %d", what, a.number), err)
	return err
}

// storeLocked commits a new balance if the variant accepts it.
func (a *account) storeLocked(balance float64) error {
	if !a.validBalance(balance) {
		return a.inconsistent("INVALID_BALANCE", "balance", balance)
	}
	a.balance = balance
	return nil
}

// Deposit credits amount to the balance.
func (a *account) Deposit(amount float64) (bool, error) {
	if err := a.checkAmount("deposit", amount); err != nil {
		return false, err
	}
	if amount == 0 {
		return false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.storeLocked(a.balance + amount); err != nil {
		return false, err
	}
	a.audit.LogEvent("DEPOSIT_COMPLETED", fmt.Sprintf("Deposit completed - Account: %d Amount: %.2f", a.number, amount))
	return true, nil
}

// Withdraw debits amount when it is covered by the balance.
func (a *account) Withdraw(amount float64) (bool, error) {
	if err := a.checkAmount("withdrawal", amount); err != nil {
		return false, err
	}
	if amount == 0 {
		return false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if amount > a.balance {
		a.audit.LogEvent("WITHDRAWAL_DENIED", fmt.Sprintf("Withdrawal denied for insufficient funds - Account: %d", a.number))
		return false, nil
	}
	if err := a.storeLocked(a.balance - amount); err != nil {
		return false, err
	}
	a.audit.LogEvent("WITHDRAWAL_COMPLETED", fmt.Sprintf("Withdrawal completed - Account: %d Amount: %.2f", a.number, amount))
	return true, nil
}

// CalculateYield runs the variant's yield rule once.
func (a *account) CalculateYield() (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.yieldLocked()
}

// ApplyMonthlyYieldCatchUp applies the yield once per whole calendar month
// since the last update and then moves the update date to today. A failure
// mid-way keeps the months already applied but leaves the date untouched.
func (a *account) ApplyMonthlyYieldCatchUp() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	today := dateOf(a.env.Now())
	months := monthsBetween(a.lastYieldDate, today)
	if months > maxCatchUpMonths {
		err := fmt.Errorf("account %d: %d months elapsed: %w", a.number, months, domain.ErrYieldPeriodTooLong)
		a.audit.LogError("YIELD_UPDATE_FAILED", fmt.Sprintf("Yield catch-up rejected - Account: %d", a.number), err)
		return err
	}

	for i := 0; i < months; i++ {
		if _, err := a.yieldLocked(); err != nil {
			a.audit.LogError("YIELD_UPDATE_FAILED", fmt.Sprintf("Yield catch-up failed - Account: %d", a.number), err)
			return fmt.Errorf("yield catch-up month %d of %d: %w", i+1, months, err)
		}
	}

	if months > 0 {
		a.lastYieldDate = today
		a.audit.LogEvent("YIELD_UPDATED", fmt.Sprintf("Yield updated for %d month(s) - Account: %d", months, a.number))
	}
	return nil
}

// Statement is a one-line summary of the account.
func (a *account) Statement() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fmt.Sprintf("Account #%d - Balance: R$ %.2f - Last update: %s",
		a.number, a.balance, a.lastYieldDate.Format(time.DateOnly))
}

// LastMonthStatement reports the balance and whether the last yield update
// happened within the last month.
func (a *account) LastMonthStatement() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	oneMonthAgo := addMonths(dateOf(a.env.Now()), -1)
	recency := "more than a month ago"
	if !a.lastYieldDate.Before(oneMonthAgo) {
		recency = "within the last month"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Last Month Statement - Account #%d ---\n", a.number)
	fmt.Fprintf(&b, "Current balance: R$ %.2f\n", a.balance)
	fmt.Fprintf(&b, "Last yield update: %s (%s)\n", a.lastYieldDate.Format(time.DateOnly), recency)
	b.WriteString("------------------------------------------")
	return b.String()
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// monthsBetween counts whole calendar months from start to end. A month is
// only complete once end's day of month reaches start's.
func monthsBetween(start, end time.Time) int {
	total := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	days := end.Day() - start.Day()
	switch {
	case total > 0 && days < 0:
		total--
	case total < 0 && days > 0:
		total++
	}
	return total
}

// addMonths shifts t by n months, clamping to the last day of the target
// month instead of overflowing into the next one.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
