package ledger

import (
	"XuBank/internal/core/domain"
	"XuBank/internal/core/ports"
	"XuBank/internal/core/validation"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Client owns its accounts and credentials. mu guards everything that can
// change after construction; taxID and name are fixed.
type Client struct {
	taxID string
	name  string
	creds ports.CredentialService
	audit ports.AuditSink

	mu            sync.Mutex
	passwordHash  []byte
	passwordSalt  []byte
	monthlyIncome float64
	accounts      []Account
}

// NewClient validates every field, then stores the normalized tax ID,
// the sanitized name and a salted digest of password.
func NewClient(name, taxID, password string, monthlyIncome float64, creds ports.CredentialService, audit ports.AuditSink) (*Client, error) {
	if !validation.IsValidTaxID(taxID) {
		return nil, domain.ErrInvalidTaxID
	}
	if !validation.IsValidName(name) {
		return nil, domain.ErrInvalidName
	}
	if !validation.IsValidPassword(password) {
		return nil, domain.ErrInvalidPassword
	}
	if !validation.IsValidAmount(monthlyIncome) {
		return nil, fmt.Errorf("%v: %w", monthlyIncome, domain.ErrInvalidIncome)
	}

	c := &Client{
		taxID:         validation.Sanitize(validation.NormalizeTaxID(taxID)),
		name:          validation.Sanitize(name),
		creds:         creds,
		audit:         audit,
		monthlyIncome: monthlyIncome,
	}

	salt, digest, err := c.derive(password)
	if err != nil {
		return nil, err
	}
	c.passwordSalt, c.passwordHash = salt, digest

	audit.LogEvent("CLIENT_CREATED", "Client created: "+c.MaskedTaxID())
	return c, nil
}

func (c *Client) derive(password string) (salt, digest []byte, err error) {
	salt, err = c.creds.GenerateSalt()
	if err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}
	digest, err = c.creds.Hash(password, salt)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	return salt, digest, nil
}

// TaxID is the digits-only tax ID.
func (c *Client) TaxID() string { return c.taxID }

// MaskedTaxID is the only form of the tax ID that goes into logs.
func (c *Client) MaskedTaxID() string { return validation.MaskTaxID(c.taxID) }

func (c *Client) Name() string { return c.name }

func (c *Client) MonthlyIncome() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.monthlyIncome
}

// VerifyPassword fails closed. The digest is copied out so the slow
// comparison runs without holding the lock.
func (c *Client) VerifyPassword(password string) bool {
	c.mu.Lock()
	digest, salt := c.passwordHash, c.passwordSalt
	c.mu.Unlock()

	ok := c.creds.Verify(password, digest, salt)
	if !ok {
		c.audit.LogEvent("PASSWORD_MISMATCH", "Password verification failed for client: "+c.MaskedTaxID())
	}
	return ok
}

// ChangePassword re-salts and re-hashes after checking the current password
// and the policy for the new one.
func (c *Client) ChangePassword(oldPassword, newPassword string) error {
	if !c.VerifyPassword(oldPassword) {
		c.audit.LogEvent("PASSWORD_CHANGE_DENIED", "Password change attempted with wrong current password: "+c.MaskedTaxID())
		return domain.ErrWrongPassword
	}
	if !validation.IsValidPassword(newPassword) {
		return domain.ErrInvalidPassword
	}

	salt, digest, err := c.derive(newPassword)
	if err != nil {
		c.audit.LogError("PASSWORD_CHANGE_FAILED", "Could not derive new password digest: "+c.MaskedTaxID(), err)
		return err
	}

	c.mu.Lock()
	c.passwordSalt, c.passwordHash = salt, digest
	c.mu.Unlock()

	c.audit.LogEvent("PASSWORD_CHANGED", "Password changed for client: "+c.MaskedTaxID())
	return nil
}

// AddAccount appends acc unless the client already holds an account of
// the same type, in which case it returns false.
func (c *Client) AddAccount(acc Account) (bool, error) {
	if acc == nil {
		return false, domain.ErrNilAccount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.accounts {
		if existing.Type() == acc.Type() {
			c.audit.LogEvent("DUPLICATE_ACCOUNT", fmt.Sprintf("Duplicate account type rejected - Client: %s Type: %s", c.MaskedTaxID(), acc.TypeName()))
			return false, nil
		}
	}

	c.accounts = append(c.accounts, acc)
	c.audit.LogEvent("ACCOUNT_ADDED", fmt.Sprintf("Account added - Client: %s Type: %s", c.MaskedTaxID(), acc.TypeName()))
	return true, nil
}

// FindAccountByNumber returns nil when the client has no such account.
func (c *Client) FindAccountByNumber(number int) Account {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, acc := range c.accounts {
		if acc.Number() == number {
			return acc
		}
	}
	return nil
}

// Accounts returns a copy of the account list in insertion order.
func (c *Client) Accounts() []Account {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// ListAccounts renders one statement line per account.
func (c *Client) ListAccounts() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.accounts) == 0 {
		return "No accounts registered."
	}
	lines := make([]string, 0, len(c.accounts))
	for _, acc := range c.accounts {
		lines = append(lines, acc.Statement())
	}
	return strings.Join(lines, "\n")
}

// TotalBalance sums the balances of every owned account.
func (c *Client) TotalBalance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for _, acc := range c.accounts {
		total += acc.Balance()
	}
	return total
}

// SetMonthlyIncome updates the income and the limit of every checking
// account the client owns.
func (c *Client) SetMonthlyIncome(income float64) error {
	if !validation.IsValidAmount(income) {
		return fmt.Errorf("%v: %w", income, domain.ErrInvalidIncome)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.monthlyIncome = income

	var errs []error
	for _, acc := range c.accounts {
		if checking, ok := acc.(*CheckingAccount); ok {
			if err := checking.applyIncome(income); err != nil {
				errs = append(errs, err)
			}
		}
	}

	c.audit.LogEvent("INCOME_UPDATED", "Monthly income updated for client: "+c.MaskedTaxID())
	return errors.Join(errs...)
}
