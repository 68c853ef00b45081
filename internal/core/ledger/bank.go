package ledger

import (
	"XuBank/internal/core/domain"
	"XuBank/internal/core/ports"
	"XuBank/internal/core/validation"
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"
)

// Bank is the aggregate root: it owns every client in registration order.
// RegisterClient takes the write lock; lookups and reports share the read lock.
type Bank struct {
	mu      sync.RWMutex
	clients []*Client

	creds ports.CredentialService
	audit ports.AuditSink
	deps  AccountDeps
}

// NewBank creates an empty registry with its own account-number allocator,
// so independent banks never share state.
func NewBank(creds ports.CredentialService, audit ports.AuditSink, env Environment) *Bank {
	b := &Bank{
		creds: creds,
		audit: audit,
		deps: AccountDeps{
			Numbers: NewAccountNumberAllocator(),
			Audit:   audit,
			Env:     env.withDefaults(),
		},
	}
	audit.LogEvent("SYSTEM_STARTED", "XuBank ledger started")
	return b
}

// RegisterClient returns (false, nil) when the tax ID is already taken and
// (false, err) when the client data fails validation.
func (b *Bank) RegisterClient(name, taxID, password string, monthlyIncome float64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.findLocked(taxID) != nil {
		b.audit.LogEvent("DUPLICATE_REGISTRATION", "Registration attempted with existing tax id: "+validation.MaskTaxID(validation.NormalizeTaxID(taxID)))
		return false, nil
	}

	c, err := NewClient(name, taxID, password, monthlyIncome, b.creds, b.audit)
	if err != nil {
		b.audit.LogError("REGISTRATION_FAILED", "Client registration failed", err)
		return false, fmt.Errorf("register client: %w", err)
	}

	b.clients = append(b.clients, c)
	b.audit.LogEvent("CLIENT_REGISTERED", "Client registered: "+c.MaskedTaxID())
	return true, nil
}

// FindClientByTaxID accepts punctuated input and returns nil when absent.
func (b *Bank) FindClientByTaxID(taxID string) *Client {
	if strings.TrimSpace(taxID) == "" {
		return nil
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.findLocked(taxID)
}

// findLocked compares every stored tax ID in constant time so lookups do
// not leak how much of an ID matched.
func (b *Bank) findLocked(taxID string) *Client {
	wanted := []byte(validation.NormalizeTaxID(taxID))
	if len(wanted) == 0 {
		return nil
	}
	for _, c := range b.clients {
		if subtle.ConstantTimeCompare([]byte(c.TaxID()), wanted) == 1 {
			return c
		}
	}
	return nil
}

// Authenticate never fails loudly: a missing client and a wrong password
// both return false.
func (b *Bank) Authenticate(taxID, password string) bool {
	c := b.FindClientByTaxID(taxID)
	if c == nil {
		b.audit.LogEvent("LOGIN_FAILED", "Login attempted with unknown tax id")
		return false
	}
	if !c.VerifyPassword(password) {
		b.audit.LogEvent("LOGIN_FAILED", "Login attempted with wrong password: "+c.MaskedTaxID())
		return false
	}
	b.audit.LogEvent("LOGIN_SUCCEEDED", "Login completed: "+c.MaskedTaxID())
	return true
}

// NumClients is the number of registered clients.
func (b *Bank) NumClients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// NewAccount builds an account of the given type for c. It is not added
// to c; see OpenAccount.
func (b *Bank) NewAccount(c *Client, kind domain.AccountType) (Account, error) {
	switch kind {
	case domain.AccountChecking:
		return asAccount(NewCheckingAccount(c, b.deps))
	case domain.AccountSavings:
		return asAccount(NewSavingsAccount(c, b.deps))
	case domain.AccountFixedIncome:
		return asAccount(NewFixedIncomeAccount(c, b.deps))
	case domain.AccountInvestment:
		return asAccount(NewInvestmentAccount(c, b.deps))
	default:
		return nil, fmt.Errorf("account type %d: %w", kind, domain.ErrUnknownAccountType)
	}
}

// asAccount keeps a failed constructor from yielding a non-nil interface
// around a nil pointer.
func asAccount[T Account](acc T, err error) (Account, error) {
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// OpenAccount creates an account and adds it to c. The bool is false when
// c already holds an account of that type; the drawn number is not reused.
func (b *Bank) OpenAccount(c *Client, kind domain.AccountType) (Account, bool, error) {
	acc, err := b.NewAccount(c, kind)
	if err != nil {
		return nil, false, err
	}
	added, err := c.AddAccount(acc)
	if err != nil || !added {
		return nil, false, err
	}
	return acc, true, nil
}

// snapshotLocked copies the client list for a report.
func (b *Bank) snapshotLocked() []*Client {
	out := make([]*Client, len(b.clients))
	copy(out, b.clients)
	return out
}

// CustodyReport renders the total balance held per account type.
func (b *Bank) CustodyReport() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return NewCustodyReport(b.snapshotLocked(), b.audit).Custody()
}

// ExtremeClientsReport names the clients with the highest and lowest totals.
func (b *Bank) ExtremeClientsReport() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return NewCustodyReport(b.snapshotLocked(), b.audit).ExtremeClients()
}

// AverageBalanceReport renders the mean balance per account type.
func (b *Bank) AverageBalanceReport() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return NewCustodyReport(b.snapshotLocked(), b.audit).AverageBalance()
}
