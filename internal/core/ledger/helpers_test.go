package ledger

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recordingAudit keeps every event kind it receives.
type recordingAudit struct {
	mu     sync.Mutex
	events []string
	errors []string
}

func (r *recordingAudit) LogEvent(kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, kind)
}

func (r *recordingAudit) LogError(kind, message string, cause error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, kind)
}

func (r *recordingAudit) hasEvent(kind string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.events {
		if k == kind {
			return true
		}
	}
	return false
}

func (r *recordingAudit) hasError(kind string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.errors {
		if k == kind {
			return true
		}
	}
	return false
}

// plainCredentials is a fast stand-in for the argon2 service.
type plainCredentials struct {
	mu   sync.Mutex
	next byte
}

func (p *plainCredentials) GenerateSalt() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next++
	return []byte{p.next, p.next, p.next, p.next}, nil
}

func (p *plainCredentials) Hash(password string, salt []byte) ([]byte, error) {
	return append(append([]byte{}, salt...), password...), nil
}

func (p *plainCredentials) Verify(password string, digest, salt []byte) bool {
	if len(digest) == 0 || len(salt) == 0 {
		return false
	}
	want, _ := p.Hash(password, salt)
	return bytes.Equal(want, digest)
}

// fakeClock is a settable Environment.Now.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(y int, m time.Month, d int) *fakeClock {
	return &fakeClock{now: time.Date(y, m, d, 10, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(y int, m time.Month, d int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func fixedRandom(v float64) func() float64 {
	return func() float64 { return v }
}

const (
	validTaxID    = "12345678909"
	otherTaxID    = "52998224725"
	validPassword = "Senha@123"
)

// validTaxIDFrom builds a checksum-valid tax ID from a nine digit base.
func validTaxIDFrom(base int) string {
	digits := []byte(fmt.Sprintf("%09d", base))
	for _, start := range []int{10, 11} {
		sum := 0
		for i, d := range digits {
			sum += int(d-'0') * (start - i)
		}
		r := sum % 11
		check := 0
		if r >= 2 {
			check = 11 - r
		}
		digits = append(digits, byte('0'+check))
	}
	return string(digits)
}

type fixture struct {
	audit *recordingAudit
	creds *plainCredentials
	clock *fakeClock
	deps  AccountDeps
}

func newFixture(random float64) *fixture {
	f := &fixture{
		audit: &recordingAudit{},
		creds: &plainCredentials{},
		clock: newFakeClock(2024, time.January, 31),
	}
	f.deps = AccountDeps{
		Numbers: NewAccountNumberAllocator(),
		Audit:   f.audit,
		Env:     Environment{Now: f.clock.Now, Random: fixedRandom(random)},
	}
	return f
}

func (f *fixture) client(t *testing.T, income float64) *Client {
	t.Helper()
	c, err := NewClient("Ana Silva", validTaxID, validPassword, income, f.creds, f.audit)
	require.NoError(t, err)
	return c
}

func (f *fixture) bank() *Bank {
	return NewBank(f.creds, f.audit, f.deps.Env)
}
