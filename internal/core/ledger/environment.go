// Package ledger implements the bank registry, its clients and their
// accounts. Ownership runs Bank -> Client -> Account and locks are always
// taken in that order.
package ledger

import (
	"XuBank/internal/core/ports"
	"math/rand/v2"
	"time"
)

// Environment supplies time and randomness to accounts so tests can pin them.
type Environment struct {
	// Now returns the current time. Only the calendar date is used.
	Now func() time.Time
	// Random returns a uniform value in [0, 1). Must be safe for concurrent use.
	Random func() float64
}

// DefaultEnvironment uses the wall clock and the runtime's ChaCha8 source.
func DefaultEnvironment() Environment {
	return Environment{Now: time.Now, Random: rand.Float64}
}

func (e Environment) withDefaults() Environment {
	d := DefaultEnvironment()
	if e.Now == nil {
		e.Now = d.Now
	}
	if e.Random == nil {
		e.Random = d.Random
	}
	return e
}

// AccountDeps are the collaborators every account is built with.
type AccountDeps struct {
	Numbers *AccountNumberAllocator
	Audit   ports.AuditSink
	Env     Environment
}
