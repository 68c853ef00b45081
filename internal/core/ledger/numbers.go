package ledger

import (
	"XuBank/internal/core/domain"
	"math/rand/v2"
	"sync"
)

const (
	minAccountNumber     = 100000
	maxAccountNumber     = 999999
	maxAllocationRetries = 1000
)

// AccountNumberAllocator hands out 6-digit account numbers that are never
// reused. One allocator is shared by every account a Bank creates.
type AccountNumberAllocator struct {
	mu   sync.Mutex
	used map[int]struct{}
	draw func() int
}

// NewAccountNumberAllocator draws uniformly from [100000, 999999].
func NewAccountNumberAllocator() *AccountNumberAllocator {
	return newAllocatorWithDraw(func() int {
		return minAccountNumber + rand.IntN(maxAccountNumber-minAccountNumber+1)
	})
}

func newAllocatorWithDraw(draw func() int) *AccountNumberAllocator {
	return &AccountNumberAllocator{used: make(map[int]struct{}), draw: draw}
}

// Next reserves a fresh number, retrying on collisions. It gives up with
// ErrAccountNumbersExhausted after 1000 attempts.
func (a *AccountNumberAllocator) Next() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for range maxAllocationRetries {
		n := a.draw()
		if _, taken := a.used[n]; taken {
			continue
		}
		a.used[n] = struct{}{}
		return n, nil
	}
	return 0, domain.ErrAccountNumbersExhausted
}

// Len is the number of numbers handed out so far.
func (a *AccountNumberAllocator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.used)
}
