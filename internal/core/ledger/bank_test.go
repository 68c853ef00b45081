package ledger

import (
	"XuBank/internal/core/domain"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBank_EndToEnd(t *testing.T) {
	f := newFixture(0)
	bank := f.bank()
	assert.True(t, f.audit.hasEvent("SYSTEM_STARTED"))

	ok, err := bank.RegisterClient("Ana Silva", validTaxID, validPassword, 5000)
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, bank.Authenticate(validTaxID, validPassword))
	assert.False(t, bank.Authenticate(validTaxID, "Senha@124"))
	assert.False(t, bank.Authenticate(otherTaxID, validPassword))
	assert.True(t, f.audit.hasEvent("LOGIN_FAILED"))
	assert.True(t, f.audit.hasEvent("LOGIN_SUCCEEDED"))

	c := bank.FindClientByTaxID(validTaxID)
	require.NotNil(t, c)

	acc, added, err := bank.OpenAccount(c, domain.AccountChecking)
	require.NoError(t, err)
	require.True(t, added)
	checking, ok := acc.(*CheckingAccount)
	require.True(t, ok)
	assert.Equal(t, 2000.0, checking.Limit())
}

func TestBank_DuplicateRegistration(t *testing.T) {
	f := newFixture(0)
	bank := f.bank()

	ok, err := bank.RegisterClient("Ana Silva", validTaxID, validPassword, 5000)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = bank.RegisterClient("Outra Pessoa", "123.456.789-09", "Outra@123", 1000)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, bank.NumClients())
	assert.True(t, f.audit.hasEvent("DUPLICATE_REGISTRATION"))
}

func TestBank_RegisterInvalidClient(t *testing.T) {
	f := newFixture(0)
	bank := f.bank()

	ok, err := bank.RegisterClient("Ana Silva", "00000000000", validPassword, 5000)
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrInvalidTaxID)
	assert.Zero(t, bank.NumClients())
	assert.True(t, f.audit.hasError("REGISTRATION_FAILED"))
}

func TestBank_FindClientByTaxID(t *testing.T) {
	f := newFixture(0)
	bank := f.bank()
	_, err := bank.RegisterClient("Ana Silva", validTaxID, validPassword, 5000)
	require.NoError(t, err)

	first := bank.FindClientByTaxID("123.456.789-09")
	require.NotNil(t, first)
	assert.Same(t, first, bank.FindClientByTaxID(validTaxID))

	assert.Nil(t, bank.FindClientByTaxID(""))
	assert.Nil(t, bank.FindClientByTaxID("   "))
	assert.Nil(t, bank.FindClientByTaxID(otherTaxID))
}

func TestBank_OpenAccount(t *testing.T) {
	f := newFixture(0)
	bank := f.bank()
	_, err := bank.RegisterClient("Ana Silva", validTaxID, validPassword, 5000)
	require.NoError(t, err)
	c := bank.FindClientByTaxID(validTaxID)

	for _, kind := range domain.AccountTypes {
		acc, added, err := bank.OpenAccount(c, kind)
		require.NoError(t, err)
		require.True(t, added)
		assert.Equal(t, kind, acc.Type())
		assert.Same(t, c, acc.Owner())
	}

	acc, added, err := bank.OpenAccount(c, domain.AccountSavings)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Nil(t, acc)
	assert.Len(t, c.Accounts(), 4)

	acc, err = bank.NewAccount(c, domain.AccountType(9))
	assert.ErrorIs(t, err, domain.ErrUnknownAccountType)
	assert.Nil(t, acc)

	acc, err = bank.NewAccount(nil, domain.AccountChecking)
	assert.ErrorIs(t, err, domain.ErrNilClient)
	assert.Nil(t, acc)
}

func TestBank_ConcurrentRegistration(t *testing.T) {
	const n = 50

	f := newFixture(0)
	bank := f.bank()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[int]struct{})
		dupes   int
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			taxID := validTaxIDFrom(100000000 + i*7919)
			ok, err := bank.RegisterClient(fmt.Sprintf("Cliente %c", 'A'+i%26), taxID, validPassword, 3000)
			if !assert.NoError(t, err) || !assert.True(t, ok) {
				return
			}
			c := bank.FindClientByTaxID(taxID)
			for _, kind := range domain.AccountTypes {
				acc, added, err := bank.OpenAccount(c, kind)
				if !assert.NoError(t, err) || !assert.True(t, added) {
					return
				}
				mu.Lock()
				if _, seen := numbers[acc.Number()]; seen {
					dupes++
				}
				numbers[acc.Number()] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, n, bank.NumClients())
	assert.Zero(t, dupes)
	assert.Len(t, numbers, n*len(domain.AccountTypes))
}

func TestBank_ConcurrentReadersAndWriters(t *testing.T) {
	const n = 200

	f := newFixture(0)
	bank := f.bank()
	ok, err := bank.RegisterClient("Ana Silva", validTaxID, validPassword, 5000)
	require.NoError(t, err)
	require.True(t, ok)

	ana := bank.FindClientByTaxID(validTaxID)
	checking, _, err := bank.OpenAccount(ana, domain.AccountChecking)
	require.NoError(t, err)
	savings, _, err := bank.OpenAccount(ana, domain.AccountSavings)
	require.NoError(t, err)
	// keeps the balance positive so no overdraft fee depends on scheduling
	_, err = checking.Deposit(1000)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(4)
		go func() {
			defer wg.Done()
			_, err := checking.Deposit(2)
			assert.NoError(t, err)
			_, err = savings.Deposit(1)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, ana.SetMonthlyIncome(6000))
			ok, err := checking.Withdraw(1)
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
		go func() {
			defer wg.Done()
			assert.NotEmpty(t, bank.CustodyReport())
			assert.NotEmpty(t, bank.ExtremeClientsReport())
			assert.NotEmpty(t, bank.AverageBalanceReport())
			assert.NotEmpty(t, bank.FindClientByTaxID(validTaxID).ListAccounts())
		}()
		go func() {
			defer wg.Done()
			ok, err := bank.RegisterClient(fmt.Sprintf("Cliente %c", 'A'+i%26), validTaxIDFrom(200000000+i*7919), validPassword, 3000)
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	assert.Equal(t, float64(1000+n), checking.Balance())
	assert.Equal(t, float64(n), savings.Balance())
	assert.Equal(t, 2400.0, checking.(*CheckingAccount).Limit())
	assert.Equal(t, n+1, bank.NumClients())
	assert.Equal(t, float64(1000+2*n), ana.TotalBalance())
}

func TestBank_IndependentInstances(t *testing.T) {
	f := newFixture(0)
	a, b := f.bank(), f.bank()

	_, err := a.RegisterClient("Ana Silva", validTaxID, validPassword, 5000)
	require.NoError(t, err)

	assert.Equal(t, 1, a.NumClients())
	assert.Zero(t, b.NumClients())
	assert.Nil(t, b.FindClientByTaxID(validTaxID))
}
