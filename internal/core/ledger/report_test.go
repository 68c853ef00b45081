package ledger

import (
	"XuBank/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedBank registers two clients:
// Ana with checking -500 and savings 1000, Bruno with savings 300 and investment 700.
func seedBank(t *testing.T, f *fixture) *Bank {
	t.Helper()
	bank := f.bank()

	for _, c := range []struct{ name, taxID string }{
		{"Ana Silva", validTaxID},
		{"Bruno Costa", otherTaxID},
	} {
		ok, err := bank.RegisterClient(c.name, c.taxID, validPassword, 5000)
		require.NoError(t, err)
		require.True(t, ok)
	}

	open := func(taxID string, kind domain.AccountType) Account {
		acc, added, err := bank.OpenAccount(bank.FindClientByTaxID(taxID), kind)
		require.NoError(t, err)
		require.True(t, added)
		return acc
	}

	checking := open(validTaxID, domain.AccountChecking)
	_, err := checking.Withdraw(500)
	require.NoError(t, err)
	_, err = open(validTaxID, domain.AccountSavings).Deposit(1000)
	require.NoError(t, err)
	_, err = open(otherTaxID, domain.AccountSavings).Deposit(300)
	require.NoError(t, err)
	_, err = open(otherTaxID, domain.AccountInvestment).Deposit(700)
	require.NoError(t, err)

	return bank
}

func TestCustodyReport_Totals(t *testing.T) {
	f := newFixture(0)
	bank := seedBank(t, f)

	report := NewCustodyReport(bank.snapshotLocked(), f.audit)
	totals := report.TotalsByType()
	assert.Len(t, totals, 4)
	assert.Zero(t, totals[domain.AccountChecking])
	assert.Equal(t, 1300.0, totals[domain.AccountSavings])
	assert.Zero(t, totals[domain.AccountFixedIncome])
	assert.Equal(t, 700.0, totals[domain.AccountInvestment])
	assert.True(t, f.audit.hasError("INVALID_BALANCE_IN_REPORT"))

	out := bank.CustodyReport()
	assert.Contains(t, out, "Checking: R$ 0.00")
	assert.Contains(t, out, "Savings: R$ 1300.00")
	assert.Contains(t, out, "Fixed Income: R$ 0.00")
	assert.Contains(t, out, "Investment: R$ 700.00")
	assert.True(t, f.audit.hasEvent("CUSTODY_REPORT"))
}

func TestCustodyReport_Averages(t *testing.T) {
	f := newFixture(0)
	bank := seedBank(t, f)

	avgs := NewCustodyReport(bank.snapshotLocked(), f.audit).AveragesByType()
	assert.Equal(t, TypeAverage{Sum: 1300, Count: 2}, avgs[domain.AccountSavings])
	assert.Equal(t, 650.0, avgs[domain.AccountSavings].Average())
	assert.Zero(t, avgs[domain.AccountChecking].Count)
	assert.Zero(t, avgs[domain.AccountFixedIncome].Average())

	out := bank.AverageBalanceReport()
	assert.Contains(t, out, "Savings: R$ 650.00 (based on 2 account(s))")
	assert.Contains(t, out, "Fixed Income: R$ 0.00 (based on 0 account(s))")
	assert.Contains(t, out, "Investment: R$ 700.00 (based on 1 account(s))")
}

func TestCustodyReport_Extremes(t *testing.T) {
	f := newFixture(0)
	bank := seedBank(t, f)

	e, ok := NewCustodyReport(bank.snapshotLocked(), f.audit).FindExtremes()
	require.True(t, ok)
	assert.Equal(t, "Bruno Costa", e.Richest.Name())
	assert.Equal(t, 1000.0, e.RichestTotal)
	assert.Equal(t, "Ana Silva", e.Poorest.Name())
	assert.Equal(t, 500.0, e.PoorestTotal)

	out := bank.ExtremeClientsReport()
	assert.Equal(t, "Client with highest balance: Bruno Costa - R$ 1000.00\nClient with lowest balance: Ana Silva - R$ 500.00", out)
}

func TestCustodyReport_ExtremesTieKeepsFirst(t *testing.T) {
	f := newFixture(0)
	bank := f.bank()
	_, err := bank.RegisterClient("Ana Silva", validTaxID, validPassword, 5000)
	require.NoError(t, err)
	_, err = bank.RegisterClient("Bruno Costa", otherTaxID, validPassword, 5000)
	require.NoError(t, err)

	e, ok := NewCustodyReport(bank.snapshotLocked(), f.audit).FindExtremes()
	require.True(t, ok)
	assert.Equal(t, "Ana Silva", e.Richest.Name())
	assert.Equal(t, "Ana Silva", e.Poorest.Name())
}

func TestCustodyReport_Empty(t *testing.T) {
	f := newFixture(0)
	bank := f.bank()

	assert.Equal(t, "No clients registered.", bank.ExtremeClientsReport())
	assert.Contains(t, bank.CustodyReport(), "Savings: R$ 0.00")
	assert.Contains(t, bank.AverageBalanceReport(), "Checking: R$ 0.00 (based on 0 account(s))")
}
