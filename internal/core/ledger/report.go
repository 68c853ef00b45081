package ledger

import (
	"XuBank/internal/core/domain"
	"XuBank/internal/core/ports"
	"XuBank/internal/core/validation"
	"fmt"
	"strings"
)

// CustodyReport aggregates a snapshot of clients without mutating them.
// Balances that fail the amount validator (including overdrawn checking
// accounts) are logged and left out of per-type figures.
type CustodyReport struct {
	clients []*Client
	audit   ports.AuditSink
}

// TypeAverage is the running sum and count behind one average.
type TypeAverage struct {
	Sum   float64
	Count int
}

// Average is Sum/Count, or 0 for no accounts.
func (t TypeAverage) Average() float64 {
	if t.Count == 0 {
		return 0
	}
	return t.Sum / float64(t.Count)
}

// Extremes holds the result of the richest/poorest scan.
type Extremes struct {
	Richest      *Client
	RichestTotal float64
	Poorest      *Client
	PoorestTotal float64
}

func NewCustodyReport(clients []*Client, audit ports.AuditSink) *CustodyReport {
	return &CustodyReport{clients: clients, audit: audit}
}

// eachValidBalance calls fn for every account whose balance is a valid amount.
func (r *CustodyReport) eachValidBalance(kind string, fn func(domain.AccountType, float64)) {
	for _, c := range r.clients {
		for _, acc := range c.Accounts() {
			balance := acc.Balance()
			if !validation.IsValidAmount(balance) {
				r.audit.LogError(kind, fmt.Sprintf("Invalid balance skipped - Account: %d", acc.Number()), nil)
				continue
			}
			fn(acc.Type(), balance)
		}
	}
}

// TotalsByType sums balances per account type. Every type is present.
func (r *CustodyReport) TotalsByType() map[domain.AccountType]float64 {
	totals := make(map[domain.AccountType]float64, len(domain.AccountTypes))
	for _, t := range domain.AccountTypes {
		totals[t] = 0
	}
	r.eachValidBalance("INVALID_BALANCE_IN_REPORT", func(t domain.AccountType, balance float64) {
		totals[t] += balance
	})
	return totals
}

// AveragesByType tracks sum and count per account type.
func (r *CustodyReport) AveragesByType() map[domain.AccountType]TypeAverage {
	avgs := make(map[domain.AccountType]TypeAverage, len(domain.AccountTypes))
	for _, t := range domain.AccountTypes {
		avgs[t] = TypeAverage{}
	}
	r.eachValidBalance("INVALID_BALANCE_IN_AVERAGE_REPORT", func(t domain.AccountType, balance float64) {
		a := avgs[t]
		a.Sum += balance
		a.Count++
		avgs[t] = a
	})
	return avgs
}

// FindExtremes scans clients once. Ties keep the first client seen.
// ok is false when there are no clients.
func (r *CustodyReport) FindExtremes() (e Extremes, ok bool) {
	if len(r.clients) == 0 {
		return Extremes{}, false
	}

	first := r.clients[0]
	total := first.TotalBalance()
	e = Extremes{Richest: first, RichestTotal: total, Poorest: first, PoorestTotal: total}

	for _, c := range r.clients[1:] {
		total := c.TotalBalance()
		if total > e.RichestTotal {
			e.Richest, e.RichestTotal = c, total
		}
		if total < e.PoorestTotal {
			e.Poorest, e.PoorestTotal = c, total
		}
	}
	return e, true
}

// Custody renders TotalsByType.
func (r *CustodyReport) Custody() string {
	totals := r.TotalsByType()

	var b strings.Builder
	b.WriteString("Balance in custody:")
	for _, t := range domain.AccountTypes {
		fmt.Fprintf(&b, "\n%s: R$ %.2f", t.Label(), totals[t])
	}

	r.audit.LogEvent("CUSTODY_REPORT", "Custody report generated")
	return b.String()
}

// ExtremeClients renders FindExtremes.
func (r *CustodyReport) ExtremeClients() string {
	e, ok := r.FindExtremes()
	if !ok {
		return "No clients registered."
	}

	r.audit.LogEvent("EXTREMES_REPORT", "Extreme clients report generated")
	return fmt.Sprintf("Client with highest balance: %s - R$ %.2f\nClient with lowest balance: %s - R$ %.2f",
		validation.Sanitize(e.Richest.Name()), e.RichestTotal,
		validation.Sanitize(e.Poorest.Name()), e.PoorestTotal)
}

// AverageBalance renders AveragesByType.
func (r *CustodyReport) AverageBalance() string {
	avgs := r.AveragesByType()

	var b strings.Builder
	b.WriteString("--- Average Balance per Account Type ---\n")
	for _, t := range domain.AccountTypes {
		a := avgs[t]
		fmt.Fprintf(&b, "%s: R$ %.2f (based on %d account(s))\n", t.Label(), a.Average(), a.Count)
	}
	b.WriteString("--------------------------------------")

	r.audit.LogEvent("AVERAGE_BALANCE_REPORT", "Average balance report generated")
	return b.String()
}
