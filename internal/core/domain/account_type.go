package domain

// AccountType is the stable tag of an account variant.
// A client holds at most one account per tag.
type AccountType int

const (
	AccountChecking    AccountType = 1
	AccountSavings     AccountType = 2
	AccountFixedIncome AccountType = 3
	AccountInvestment  AccountType = 4
)

// AccountTypes lists every tag in report order.
var AccountTypes = []AccountType{
	AccountChecking,
	AccountSavings,
	AccountFixedIncome,
	AccountInvestment,
}

// Name returns the variant name used in statements and audit messages.
func (t AccountType) Name() string {
	switch t {
	case AccountChecking:
		return "CheckingAccount"
	case AccountSavings:
		return "SavingsAccount"
	case AccountFixedIncome:
		return "FixedIncomeAccount"
	case AccountInvestment:
		return "InvestmentAccount"
	default:
		return "UnknownAccount"
	}
}

// Label is the short human label used in reports.
func (t AccountType) Label() string {
	switch t {
	case AccountChecking:
		return "Checking"
	case AccountSavings:
		return "Savings"
	case AccountFixedIncome:
		return "Fixed Income"
	case AccountInvestment:
		return "Investment"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the four known tags.
func (t AccountType) Valid() bool {
	return t >= AccountChecking && t <= AccountInvestment
}
