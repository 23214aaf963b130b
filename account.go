package fintrack

import "fmt"

// AccountType classifies an Account.
type AccountType string

const (
	Saving     AccountType = "saving"
	Checking   AccountType = "checking"
	Investment AccountType = "investment"
	Cash       AccountType = "cash"
)

// ParseAccountType validates s as an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(s); t {
	case Saving, Checking, Investment, Cash:
		return t, nil
	default:
		return "", fmt.Errorf("unknown account type %q, want one of saving, checking, investment, cash", s)
	}
}

// Account is a bank or cash account.
//
// The ID is assigned by the Ledger and never changes. The Balance may go negative.
type Account struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	BankName string      `json:"bankName"`
	Balance  Amount      `json:"balance"`
	Currency string      `json:"currency"`
	Type     AccountType `json:"type"`
}
