package fintrack

import (
	"fmt"

	"github.com/etnz/fintrack/date"
)

// TransactionType is the direction of a Transaction.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// ParseTransactionType validates s as a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case Income, Expense:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q, want income or expense", s)
	}
}

// InvestmentCategory is the category of transactions recorded by trades.
const InvestmentCategory = "investment"

// Transaction is an income or an expense on an account.
//
// Amount is always positive, Type tells the direction. Transactions are never
// edited once recorded.
type Transaction struct {
	ID        string          `json:"id"`
	AccountID string          `json:"accountId"`
	Date      date.Date       `json:"date"`
	Amount    Amount          `json:"amount"`
	Type      TransactionType `json:"type"`
	Category  string          `json:"category"`
	Note      string          `json:"note,omitempty"`
}

// Signed returns the effect of the transaction on its account balance.
func (t Transaction) Signed() Amount {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
