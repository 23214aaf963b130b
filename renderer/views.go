package renderer

import (
	"slices"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
)

// DefaultCurrency is used for totals when there is no account.
const DefaultCurrency = "TWD"

// displayCurrency is the currency totals are displayed in: the one of the
// first account.
func displayCurrency(accounts []fintrack.Account) string {
	for _, a := range accounts {
		if a.Currency != "" {
			return a.Currency
		}
	}
	return DefaultCurrency
}

// TransactionRow is a transaction with the name of its account.
type TransactionRow struct {
	fintrack.Transaction
	Account  string
	Currency string
}

func transactionRows(l *fintrack.Ledger, txs []fintrack.Transaction, currency string) []TransactionRow {
	rows := make([]TransactionRow, 0, len(txs))
	for _, tx := range txs {
		row := TransactionRow{Transaction: tx, Account: tx.AccountID, Currency: currency}
		if a, ok := l.Account(tx.AccountID); ok {
			row.Account = a.Name
			if a.Currency != "" {
				row.Currency = a.Currency
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Dashboard is the overview of a user's finances.
type Dashboard struct {
	User        string
	Currency    string
	Advice      string
	Summary     fintrack.Summary
	Performance fintrack.Performance
	Recent      []TransactionRow
}

// NewDashboard computes the dashboard of the month containing on.
func NewDashboard(l *fintrack.Ledger, user string, on date.Date, advice string) *Dashboard {
	currency := displayCurrency(l.Accounts())
	s := l.Summary(on)
	return &Dashboard{
		User:        user,
		Currency:    currency,
		Advice:      advice,
		Summary:     s,
		Performance: l.Performance(),
		Recent:      transactionRows(l, s.Recent, currency),
	}
}

// Accounts lists the accounts.
type Accounts struct {
	Currency string
	Accounts []fintrack.Account
	Total    fintrack.Amount
}

// NewAccounts returns the accounts view.
func NewAccounts(l *fintrack.Ledger) *Accounts {
	accounts := l.Accounts()
	return &Accounts{Currency: displayCurrency(accounts), Accounts: accounts, Total: l.TotalCash()}
}

// Stocks lists the holdings.
type Stocks struct {
	Currency    string
	Stocks      []fintrack.StockHolding
	Performance fintrack.Performance
}

// NewStocks returns the stocks view.
func NewStocks(l *fintrack.Ledger) *Stocks {
	return &Stocks{Currency: displayCurrency(l.Accounts()), Stocks: l.Stocks(), Performance: l.Performance()}
}

// Transactions lists transactions, most recent first.
type Transactions struct {
	Title string
	Rows  []TransactionRow
}

// TransactionFilter selects transactions.
type TransactionFilter struct {
	Range     date.Range // zero means all time
	AccountID string
	Category  string
	Type      fintrack.TransactionType
	Limit     int // 0 means no limit
}

func (f TransactionFilter) match(tx fintrack.Transaction) bool {
	switch {
	case !f.Range.From.IsZero() && !f.Range.Contains(tx.Date):
		return false
	case f.AccountID != "" && tx.AccountID != f.AccountID:
		return false
	case f.Category != "" && tx.Category != f.Category:
		return false
	case f.Type != "" && tx.Type != f.Type:
		return false
	}
	return true
}

// NewTransactions returns the transactions matching f.
func NewTransactions(l *fintrack.Ledger, f TransactionFilter) *Transactions {
	var txs []fintrack.Transaction
	for _, tx := range l.Transactions() {
		if f.match(tx) {
			txs = append(txs, tx)
		}
	}
	// most recent first, recording order breaks ties.
	slices.Reverse(txs)
	slices.SortStableFunc(txs, func(a, b fintrack.Transaction) int {
		switch {
		case a.Date.After(b.Date):
			return -1
		case a.Date.Before(b.Date):
			return 1
		}
		return 0
	})
	if f.Limit > 0 && len(txs) > f.Limit {
		txs = txs[:f.Limit]
	}
	title := "Transactions"
	if !f.Range.From.IsZero() {
		title += " " + f.Range.Identifier()
	}
	return &Transactions{Title: title, Rows: transactionRows(l, txs, displayCurrency(l.Accounts()))}
}
