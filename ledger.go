package fintrack

import (
	"slices"
	"time"

	"github.com/etnz/fintrack/date"
	"github.com/google/uuid"
)

// Ledger owns the accounts, stock holdings and transactions of a user and
// implements every mutation on them.
//
// A Ledger is not safe for concurrent use; hosts serialize access.
type Ledger struct {
	accounts     []Account
	stocks       []StockHolding // unique by symbol
	transactions []Transaction

	newID func() string
	now   func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used to date trades and price updates.
func WithClock(now func() time.Time) Option { return func(l *Ledger) { l.now = now } }

// WithIDs sets the generator of account and transaction ids.
func WithIDs(newID func() string) Option { return func(l *Ledger) { l.newID = newID } }

// NewLedger creates an empty ledger.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLedgerFromBundle creates a ledger holding a copy of the bundle's collections.
func NewLedgerFromBundle(b Bundle, opts ...Option) *Ledger {
	l := NewLedger(opts...)
	l.accounts = slices.Clone(b.Accounts)
	l.stocks = slices.Clone(b.Stocks)
	l.transactions = slices.Clone(b.Transactions)
	return l
}

// Bundle returns a copy of the ledger's collections, ready to be persisted.
func (l *Ledger) Bundle() Bundle {
	return Bundle{
		Accounts:     l.Accounts(),
		Stocks:       l.Stocks(),
		Transactions: l.Transactions(),
	}.normalize()
}

func (l *Ledger) today() date.Date { return date.Of(l.now()) }

// Accounts returns a copy of the accounts, in creation order.
func (l *Ledger) Accounts() []Account { return slices.Clone(l.accounts) }

// Stocks returns a copy of the holdings.
func (l *Ledger) Stocks() []StockHolding { return slices.Clone(l.stocks) }

// Transactions returns a copy of the transactions, in recording order.
func (l *Ledger) Transactions() []Transaction { return slices.Clone(l.transactions) }

// Account returns the account with this id.
func (l *Ledger) Account(id string) (Account, bool) {
	i := l.accountIndex(id)
	if i < 0 {
		return Account{}, false
	}
	return l.accounts[i], true
}

// Holding returns the holding for this symbol.
func (l *Ledger) Holding(symbol string) (StockHolding, bool) {
	i := holdingIndex(l.stocks, symbol)
	if i < 0 {
		return StockHolding{}, false
	}
	return l.stocks[i], true
}

func (l *Ledger) accountIndex(id string) int {
	return slices.IndexFunc(l.accounts, func(a Account) bool { return a.ID == id })
}

func holdingIndex(stocks []StockHolding, symbol string) int {
	return slices.IndexFunc(stocks, func(h StockHolding) bool { return h.Symbol == symbol })
}

// AddAccount appends a with a freshly generated id and returns it.
func (l *Ledger) AddAccount(a Account) Account {
	a.ID = l.newID()
	l.accounts = append(l.accounts, a)
	return a
}

// EditAccount replaces the account with the same id. It returns false, and
// does nothing, when there is no such account.
func (l *Ledger) EditAccount(a Account) bool {
	i := l.accountIndex(a.ID)
	if i < 0 {
		return false
	}
	l.accounts[i] = a
	return true
}

// DeleteAccount removes the account with this id. Transactions referencing it
// are kept.
func (l *Ledger) DeleteAccount(id string) bool {
	i := l.accountIndex(id)
	if i < 0 {
		return false
	}
	l.accounts = slices.Delete(l.accounts, i, i+1)
	return true
}

// RecordTransaction appends tx with a freshly generated id, and applies it to
// the balance of its account.
//
// The transaction is recorded even if the account does not exist, the balance
// adjustment is then skipped. A zero date is replaced by today.
func (l *Ledger) RecordTransaction(tx Transaction) Transaction {
	tx.ID = l.newID()
	if tx.Date.IsZero() {
		tx.Date = l.today()
	}
	l.transactions = append(l.transactions, tx)
	l.adjust(tx.AccountID, tx.Signed())
	return tx
}

// adjust adds delta to the account balance, if the account exists.
func (l *Ledger) adjust(accountID string, delta Amount) bool {
	i := l.accountIndex(accountID)
	if i < 0 {
		return false
	}
	l.accounts[i].Balance = l.accounts[i].Balance.Add(delta)
	return true
}
