package fintrack

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnheldPosition is returned when selling a symbol that is not held.
	ErrUnheldPosition = errors.New("cannot sell unheld position")
	// ErrInvalidTrade is returned for malformed trades.
	ErrInvalidTrade = errors.New("invalid trade")
)

// TradeAction is either Buy or Sell.
type TradeAction string

const (
	Buy  TradeAction = "buy"
	Sell TradeAction = "sell"
)

// ParseTradeAction validates s as a TradeAction.
func ParseTradeAction(s string) (TradeAction, error) {
	switch a := TradeAction(s); a {
	case Buy, Sell:
		return a, nil
	default:
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidTrade, s)
	}
}

// Trade describes a buy or a sell of Quantity shares of Symbol at Price,
// settled on the account AccountID.
type Trade struct {
	Action    TradeAction `json:"action"`
	Symbol    string      `json:"symbol"`
	Name      string      `json:"name"`
	Quantity  int64       `json:"quantity"`
	Price     Amount      `json:"price"`
	AccountID string      `json:"accountId"`
}

// Total is Quantity × Price.
func (t Trade) Total() Amount { return t.Price.Mul(t.Quantity) }

// Validate checks the trade fields. The account is not checked: settling on an
// unknown account records the trade without touching any balance.
func (t Trade) Validate() error {
	var errs error
	if t.Action != Buy && t.Action != Sell {
		errs = errors.Join(errs, fmt.Errorf("unknown action %q", t.Action))
	}
	if t.Symbol == "" {
		errs = errors.Join(errs, errors.New("missing symbol"))
	}
	if t.Quantity <= 0 {
		errs = errors.Join(errs, fmt.Errorf("quantity must be positive, got %d", t.Quantity))
	}
	if t.Price.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("price must not be negative, got %v", t.Price))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTrade, errs)
	}
	return nil
}

func (t Trade) note() string {
	return fmt.Sprintf("%s %s %d @ %s", t.Action, t.Symbol, t.Quantity, t.Price)
}

// ExecuteTrade applies a trade: it updates the holding, settles the total on
// the account, and records an investment transaction.
//
// Buying updates the average cost, selling never does. Selling all the shares,
// or more, removes the holding. Selling a symbol that is not held returns
// ErrUnheldPosition. On error the ledger is unchanged.
func (l *Ledger) ExecuteTrade(t Trade) (Transaction, error) {
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	total := t.Total()

	// Work on a copy of the holdings, the ledger is only modified once all
	// the effects are known.
	stocks := slices.Clone(l.stocks)
	i := holdingIndex(stocks, t.Symbol)

	tx := Transaction{
		AccountID: t.AccountID,
		Date:      l.today(),
		Amount:    total,
		Category:  InvestmentCategory,
		Note:      t.note(),
	}

	switch t.Action {
	case Buy:
		tx.Type = Expense
		if i < 0 {
			stocks = append(stocks, StockHolding{
				Symbol:       t.Symbol,
				Name:         t.Name,
				Quantity:     t.Quantity,
				AverageCost:  t.Price,
				CurrentPrice: t.Price,
			})
			break
		}
		h := stocks[i]
		quantity := h.Quantity + t.Quantity
		h.AverageCost = h.Cost().Add(total).Div(quantity)
		h.Quantity = quantity
		h.CurrentPrice = t.Price
		stocks[i] = h

	case Sell:
		tx.Type = Income
		if i < 0 {
			return Transaction{}, fmt.Errorf("%w %q", ErrUnheldPosition, t.Symbol)
		}
		quantity := stocks[i].Quantity - t.Quantity
		if quantity <= 0 {
			stocks = slices.Delete(stocks, i, i+1)
			break
		}
		stocks[i].Quantity = quantity
		stocks[i].CurrentPrice = t.Price
	}

	tx.ID = l.newID()
	l.stocks = stocks
	l.adjust(t.AccountID, tx.Signed())
	l.transactions = append(l.transactions, tx)
	return tx, nil
}
