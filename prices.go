package fintrack

import (
	"context"
	"time"
)

// PriceUpdate is an estimated price for a symbol.
type PriceUpdate struct {
	Symbol       string `json:"symbol"`
	CurrentPrice Amount `json:"currentPrice"`
	Name         string `json:"name"`
}

// PriceEstimator resolves current prices for symbols. It may omit symbols it
// cannot resolve, and may return no update at all.
type PriceEstimator interface {
	EstimatePrices(ctx context.Context, symbols []string) ([]PriceUpdate, error)
}

// Symbols returns the symbols of all holdings.
func (l *Ledger) Symbols() []string {
	symbols := make([]string, 0, len(l.stocks))
	for _, h := range l.stocks {
		symbols = append(symbols, h.Symbol)
	}
	return symbols
}

// ApplyPrices updates the current price and name of holdings matching an
// update by symbol. Updates for symbols that are not held are ignored, so a
// late response never resurrects a sold position. It returns the number of
// holdings updated.
func (l *Ledger) ApplyPrices(updates []PriceUpdate) int {
	if len(updates) == 0 {
		return 0
	}
	bySymbol := make(map[string]PriceUpdate, len(updates))
	for _, u := range updates {
		bySymbol[u.Symbol] = u
	}
	stamp := l.now().UTC().Format(time.RFC3339)
	n := 0
	for i, h := range l.stocks {
		u, ok := bySymbol[h.Symbol]
		if !ok {
			continue
		}
		h.CurrentPrice = u.CurrentPrice
		if u.Name != "" {
			h.Name = u.Name
		}
		h.LastUpdated = stamp
		l.stocks[i] = h
		n++
	}
	return n
}

// RefreshPrices asks est for the current prices of all holdings and applies
// them. It returns the number of holdings updated. On error the ledger is
// unchanged.
func (l *Ledger) RefreshPrices(ctx context.Context, est PriceEstimator) (int, error) {
	symbols := l.Symbols()
	if len(symbols) == 0 {
		return 0, nil
	}
	updates, err := est.EstimatePrices(ctx, symbols)
	if err != nil {
		return 0, err
	}
	return l.ApplyPrices(updates), nil
}
