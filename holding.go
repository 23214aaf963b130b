package fintrack

// StockHolding is a position in a single security.
//
// Holdings are unique by Symbol, and a holding with no shares left is removed.
type StockHolding struct {
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Quantity     int64  `json:"quantity"`
	AverageCost  Amount `json:"averageCost"`
	CurrentPrice Amount `json:"currentPrice"`
	// LastUpdated is set when the price comes from a price refresh.
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// MarketValue is Quantity × CurrentPrice.
func (h StockHolding) MarketValue() Amount { return h.CurrentPrice.Mul(h.Quantity) }

// Cost is Quantity × AverageCost.
func (h StockHolding) Cost() Amount { return h.AverageCost.Mul(h.Quantity) }

// ProfitLoss is the unrealized gain of the position.
func (h StockHolding) ProfitLoss() Amount { return h.MarketValue().Sub(h.Cost()) }
