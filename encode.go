package fintrack

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Bundle is the persisted form of a user's data: the three collections and
// the time they were saved.
type Bundle struct {
	Accounts     []Account      `json:"accounts"`
	Stocks       []StockHolding `json:"stocks"`
	Transactions []Transaction  `json:"transactions"`
	LastUpdated  time.Time      `json:"lastUpdated,omitzero"`
}

// IsEmpty reports whether b holds no data at all.
func (b Bundle) IsEmpty() bool {
	return len(b.Accounts) == 0 && len(b.Stocks) == 0 && len(b.Transactions) == 0
}

// EncodeBundle writes b as an indented JSON document.
func EncodeBundle(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b.normalize()); err != nil {
		return fmt.Errorf("could not encode bundle: %w", err)
	}
	return nil
}

// DecodeBundle reads a JSON document written by EncodeBundle, or by any client
// of the same document schema.
func DecodeBundle(r io.Reader) (Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Bundle{}, fmt.Errorf("could not decode bundle: %w", err)
	}
	return b, nil
}

// normalize replaces nil collections with empty ones, so that documents never
// contain null arrays.
func (b Bundle) normalize() Bundle {
	if b.Accounts == nil {
		b.Accounts = []Account{}
	}
	if b.Stocks == nil {
		b.Stocks = []StockHolding{}
	}
	if b.Transactions == nil {
		b.Transactions = []Transaction{}
	}
	return b
}
