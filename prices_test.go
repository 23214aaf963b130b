package fintrack

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeEstimator answers with a fixed list of updates.
type fakeEstimator struct {
	updates []PriceUpdate
	err     error
	asked   []string
	calls   int
}

func (f *fakeEstimator) EstimatePrices(_ context.Context, symbols []string) ([]PriceUpdate, error) {
	f.calls++
	f.asked = symbols
	return f.updates, f.err
}

func TestLedger_RefreshPrices(t *testing.T) {
	l := NewLedgerFromBundle(Seed(), WithClock(func() time.Time { return testNow }))
	before := l.Stocks()

	est := &fakeEstimator{updates: []PriceUpdate{
		{Symbol: "AAPL", CurrentPrice: A(231.4), Name: "Apple"},
		{Symbol: "MSFT", CurrentPrice: A(400), Name: "Microsoft"}, // not held
	}}
	n, err := l.RefreshPrices(context.Background(), est)
	if err != nil {
		t.Fatalf("RefreshPrices() error = %v", err)
	}
	if n != 1 {
		t.Errorf("RefreshPrices() = %d, want 1", n)
	}
	if !slices.Equal(est.asked, []string{"2330.TW", "AAPL"}) {
		t.Errorf("EstimatePrices() asked %v", est.asked)
	}

	after := l.Stocks()
	if diff := cmp.Diff(before[0], after[0]); diff != "" {
		t.Errorf("unmatched holding changed (-before +after):\n%s", diff)
	}
	want := before[1]
	want.CurrentPrice = A(231.4)
	want.Name = "Apple"
	want.LastUpdated = "2025-10-15T09:30:00Z"
	if diff := cmp.Diff(want, after[1]); diff != "" {
		t.Errorf("matched holding mismatch (-want +got):\n%s", diff)
	}
	if _, held := l.Holding("MSFT"); held {
		t.Errorf("an update for an unheld symbol created a holding")
	}
}

func TestLedger_RefreshPricesNoUpdate(t *testing.T) {
	testCases := []struct {
		name string
		est  *fakeEstimator
	}{
		{name: "empty response", est: &fakeEstimator{}},
		{name: "estimator failure", est: &fakeEstimator{err: errors.New("unreachable")}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedgerFromBundle(Seed())
			before := l.Bundle()
			n, err := l.RefreshPrices(context.Background(), tc.est)
			if (err != nil) != (tc.est.err != nil) {
				t.Errorf("RefreshPrices() error = %v", err)
			}
			if n != 0 {
				t.Errorf("RefreshPrices() = %d, want 0", n)
			}
			if diff := cmp.Diff(before, l.Bundle()); diff != "" {
				t.Errorf("ledger changed:\n%s", diff)
			}
		})
	}
}

func TestLedger_RefreshPricesNothingHeld(t *testing.T) {
	est := &fakeEstimator{}
	if _, err := NewLedger().RefreshPrices(context.Background(), est); err != nil {
		t.Fatalf("RefreshPrices() error = %v", err)
	}
	if est.calls != 0 {
		t.Errorf("EstimatePrices() called %d times for an empty portfolio", est.calls)
	}
}

func TestLedger_ApplyPricesKeepsNameWhenMissing(t *testing.T) {
	l := NewLedgerFromBundle(Seed())
	l.ApplyPrices([]PriceUpdate{{Symbol: "2330.TW", CurrentPrice: A(1000)}})
	h, _ := l.Holding("2330.TW")
	if h.Name != "TSMC" || !h.CurrentPrice.Equal(A(1000)) {
		t.Errorf("Holding() = %+v", h)
	}
}
