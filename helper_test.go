package fintrack

import (
	"fmt"
	"time"
)

// testNow is the fixed clock of test ledgers.
var testNow = time.Date(2025, time.October, 15, 9, 30, 0, 0, time.UTC)

// newTestLedger returns a ledger with a fixed clock and predictable ids: id1, id2...
func newTestLedger() *Ledger {
	n := 0
	return NewLedger(
		WithClock(func() time.Time { return testNow }),
		WithIDs(func() string { n++; return fmt.Sprintf("id%d", n) }),
	)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
