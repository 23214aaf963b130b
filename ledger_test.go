package fintrack

import (
	"testing"

	"github.com/etnz/fintrack/date"
	"github.com/google/go-cmp/cmp"
)

func TestLedger_AddEditDeleteAccount(t *testing.T) {
	l := newTestLedger()
	a := l.AddAccount(Account{ID: "ignored", Name: "Salary", BankName: "Fubon", Balance: A(100), Currency: "TWD", Type: Checking})
	b := l.AddAccount(Account{Name: "Wallet", Balance: A(20), Currency: "TWD", Type: Cash})

	if a.ID != "id1" || b.ID != "id2" {
		t.Fatalf("AddAccount() ids = %q, %q, want id1, id2", a.ID, b.ID)
	}

	edited := a
	edited.Name = "Salary account"
	edited.Balance = A(-5)
	if !l.EditAccount(edited) {
		t.Fatalf("EditAccount(%q) = false, want true", edited.ID)
	}
	if l.EditAccount(Account{ID: "unknown", Name: "ghost"}) {
		t.Errorf("EditAccount(unknown) = true, want false")
	}
	if got, _ := l.Account(a.ID); !cmp.Equal(got, edited) {
		t.Errorf("Account() after edit: %s", cmp.Diff(edited, got))
	}

	l.RecordTransaction(Transaction{AccountID: b.ID, Amount: A(5), Type: Expense, Category: "food"})
	if !l.DeleteAccount(b.ID) {
		t.Fatalf("DeleteAccount(%q) = false, want true", b.ID)
	}
	if l.DeleteAccount(b.ID) {
		t.Errorf("DeleteAccount(%q) twice = true, want false", b.ID)
	}
	if got := l.Accounts(); len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("Accounts() = %v, want only %q", got, a.ID)
	}
	// no cascade
	if got := l.Transactions(); len(got) != 1 || got[0].AccountID != b.ID {
		t.Errorf("Transactions() = %v, want the dangling transaction kept", got)
	}
}

func TestLedger_RecordTransaction(t *testing.T) {
	l := newTestLedger()
	acc := l.AddAccount(Account{Name: "Salary", Balance: A(1000), Currency: "TWD", Type: Checking})

	testCases := []struct {
		name        string
		tx          Transaction
		wantBalance Amount
	}{
		{
			name:        "income adds",
			tx:          Transaction{AccountID: acc.ID, Date: date.MustParse("2025-10-01"), Amount: A(500), Type: Income, Category: "salary"},
			wantBalance: A(1500),
		},
		{
			name:        "expense subtracts",
			tx:          Transaction{AccountID: acc.ID, Date: date.MustParse("2025-10-02"), Amount: A(250.5), Type: Expense, Category: "food"},
			wantBalance: A(1249.5),
		},
		{
			name:        "balance may go negative",
			tx:          Transaction{AccountID: acc.ID, Date: date.MustParse("2025-10-03"), Amount: A(2000), Type: Expense, Category: "rent"},
			wantBalance: A(-750.5),
		},
		{
			name:        "unknown account leaves balances untouched",
			tx:          Transaction{AccountID: "nope", Amount: A(99), Type: Income, Category: "gift"},
			wantBalance: A(-750.5),
		},
	}
	for i, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := l.RecordTransaction(tc.tx)
			if got.ID == "" {
				t.Errorf("RecordTransaction() did not assign an id")
			}
			if n := len(l.Transactions()); n != i+1 {
				t.Errorf("len(Transactions()) = %d, want %d", n, i+1)
			}
			a, _ := l.Account(acc.ID)
			if !a.Balance.Equal(tc.wantBalance) {
				t.Errorf("Balance = %v, want %v", a.Balance, tc.wantBalance)
			}
		})
	}

	// the transaction on an unknown account is dated today.
	last := l.Transactions()[3]
	if last.Date != date.Of(testNow) {
		t.Errorf("Date = %v, want %v", last.Date, date.Of(testNow))
	}
}

// TestLedger_BalanceIsSignedSum checks that the balance always equals the
// initial balance plus the signed sum of the applied transactions.
func TestLedger_BalanceIsSignedSum(t *testing.T) {
	l := newTestLedger()
	acc := l.AddAccount(Account{Name: "Main", Balance: A(42), Currency: "USD", Type: Checking})
	other := l.AddAccount(Account{Name: "Other", Balance: A(0), Currency: "USD", Type: Saving})

	amounts := []float64{10, 3.3, 7, 0.01, 1000, 55.5, 12, 8}
	want := A(42)
	for i, v := range amounts {
		typ := Income
		if i%3 == 0 {
			typ = Expense
		}
		target := acc.ID
		if i%4 == 3 {
			target = other.ID
		}
		tx := l.RecordTransaction(Transaction{AccountID: target, Amount: A(v), Type: typ, Category: "misc"})
		if target == acc.ID {
			want = want.Add(tx.Signed())
		}
	}
	got, _ := l.Account(acc.ID)
	if !got.Balance.Equal(want) {
		t.Errorf("Balance = %v, want %v", got.Balance, want)
	}
}

func TestLedger_BundleIsACopy(t *testing.T) {
	l := NewLedgerFromBundle(Seed())
	b := l.Bundle()
	b.Accounts[0].Balance = A(0)
	b.Stocks[0].Quantity = 1

	if a, _ := l.Account("1"); !a.Balance.Equal(A(150000)) {
		t.Errorf("mutating a Bundle changed the ledger balance to %v", a.Balance)
	}
	if h, _ := l.Holding("2330.TW"); h.Quantity != 1000 {
		t.Errorf("mutating a Bundle changed the ledger quantity to %v", h.Quantity)
	}
}

func TestLedger_EmptyBundleHasNoNil(t *testing.T) {
	b := NewLedger().Bundle()
	if b.Accounts == nil || b.Stocks == nil || b.Transactions == nil {
		t.Errorf("Bundle() = %#v, want empty non nil collections", b)
	}
}
