package fintrack

import (
	"testing"

	"github.com/etnz/fintrack/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestLedger_Summary(t *testing.T) {
	l := newTestLedger()
	acc := l.AddAccount(Account{Name: "Main", Balance: A(1000), Currency: "TWD", Type: Checking})
	record := func(on string, amount float64, typ TransactionType, category string) {
		l.RecordTransaction(Transaction{AccountID: acc.ID, Date: date.MustParse(on), Amount: A(amount), Type: typ, Category: category})
	}
	record("2025-09-30", 999, Expense, "rent") // previous month
	record("2025-10-01", 5000, Income, "salary")
	record("2025-10-02", 120, Expense, "food")
	record("2025-10-03", 300, Expense, "transport")
	record("2025-10-04", 200, Expense, "food")
	record("2025-10-05", 80, Expense, "fun")
	record("2025-10-06", 20, Expense, "fun")
	l.stocks = []StockHolding{{Symbol: "AAPL", Quantity: 2, AverageCost: A(100), CurrentPrice: A(150)}}

	s := l.Summary(date.MustParse("2025-10-15"))

	// 1000 - 999 + 5000 - 120 - 300 - 200 - 80 - 20
	if want := A(4281); !s.TotalCash.Equal(want) {
		t.Errorf("TotalCash = %v, want %v", s.TotalCash, want)
	}
	if want := A(300); !s.StockValue.Equal(want) {
		t.Errorf("StockValue = %v, want %v", s.StockValue, want)
	}
	if want := A(4581); !s.NetWorth.Equal(want) {
		t.Errorf("NetWorth = %v, want %v", s.NetWorth, want)
	}
	if want := A(5000); !s.MonthlyIncome.Equal(want) {
		t.Errorf("MonthlyIncome = %v, want %v", s.MonthlyIncome, want)
	}
	if want := A(720); !s.MonthlyExpense.Equal(want) {
		t.Errorf("MonthlyExpense = %v, want %v", s.MonthlyExpense, want)
	}
	wantCategories := []CategoryTotal{
		{Category: "food", Total: A(320)},
		{Category: "transport", Total: A(300)},
		{Category: "fun", Total: A(100)},
	}
	if diff := cmp.Diff(wantCategories, s.ExpenseByCategory); diff != "" {
		t.Errorf("ExpenseByCategory mismatch (-want +got):\n%s", diff)
	}
	if s.TopExpenseCategory != "food" {
		t.Errorf("TopExpenseCategory = %q, want food", s.TopExpenseCategory)
	}
	if s.Month != "2025-10" {
		t.Errorf("Month = %q, want 2025-10", s.Month)
	}

	var recent []string
	for _, tx := range s.Recent {
		recent = append(recent, tx.Date.String())
	}
	wantRecent := []string{"2025-10-06", "2025-10-05", "2025-10-04", "2025-10-03", "2025-10-02"}
	if diff := cmp.Diff(wantRecent, recent); diff != "" {
		t.Errorf("Recent mismatch (-want +got):\n%s", diff)
	}

	in := s.AdviceInput()
	if !in.NetWorth.Equal(A(4581)) || !in.MonthlyExpense.Equal(A(720)) || in.TopExpenseCategory != "food" {
		t.Errorf("AdviceInput() = %+v", in)
	}
}

func TestLedger_SummaryWithoutExpenses(t *testing.T) {
	s := NewLedger().Summary(date.MustParse("2025-10-15"))
	if s.TopExpenseCategory != NoCategory {
		t.Errorf("TopExpenseCategory = %q, want %q", s.TopExpenseCategory, NoCategory)
	}
	if !s.NetWorth.IsZero() || len(s.Recent) != 0 {
		t.Errorf("Summary() = %+v, want an empty summary", s)
	}
}

func TestLedger_Performance(t *testing.T) {
	l := NewLedgerFromBundle(Seed())
	p := l.Performance()
	// 1000*500 + 50*150 = 507500, 1000*580 + 50*180 = 589000
	want := Performance{
		TotalCost:   A(507500),
		MarketValue: A(589000),
		ProfitLoss:  A(81500),
	}
	want.ProfitLossPercent = decimal.NewFromInt(81500).Div(decimal.NewFromInt(507500)).Mul(decimal.NewFromInt(100))
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Performance() mismatch (-want +got):\n%s", diff)
	}

	if got := NewLedger().Performance().ProfitLossPercent; !got.IsZero() {
		t.Errorf("ProfitLossPercent of an empty portfolio = %v, want 0", got)
	}
}
