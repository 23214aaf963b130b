package fintrack

import (
	"cmp"
	"slices"

	"github.com/etnz/fintrack/date"
	"github.com/shopspring/decimal"
)

// NoCategory names the top expense category when there are no expenses.
const NoCategory = "none"

// recentCount is the number of transactions listed in a Summary.
const recentCount = 5

// TotalCash is the sum of all account balances.
func (l *Ledger) TotalCash() Amount {
	var total Amount
	for _, a := range l.accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// StockValue is the market value of all holdings.
func (l *Ledger) StockValue() Amount {
	var total Amount
	for _, h := range l.stocks {
		total = total.Add(h.MarketValue())
	}
	return total
}

// NetWorth is TotalCash plus StockValue.
func (l *Ledger) NetWorth() Amount { return l.TotalCash().Add(l.StockValue()) }

// CategoryTotal is the sum of the expenses of a category.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    Amount `json:"total"`
}

// Summary is the dashboard: wealth now, and the flows of the current month.
type Summary struct {
	Period             date.Range      `json:"-"`
	Month              string          `json:"month"`
	NetWorth           Amount          `json:"netWorth"`
	TotalCash          Amount          `json:"totalCash"`
	StockValue         Amount          `json:"stockValue"`
	MonthlyIncome      Amount          `json:"monthlyIncome"`
	MonthlyExpense     Amount          `json:"monthlyExpense"`
	ExpenseByCategory  []CategoryTotal `json:"expenseByCategory"`
	TopExpenseCategory string          `json:"topExpenseCategory"`
	Recent             []Transaction   `json:"recent"`
}

// Summary computes the dashboard for the calendar month containing on.
func (l *Ledger) Summary(on date.Date) Summary {
	period := date.NewRange(on, date.Monthly)
	s := Summary{
		Period:             period,
		Month:              period.Identifier(),
		NetWorth:           l.NetWorth(),
		TotalCash:          l.TotalCash(),
		StockValue:         l.StockValue(),
		TopExpenseCategory: NoCategory,
		ExpenseByCategory:  []CategoryTotal{},
		Recent:             []Transaction{},
	}

	byCategory := make(map[string]Amount)
	var month []Transaction
	for _, tx := range l.transactions {
		if !period.Contains(tx.Date) {
			continue
		}
		month = append(month, tx)
		switch tx.Type {
		case Income:
			s.MonthlyIncome = s.MonthlyIncome.Add(tx.Amount)
		case Expense:
			s.MonthlyExpense = s.MonthlyExpense.Add(tx.Amount)
			byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
		}
	}

	for c, total := range byCategory {
		s.ExpenseByCategory = append(s.ExpenseByCategory, CategoryTotal{Category: c, Total: total})
	}
	slices.SortFunc(s.ExpenseByCategory, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	if len(s.ExpenseByCategory) > 0 {
		s.TopExpenseCategory = s.ExpenseByCategory[0].Category
	}

	// most recent first, recording order breaks ties.
	slices.Reverse(month)
	slices.SortStableFunc(month, func(a, b Transaction) int {
		switch {
		case a.Date.After(b.Date):
			return -1
		case a.Date.Before(b.Date):
			return 1
		}
		return 0
	})
	if len(month) > recentCount {
		month = month[:recentCount]
	}
	s.Recent = append(s.Recent, month...)
	return s
}

// AdviceInput is what an advisor needs to comment on the user's finances.
type AdviceInput struct {
	NetWorth           Amount
	MonthlyExpense     Amount
	TopExpenseCategory string
}

// AdviceInput extracts the advisor input from the summary.
func (s Summary) AdviceInput() AdviceInput {
	return AdviceInput{
		NetWorth:           s.NetWorth,
		MonthlyExpense:     s.MonthlyExpense,
		TopExpenseCategory: s.TopExpenseCategory,
	}
}

// Performance is the unrealized profit or loss over all holdings.
type Performance struct {
	TotalCost         Amount          `json:"totalCost"`
	MarketValue       Amount          `json:"marketValue"`
	ProfitLoss        Amount          `json:"profitLoss"`
	ProfitLossPercent decimal.Decimal `json:"profitLossPercent"`
}

// Performance computes the unrealized profit or loss of the holdings.
func (l *Ledger) Performance() Performance {
	var p Performance
	for _, h := range l.stocks {
		p.TotalCost = p.TotalCost.Add(h.Cost())
		p.MarketValue = p.MarketValue.Add(h.MarketValue())
	}
	p.ProfitLoss = p.MarketValue.Sub(p.TotalCost)
	p.ProfitLossPercent = p.ProfitLoss.Percent(p.TotalCost)
	return p
}
