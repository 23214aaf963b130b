package fintrack

import "github.com/etnz/fintrack/date"

// Seed returns the demo data offered to brand-new users.
func Seed() Bundle {
	return Bundle{
		Accounts: []Account{
			{ID: "1", Name: "Salary", BankName: "Taipei Fubon", Balance: A(150000), Currency: "TWD", Type: Checking},
			{ID: "2", Name: "Emergency fund", BankName: "Cathay United", Balance: A(300000), Currency: "TWD", Type: Saving},
		},
		Stocks: []StockHolding{
			{Symbol: "2330.TW", Name: "TSMC", Quantity: 1000, AverageCost: A(500), CurrentPrice: A(580)},
			{Symbol: "AAPL", Name: "Apple Inc.", Quantity: 50, AverageCost: A(150), CurrentPrice: A(180)},
		},
		Transactions: []Transaction{
			{ID: "t1", AccountID: "1", Date: date.MustParse("2023-10-01"), Amount: A(50000), Type: Income, Category: "salary", Note: "October salary"},
			{ID: "t2", AccountID: "1", Date: date.MustParse("2023-10-05"), Amount: A(3000), Type: Expense, Category: "food", Note: "dinner"},
			{ID: "t3", AccountID: "2", Date: date.MustParse("2023-10-10"), Amount: A(1500), Type: Expense, Category: "transport", Note: "fuel"},
		},
	}
}
