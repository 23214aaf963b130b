// Package fintrack is a personal finance tracker: bank accounts, stock
// holdings, and income/expense transactions, aggregated into dashboards.
//
// The core is the Ledger, which owns a user's collections and implements every
// mutation on them:
//   - Accounts: add, edit, delete.
//   - Transactions: recorded incomes and expenses adjust the balance of their
//     account.
//   - Trades: buying or selling shares updates the holding (weighted average
//     cost on buy), settles the total on an account, and records an investment
//     transaction, all in one step.
//   - Prices: holdings are revalued from a PriceEstimator, matching by symbol.
//
// A Ledger is persisted as a Bundle (see the store package), and hosted by the
// app package which serializes access and debounces persistence.
package fintrack
