package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/app"
	"github.com/google/subcommands"
)

// tradeCmd is both the buy and the sell command.
type tradeCmd struct {
	action   string
	symbol   string
	name     string
	quantity int64
	price    string
	account  string
}

func (c *tradeCmd) Name() string { return c.action }
func (c *tradeCmd) Synopsis() string {
	if c.action == string(fintrack.Sell) {
		return "sell shares of a held stock"
	}
	return "purchase shares to open or add to a position"
}
func (c *tradeCmd) Usage() string {
	return fmt.Sprintf(`ft %s -s <symbol> -q <quantity> -p <price> -a <account> [-n <name>]

  Buying updates the average cost of the holding, selling keeps it. Selling
  all the shares, or more, closes the position. The total is debited from, or
  credited to, the account, and recorded as an "investment" transaction.
`, c.action)
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol, e.g. AAPL or 2330.TW")
	f.StringVar(&c.name, "n", "", "Display name of the stock, for a new holding")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares")
	f.StringVar(&c.price, "p", "", "Price per share")
	f.StringVar(&c.account, "a", "", "Account id")
}

func (c *tradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	action, err := fintrack.ParseTradeAction(c.action)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := fintrack.ParseAmount(c.price)
	if err != nil {
		f.Usage()
		return subcommands.ExitUsageError
	}
	t := fintrack.Trade{Action: action, Symbol: c.symbol, Name: c.name, Quantity: c.quantity, Price: price, AccountID: c.account}
	if err := t.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		tx, err := a.ExecuteTrade(t)
		if errors.Is(err, fintrack.ErrUnheldPosition) {
			fmt.Fprintf(os.Stderr, "Error: %s is not held\n", t.Symbol)
			return subcommands.ExitFailure
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Recorded %s (%s)\n", tx.Note, tx.ID)
		return subcommands.ExitSuccess
	})
}
