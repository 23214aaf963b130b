package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/app"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct {
	refresh bool
	advice  bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show net worth and this month's flows" }
func (*dashboardCmd) Usage() string {
	return `ft dashboard [-refresh] [-advice=false]

  Shows the net worth, the income and expenses of the current month by
  category, the recent transactions, and a short advice.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "refresh stock prices first")
	f.BoolVar(&c.advice, "advice", true, "ask for a short advice")
}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		if c.refresh {
			if _, err := a.RefreshPrices(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: prices not refreshed: %v\n", err)
			}
		}
		var advice string
		if c.advice {
			advice, _ = a.Advice(ctx)
		}
		u, _ := a.User()
		var md string
		a.View(func(l *fintrack.Ledger) {
			md = renderer.RenderDashboard(renderer.NewDashboard(l, u.Username, a.Today(), advice))
		})
		printMarkdown(md)
		return subcommands.ExitSuccess
	})
}

type accountsCmd struct{}

func (*accountsCmd) Name() string             { return "accounts" }
func (*accountsCmd) Synopsis() string         { return "list accounts" }
func (*accountsCmd) Usage() string            { return "ft accounts\n" }
func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (*accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		var md string
		a.View(func(l *fintrack.Ledger) { md = renderer.RenderAccounts(renderer.NewAccounts(l)) })
		printMarkdown(md)
		return subcommands.ExitSuccess
	})
}

type stocksCmd struct{}

func (*stocksCmd) Name() string             { return "stocks" }
func (*stocksCmd) Synopsis() string         { return "list stock holdings" }
func (*stocksCmd) Usage() string            { return "ft stocks\n" }
func (*stocksCmd) SetFlags(*flag.FlagSet) {}

func (*stocksCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		printStocks(a)
		return subcommands.ExitSuccess
	})
}

func printStocks(a *app.App) {
	var md string
	a.View(func(l *fintrack.Ledger) { md = renderer.RenderStocks(renderer.NewStocks(l)) })
	printMarkdown(md)
}

type pricesCmd struct{}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "refresh stock prices" }
func (*pricesCmd) Usage() string {
	return `ft prices

  Asks the advisory service for an estimate of the current price of every
  held stock, and updates the holdings it knows about.
`
}
func (*pricesCmd) SetFlags(*flag.FlagSet) {}

func (*pricesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		n, err := a.RefreshPrices(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error refreshing prices: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%d prices updated\n", n)
		printStocks(a)
		return subcommands.ExitSuccess
	})
}
