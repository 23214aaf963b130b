package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/app"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	period   string
	start    string
	date     string
	account  string
	category string
	txType   string
	head     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions" }
func (*txCmd) Usage() string {
	return `ft tx [-p <period> | -s <start_date>] [-d <end_date>] [-a <account>] [-c <category>] [-t income|expense] [-head <n>]

  Lists transactions, most recent first, with options for filtering and limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Predefined period (day, week, month, quarter, year).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The end date for the range.")
	f.StringVar(&c.account, "a", "", "Only the transactions of this account id.")
	f.StringVar(&c.category, "c", "", "Only the transactions of this category.")
	f.StringVar(&c.txType, "t", "", "Only incomes or expenses.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
}

// filter builds the transaction filter from the flags.
func (c *txCmd) filter(today date.Date) (renderer.TransactionFilter, error) {
	filter := renderer.TransactionFilter{AccountID: c.account, Category: c.category, Limit: c.head}
	if c.txType != "" {
		t, err := fintrack.ParseTransactionType(c.txType)
		if err != nil {
			return filter, err
		}
		filter.Type = t
	}
	// If no date range flags are provided, use the full range.
	if c.start == "" && c.date == "" && c.period == "" {
		return filter, nil
	}

	end := today
	if c.date != "" {
		d, err := date.Parse(c.date)
		if err != nil {
			return filter, fmt.Errorf("invalid end date: %w", err)
		}
		end = d
	}
	switch {
	case c.start != "":
		start, err := date.Parse(c.start)
		if err != nil {
			return filter, fmt.Errorf("invalid start date: %w", err)
		}
		filter.Range = date.Range{From: start, To: end}
	case c.period != "":
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			return filter, err
		}
		filter.Range = date.NewRange(end, p)
	default:
		filter.Range = date.Range{From: date.New(1, 1, 1), To: end}
	}
	return filter, nil
}

func (c *txCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		filter, err := c.filter(a.Today())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		var md string
		a.View(func(l *fintrack.Ledger) { md = renderer.RenderTransactions(renderer.NewTransactions(l, filter)) })
		printMarkdown(md)
		return subcommands.ExitSuccess
	})
}

type addTxCmd struct {
	date     string
	account  string
	amount   string
	txType   string
	category string
	note     string
}

func (*addTxCmd) Name() string     { return "add-tx" }
func (*addTxCmd) Synopsis() string { return "record an income or an expense" }
func (*addTxCmd) Usage() string {
	return `ft add-tx -a <account> -amount <amount> -t income|expense -c <category> [-d <date>] [-m <note>]

  Records a transaction and updates the balance of the account: an income adds
  the amount, an expense subtracts it. The amount is always positive.
`
}

func (c *addTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&c.account, "a", "", "Account id")
	f.StringVar(&c.amount, "amount", "", "Positive amount")
	f.StringVar(&c.txType, "t", "expense", "income or expense")
	f.StringVar(&c.category, "c", "", "Category, e.g. food")
	f.StringVar(&c.note, "m", "", "An optional note")
}

func (c *addTxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.amount == "" || c.category == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	tx := fintrack.Transaction{AccountID: c.account, Category: c.category, Note: c.note}
	var err error
	if tx.Amount, err = fintrack.ParseAmount(c.amount); err != nil || !tx.Amount.IsPositive() {
		fmt.Fprintf(os.Stderr, "Error: amount must be a positive number, got %q\n", c.amount)
		return subcommands.ExitUsageError
	}
	if tx.Type, err = fintrack.ParseTransactionType(c.txType); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.date != "" {
		if tx.Date, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		var known bool
		a.View(func(l *fintrack.Ledger) { _, known = l.Account(c.account) })
		if !known {
			fmt.Fprintf(os.Stderr, "Warning: unknown account %q, no balance is updated\n", c.account)
		}
		recorded, err := a.RecordTransaction(tx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Recorded %s %s %s on %s (%s)\n", recorded.Type, recorded.Amount, recorded.Category, recorded.Date, recorded.ID)
		return subcommands.ExitSuccess
	})
}

type importOFXCmd struct {
	account string
}

func (*importOFXCmd) Name() string     { return "import-ofx" }
func (*importOFXCmd) Synopsis() string { return "import an OFX bank statement" }
func (*importOFXCmd) Usage() string {
	return `ft import-ofx -a <account> <file.ofx>

  Records the lines of an OFX bank or credit card statement as transactions of
  the account. Lines already imported into this account are skipped.
`
}

func (c *importOFXCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id")
}

func (c *importOFXCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		imported, err := a.ImportOFX(c.account, file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", f.Arg(0), err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%d transactions imported\n", len(imported))
		return subcommands.ExitSuccess
	})
}
