package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/app"
	"github.com/google/subcommands"
)

// accountFlags are the editable attributes of an account.
type accountFlags struct {
	name     string
	bank     string
	balance  string
	currency string
	accType  string
}

func (c *accountFlags) set(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name")
	f.StringVar(&c.bank, "bank", "", "Bank name")
	f.StringVar(&c.balance, "balance", "0", "Current balance, may be negative")
	f.StringVar(&c.currency, "currency", "TWD", "ISO currency code")
	f.StringVar(&c.accType, "type", string(fintrack.Checking), "saving, checking, investment or cash")
}

// apply copies the flags that were set on the command line into acc.
func (c *accountFlags) apply(f *flag.FlagSet, acc *fintrack.Account) error {
	var err error
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "name":
			acc.Name = c.name
		case "bank":
			acc.BankName = c.bank
		case "currency":
			acc.Currency = c.currency
		case "balance":
			acc.Balance, err = fintrack.ParseAmount(c.balance)
		case "type":
			acc.Type, err = fintrack.ParseAccountType(c.accType)
		}
	})
	return err
}

type addAccountCmd struct {
	accountFlags
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "add an account" }
func (*addAccountCmd) Usage() string {
	return `ft add-account -name <name> [-bank <bank>] [-balance <amount>] [-currency <code>] [-type <type>]

  Adds an account. Its id is generated.
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) { c.accountFlags.set(f) }

func (c *addAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	acc := fintrack.Account{Name: c.name, BankName: c.bank, Currency: c.currency}
	var err error
	if acc.Balance, err = fintrack.ParseAmount(c.balance); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if acc.Type, err = fintrack.ParseAccountType(c.accType); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		added, err := a.AddAccount(acc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Added account %q (%s)\n", added.Name, added.ID)
		return subcommands.ExitSuccess
	})
}

type editAccountCmd struct {
	accountFlags
	id string
}

func (*editAccountCmd) Name() string     { return "edit-account" }
func (*editAccountCmd) Synopsis() string { return "change an account" }
func (*editAccountCmd) Usage() string {
	return `ft edit-account -id <id> [-name <name>] [-bank <bank>] [-balance <amount>] [-currency <code>] [-type <type>]

  Changes the attributes given on the command line, the others are kept.
`
}

func (c *editAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id")
	c.accountFlags.set(f)
}

func (c *editAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		var (
			acc fintrack.Account
			ok  bool
		)
		a.View(func(l *fintrack.Ledger) { acc, ok = l.Account(c.id) })
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown account %q\n", c.id)
			return subcommands.ExitFailure
		}
		if err := c.apply(f, &acc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := a.EditAccount(acc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Updated account %q (%s)\n", acc.Name, acc.ID)
		return subcommands.ExitSuccess
	})
}

type deleteAccountCmd struct{}

func (*deleteAccountCmd) Name() string     { return "delete-account" }
func (*deleteAccountCmd) Synopsis() string { return "delete an account" }
func (*deleteAccountCmd) Usage() string {
	return `ft delete-account <id>

  Deletes an account. Its transactions are kept.
`
}
func (*deleteAccountCmd) SetFlags(*flag.FlagSet) {}

func (*deleteAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		if err := a.DeleteAccount(f.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted account %s\n", f.Arg(0))
		return subcommands.ExitSuccess
	})
}
