package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack/app"
	"github.com/google/subcommands"
)

type loginCmd struct {
	demo bool
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in as a user" }
func (*loginCmd) Usage() string {
	return `ft login [-demo] <username>

  Loads the data of <username> and remembers it for the next commands.
  There is no password: the username only selects the data.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.demo, "demo", false, "start with demo data when nothing is stored for this user")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	a, closeApp, err := openApp(ctx, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeApp()

	if err := a.Login(ctx, f.Arg(0), app.LoginOptions{Demo: c.demo}); err != nil {
		fmt.Fprintf(os.Stderr, "Error logging in: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Logged in as %s\n", f.Arg(0))
	warnDetached(a)
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "forget the current user" }
func (*logoutCmd) Usage() string {
	return `ft logout

  Saves pending changes and forgets the current user.
`
}

func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (*logoutCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		if err := a.Logout(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error logging out: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("Logged out")
		return subcommands.ExitSuccess
	})
}

type whoamiCmd struct{}

func (*whoamiCmd) Name() string             { return "whoami" }
func (*whoamiCmd) Synopsis() string         { return "print the current user" }
func (*whoamiCmd) Usage() string            { return "ft whoami\n" }
func (*whoamiCmd) SetFlags(*flag.FlagSet) {}

func (*whoamiCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		u, _ := a.User()
		fmt.Println(u.Username)
		return subcommands.ExitSuccess
	})
}
