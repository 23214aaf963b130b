// Package cmd implements the ft command line: one subcommand per operation on
// the ledger of the logged in user.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/fintrack/config"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	c.Register(&topicCmd{}, "")

	c.Register(&loginCmd{}, "session")
	c.Register(&logoutCmd{}, "session")
	c.Register(&whoamiCmd{}, "session")

	c.Register(&dashboardCmd{}, "views")
	c.Register(&accountsCmd{}, "views")
	c.Register(&stocksCmd{}, "views")
	c.Register(&txCmd{}, "views")

	c.Register(&addAccountCmd{}, "accounts")
	c.Register(&editAccountCmd{}, "accounts")
	c.Register(&deleteAccountCmd{}, "accounts")

	c.Register(&addTxCmd{}, "transactions")
	c.Register(&importOFXCmd{}, "transactions")

	c.Register(&tradeCmd{action: "buy"}, "stocks")
	c.Register(&tradeCmd{action: "sell"}, "stocks")
	c.Register(&pricesCmd{}, "stocks")

	c.Register(&serveCmd{}, "server")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to the YAML configuration file. Defaults to $"+config.EnvConfig+".")
	// Verbose enables debug logs.
	Verbose = flag.Bool("v", false, "verbose output")
)

// cfg is the configuration loaded by Setup.
var cfg = config.Default()

// Setup loads the configuration and configures logging. It must be called
// after the flags are parsed.
func Setup() error {
	path := *configFile
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c

	level := cfg.LogLevel()
	if *Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// fallback to the raw markdown
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
