package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/etnz/fintrack/app"
	"github.com/etnz/fintrack/metrics"
	"github.com/etnz/fintrack/server"
	"github.com/etnz/fintrack/store"
	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

type serveCmd struct {
	addr   string
	memory bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the API and the views over HTTP" }
func (*serveCmd) Usage() string {
	return `ft serve [-addr <host:port>] [-memory]

  Serves the JSON API under /api, the views as HTML, and the metrics under
  /metrics. The user of the current session, if any, is logged in.

  With -memory nothing is persisted: the configured user (or "demo") is logged
  in with the demo data.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Address to listen on. Defaults to the configured one.")
	f.BoolVar(&c.memory, "memory", false, "Keep the data in memory only, seeded with the demo data.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	addr := c.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a, closeApp, err := c.open(ctx, metrics.NewRegistry(reg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeApp()

	// pending changes are saved with ctx after the interruption.
	serveCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	if err := server.New(a, reg).ListenAndServe(serveCtx, addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// open returns the App to serve, with its user logged in when possible.
func (c *serveCmd) open(ctx context.Context, reg *metrics.Registry) (*app.App, func(), error) {
	if !c.memory {
		a, closeApp, err := openApp(ctx, reg)
		if err != nil {
			return nil, nil, err
		}
		if err := login(ctx, a); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		return a, closeApp, nil
	}
	m := store.NewMemory()
	a := newApp(ctx, m, m, reg)
	user := cfg.User
	if user == "" {
		user = "demo"
	}
	if err := a.Login(ctx, user, app.LoginOptions{Demo: true}); err != nil {
		return nil, nil, err
	}
	log.Info().Str("user", user).Msg("serving in memory")
	return a, func() { a.Close(ctx) }, nil
}
