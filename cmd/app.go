package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/etnz/fintrack/advisor"
	"github.com/etnz/fintrack/app"
	"github.com/etnz/fintrack/metrics"
	"github.com/etnz/fintrack/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// openApp opens the store and creates the App. closeApp writes pending changes
// and closes the store.
func openApp(ctx context.Context, reg *metrics.Registry) (a *app.App, closeApp func(), err error) {
	g, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("backend", g.Backend).Msg("store opened")
	a = newApp(ctx, g, g.Sessions, reg)
	closeApp = func() {
		if err := a.Close(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving changes: %v\n", err)
		}
		if err := g.Close(); err != nil {
			log.Warn().Err(err).Msg("cannot close the store")
		}
	}
	return a, closeApp, nil
}

func newApp(ctx context.Context, st store.Store, sessions store.Sessions, reg *metrics.Registry) *app.App {
	return app.New(app.Options{
		Store:    st,
		Sessions: sessions,
		Advisor:  advisor.New(ctx, cfg.Advisor, reg),
		Metrics:  reg,
		Debounce: cfg.Store.Debounce,
	})
}

// login makes the configured user, or the user of the previous session, the
// current user.
func login(ctx context.Context, a *app.App) error {
	if cfg.User != "" {
		return a.Login(ctx, cfg.User, app.LoginOptions{})
	}
	if err := a.Resume(ctx); err != nil {
		if errors.Is(err, app.ErrNotLoggedIn) {
			return errors.New("not logged in, use 'ft login <username>'")
		}
		return err
	}
	return nil
}

// warnDetached tells the user that the changes will not be saved.
func warnDetached(a *app.App) {
	if a.Detached() {
		fmt.Fprintln(os.Stderr, "Warning: the stored data could not be loaded, changes will not be saved. Check the store and log in again.")
	}
}

// withApp runs fn with the App of the logged in user, and saves the changes.
func withApp(ctx context.Context, fn func(a *app.App) subcommands.ExitStatus) subcommands.ExitStatus {
	a, closeApp, err := openApp(ctx, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeApp()
	if err := login(ctx, a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	warnDetached(a)
	return fn(a)
}
