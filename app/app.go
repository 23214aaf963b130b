// Package app hosts the ledger of the logged in user: it loads and saves it
// through the store, serializes mutations, and talks to the advisor.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/advisor"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/metrics"
	"github.com/etnz/fintrack/store"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNotLoggedIn is returned by operations that need a logged in user.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrUnknownAccount is returned when editing or deleting a missing account.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrDetached is returned when saving the data of a user whose stored data
	// could not be loaded.
	ErrDetached = errors.New("stored data could not be loaded, changes are not saved")
)

// Options configures an App.
type Options struct {
	Store    store.Store
	Sessions store.Sessions
	Advisor  advisor.Advisor
	Metrics  *metrics.Registry // optional
	// Debounce is the quiet period before changes are saved.
	Debounce time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
	// Ledger options for every ledger the App creates.
	Ledger []fintrack.Option
}

// App is the application state: the current user and its ledger.
//
// All methods are safe for concurrent use. Mutations are serialized, network
// calls to the advisor are made without holding the lock.
type App struct {
	store    store.Store
	sessions store.Sessions
	advisor  advisor.Advisor
	metrics  *metrics.Registry
	now      func() time.Time
	ledgerOf []fintrack.Option
	saver    *Saver

	mu      sync.Mutex
	user    fintrack.User
	ledger  *fintrack.Ledger
	loaded   bool   // a user is logged in
	detached bool   // the stored data could not be loaded, it must not be overwritten
	dirty    bool   // the ledger has unsaved changes
	version  uint64 // incremented on each change
	advice   cachedAdvice
}

// snapshot is the state to write for a user.
type snapshot struct {
	username string
	bundle   fintrack.Bundle
	detached bool
}

type cachedAdvice struct {
	version uint64
	text    string
}

// New returns an App with nobody logged in.
func New(opts Options) *App {
	a := &App{
		store:    opts.Store,
		sessions: opts.Sessions,
		advisor:  opts.Advisor,
		metrics:  opts.Metrics,
		now:      opts.Now,
		ledgerOf: opts.Ledger,
	}
	if a.advisor == nil {
		a.advisor = advisor.Offline{}
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.ledgerOf == nil {
		a.ledgerOf = []fintrack.Option{fintrack.WithClock(a.now)}
	}
	a.saver = NewSaver(opts.Debounce, a.save)
	return a
}

// LoginOptions tunes Login.
type LoginOptions struct {
	// Demo seeds the ledger with demo data when nothing is stored for the user.
	Demo bool
}

// Login loads the data of username and makes it the current user. Load
// failures are logged and result in an empty ledger that is not saved, see
// Detached. Unsaved changes of the previous user are written first.
func (a *App) Login(ctx context.Context, username string, opts LoginOptions) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("empty username")
	}
	if err := a.saver.Flush(ctx); err != nil {
		log.Warn().Err(err).Msg("previous changes not saved")
	}

	var seeded bool
	b, err := a.store.Load(ctx, username)
	switch {
	case err == nil:
		a.metrics.Load(metrics.OK)
	case errors.Is(err, store.ErrNotFound):
		a.metrics.Load(metrics.OK)
		log.Debug().Str("user", username).Msg("no stored data")
	default:
		a.metrics.Load(metrics.Failed)
		log.Warn().Err(err).Str("user", username).Msg("cannot load data, starting empty and not saving")
	}
	detached := err != nil && !errors.Is(err, store.ErrNotFound)
	if err != nil && opts.Demo {
		b, seeded = fintrack.Seed(), true
	}

	a.mu.Lock()
	prev, unsaved := a.takeLocked()
	if unsaved && prev.username == username && !prev.detached {
		// changed during the load, newer than what was loaded
		b, seeded = prev.bundle, false
	}
	a.user = fintrack.User{Username: username, IsLoggedIn: true}
	a.ledger = fintrack.NewLedgerFromBundle(b, a.ledgerOf...)
	a.loaded = true
	a.detached = detached
	a.version++
	a.metrics.SetNetWorth(a.ledger.NetWorth().Decimal().InexactFloat64())
	if seeded {
		a.changedLocked()
	}
	user := a.user
	a.mu.Unlock()

	if unsaved {
		a.writeInOrder(ctx, prev)
	}
	if err := a.sessions.SetCurrentUser(ctx, user); err != nil {
		log.Warn().Err(err).Str("user", username).Msg("cannot record the session")
	}
	log.Info().Str("user", username).Bool("detached", detached).Msg("logged in")
	return nil
}

// Detached reports whether the stored data of the current user could not be
// loaded. Changes are then kept in memory only, so that the stored data is not
// overwritten.
func (a *App) Detached() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loaded && a.detached
}

// Resume logs in the user of the previous session.
func (a *App) Resume(ctx context.Context) error {
	u, err := a.sessions.CurrentUser(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotLoggedIn
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
	}
	return a.Login(ctx, u.Username, LoginOptions{})
}

// Logout writes pending changes and forgets the current user.
func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	username := a.user.Username
	prev, unsaved := a.takeLocked()
	a.user = fintrack.User{}
	a.ledger = nil
	a.loaded = false
	a.detached = false
	a.version++
	a.mu.Unlock()

	if unsaved {
		a.writeInOrder(ctx, prev)
	}

	if err := a.sessions.ClearCurrentUser(ctx); err != nil {
		log.Warn().Err(err).Msg("cannot clear the session")
	}
	if username != "" {
		log.Info().Str("user", username).Msg("logged out")
	}
	return nil
}

// Close writes pending changes. The App must not be used afterwards.
func (a *App) Close(ctx context.Context) error { return a.saver.Close(ctx) }

// Flush writes pending changes now.
func (a *App) Flush(ctx context.Context) error { return a.saver.Flush(ctx) }

// changedLocked records a change of the ledger. a.mu must be held, so that
// a teardown holding a.mu sees every committed change as unsaved.
func (a *App) changedLocked() {
	a.version++
	a.dirty = true
	a.metrics.SetNetWorth(a.ledger.NetWorth().Decimal().InexactFloat64())
	a.saver.Schedule()
}

// takeLocked returns the unsaved state of the current user, and marks it
// saved. a.mu must be held.
func (a *App) takeLocked() (snapshot, bool) {
	if !a.loaded || !a.dirty {
		return snapshot{}, false
	}
	a.dirty = false
	return snapshot{username: a.user.Username, bundle: a.ledger.Bundle(), detached: a.detached}, true
}

// writeInOrder writes s after any write in progress, so that an older
// snapshot never overwrites s.
func (a *App) writeInOrder(ctx context.Context, s snapshot) {
	err := a.saver.Run(ctx, func(ctx context.Context) error { return a.write(ctx, s) })
	if err != nil {
		log.Warn().Err(err).Str("user", s.username).Msg("pending changes not saved")
	}
}

// save is the Saver's write: a snapshot of the ledger taken at write time.
func (a *App) save(ctx context.Context) error {
	a.mu.Lock()
	s, unsaved := a.takeLocked()
	a.mu.Unlock()
	if !unsaved {
		return nil
	}
	return a.write(ctx, s)
}

func (a *App) write(ctx context.Context, s snapshot) error {
	username := s.username
	if s.detached {
		a.metrics.Save(metrics.Skipped)
		log.Warn().Str("user", username).Msg("stored data was not loaded, changes not saved")
		return ErrDetached
	}
	if err := a.store.Save(ctx, username, s.bundle); err != nil {
		a.metrics.Save(metrics.Failed)
		log.Warn().Err(err).Str("user", username).Msg("cannot save data")
		return err
	}
	a.metrics.Save(metrics.OK)
	log.Debug().Str("user", username).Msg("data saved")
	return nil
}

// User returns the current user, ok is false when nobody is logged in.
func (a *App) User() (u fintrack.User, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user, a.loaded
}

// Today is the current date.
func (a *App) Today() date.Date { return date.Of(a.now()) }

// View calls fn with the ledger, under the lock. fn must not retain it.
func (a *App) View(fn func(*fintrack.Ledger)) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.loaded {
		return ErrNotLoggedIn
	}
	fn(a.ledger)
	return nil
}

// Update applies fn to the ledger and schedules a save when fn succeeds.
func (a *App) Update(fn func(*fintrack.Ledger) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.loaded {
		return ErrNotLoggedIn
	}
	if err := fn(a.ledger); err != nil {
		return err
	}
	a.changedLocked()
	return nil
}

// AddAccount adds an account with a fresh id.
func (a *App) AddAccount(acc fintrack.Account) (added fintrack.Account, err error) {
	err = a.Update(func(l *fintrack.Ledger) error {
		added = l.AddAccount(acc)
		return nil
	})
	return added, err
}

// EditAccount replaces the account with the same id.
func (a *App) EditAccount(acc fintrack.Account) error {
	return a.Update(func(l *fintrack.Ledger) error {
		if !l.EditAccount(acc) {
			return fmt.Errorf("%w %q", ErrUnknownAccount, acc.ID)
		}
		return nil
	})
}

// DeleteAccount removes an account. Its transactions are kept.
func (a *App) DeleteAccount(id string) error {
	return a.Update(func(l *fintrack.Ledger) error {
		if !l.DeleteAccount(id) {
			return fmt.Errorf("%w %q", ErrUnknownAccount, id)
		}
		return nil
	})
}

// RecordTransaction records an income or an expense.
func (a *App) RecordTransaction(tx fintrack.Transaction) (recorded fintrack.Transaction, err error) {
	err = a.Update(func(l *fintrack.Ledger) error {
		recorded = l.RecordTransaction(tx)
		return nil
	})
	return recorded, err
}

// ExecuteTrade buys or sells a stock.
func (a *App) ExecuteTrade(t fintrack.Trade) (recorded fintrack.Transaction, err error) {
	err = a.Update(func(l *fintrack.Ledger) error {
		var err error
		recorded, err = l.ExecuteTrade(t)
		return err
	})
	result := metrics.OK
	if err != nil {
		result = metrics.Failed
	}
	a.metrics.Trade(string(t.Action), result)
	return recorded, err
}

// ImportOFX records the lines of an OFX statement into an account.
func (a *App) ImportOFX(accountID string, r io.Reader) (imported []fintrack.Transaction, err error) {
	err = a.Update(func(l *fintrack.Ledger) error {
		var err error
		imported, err = l.ImportOFX(accountID, r)
		return err
	})
	return imported, err
}

// RefreshPrices asks the advisor for the prices of the held stocks and
// applies them. It returns the number of holdings updated. A failing advisor
// updates nothing and is not an error.
//
// The lock is released during the request: updates are applied by symbol to
// the ledger as it is when the reply arrives.
func (a *App) RefreshPrices(ctx context.Context) (int, error) {
	a.mu.Lock()
	if !a.loaded {
		a.mu.Unlock()
		return 0, ErrNotLoggedIn
	}
	username, symbols := a.user.Username, a.ledger.Symbols()
	a.mu.Unlock()
	if len(symbols) == 0 {
		return 0, nil
	}

	updates, err := a.advisor.EstimatePrices(ctx, symbols)
	if err != nil {
		log.Warn().Err(err).Str("user", username).Msg("price refresh failed, nothing updated")
		return 0, nil
	}

	a.mu.Lock()
	if !a.loaded || a.user.Username != username {
		a.mu.Unlock()
		return 0, nil
	}
	n := a.ledger.ApplyPrices(updates)
	if n > 0 {
		a.changedLocked()
	}
	a.mu.Unlock()

	log.Debug().Str("user", username).Int("updated", n).Msg("prices refreshed")
	return n, nil
}

// Advice returns a short advice on this month's figures. It is cached until
// the ledger changes.
func (a *App) Advice(ctx context.Context) (string, error) {
	a.mu.Lock()
	if !a.loaded {
		a.mu.Unlock()
		return "", ErrNotLoggedIn
	}
	version := a.version
	if a.advice.version == version && a.advice.text != "" {
		text := a.advice.text
		a.mu.Unlock()
		return text, nil
	}
	in := a.ledger.Summary(a.Today()).AdviceInput()
	a.mu.Unlock()

	text := a.advisor.Summarize(ctx, in)

	if text != advisor.UnavailableAdvice {
		a.mu.Lock()
		if a.version == version {
			a.advice = cachedAdvice{version: version, text: text}
		}
		a.mu.Unlock()
	}
	return text, nil
}
