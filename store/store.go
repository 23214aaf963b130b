// Package store persists fintrack bundles, one per username.
//
// A Gateway selects the backend once at startup: the remote document store
// when configured (redis or postgres), the local sqlite file otherwise. The
// session identity always lives in the local file.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/config"
)

// ErrNotFound is returned when there is no data for a username, or no session.
var ErrNotFound = errors.New("not found")

// Store loads and saves the bundle of a user.
type Store interface {
	// Load returns the bundle saved for username, ErrNotFound if none.
	Load(ctx context.Context, username string) (fintrack.Bundle, error)
	// Save replaces the bundle of username. The saved LastUpdated is set to
	// the time of the write.
	Save(ctx context.Context, username string, b fintrack.Bundle) error
	Close() error
}

// Sessions keeps the identity of the logged in user between runs.
type Sessions interface {
	// CurrentUser returns the logged in user, ErrNotFound if none.
	CurrentUser(ctx context.Context) (fintrack.User, error)
	SetCurrentUser(ctx context.Context, u fintrack.User) error
	ClearCurrentUser(ctx context.Context) error
}

// Backend names.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Gateway is the Store selected from the configuration, plus the local Sessions.
type Gateway struct {
	Store
	Sessions Sessions
	// Backend is the name of the selected Store.
	Backend string

	local *SQL
}

// Open opens the local file and, when configured, the remote store.
// Opening a remote store does not contact it.
func Open(ctx context.Context, cfg config.Store) (*Gateway, error) {
	local, err := OpenSQLite(cfg.Local)
	if err != nil {
		return nil, err
	}
	g := &Gateway{Store: local, Sessions: local, Backend: BackendSQLite, local: local}
	if cfg.Remote == "" {
		return g, nil
	}

	u, err := url.Parse(cfg.Remote)
	if err != nil {
		local.Close()
		return nil, fmt.Errorf("invalid remote store URL: %w", err)
	}
	switch u.Scheme {
	case "redis", "rediss":
		r, err := OpenRedis(cfg.Remote)
		if err != nil {
			local.Close()
			return nil, err
		}
		g.Store, g.Backend = r, BackendRedis
	case "postgres", "postgresql":
		p, err := OpenPostgres(cfg.Remote)
		if err != nil {
			local.Close()
			return nil, err
		}
		g.Store, g.Backend = p, BackendPostgres
	default:
		local.Close()
		return nil, fmt.Errorf("unsupported remote store scheme %q", u.Scheme)
	}
	return g, nil
}

// Close closes the selected store and the local file.
func (g *Gateway) Close() error {
	if g.Store == Store(g.local) {
		return g.local.Close()
	}
	return errors.Join(g.Store.Close(), g.local.Close())
}
