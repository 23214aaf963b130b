package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/etnz/fintrack"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Partitions of the data table. The session row has an empty owner.
const (
	kindAccounts     = "accounts"
	kindStocks       = "stocks"
	kindTransactions = "transactions"
	kindSession      = "session"
)

const schema = `CREATE TABLE IF NOT EXISTS fintrack_data (
	kind       TEXT NOT NULL,
	owner      TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (kind, owner)
)`

const upsert = `INSERT INTO fintrack_data (kind, owner, value, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (kind, owner) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// SQL is a key-value store over a single table, one row per (kind, owner).
// It serves both the local sqlite file and a remote postgres database.
type SQL struct {
	db  *sqlx.DB
	now func() time.Time

	mu    sync.Mutex
	ready bool
}

// OpenSQLite opens (or creates) the sqlite file at path.
func OpenSQLite(path string) (*SQL, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	// a single writer avoids "database is locked" between the saver and the CLI.
	db.SetMaxOpenConns(1)
	return &SQL{db: db, now: time.Now}, nil
}

// OpenPostgres prepares a connection pool to dsn. The database is contacted on
// first use.
func OpenPostgres(dsn string) (*SQL, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &SQL{db: db, now: time.Now}, nil
}

// init creates the table once it has succeeded.
func (s *SQL) init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	s.ready = true
	return nil
}

type dataRow struct {
	Kind      string `db:"kind"`
	Value     string `db:"value"`
	UpdatedAt string `db:"updated_at"`
}

// Load implements Store.
func (s *SQL) Load(ctx context.Context, username string) (fintrack.Bundle, error) {
	var b fintrack.Bundle
	if err := s.init(ctx); err != nil {
		return b, err
	}
	var rows []dataRow
	q := s.db.Rebind(`SELECT kind, value, updated_at FROM fintrack_data WHERE owner = ? AND kind <> ?`)
	if err := s.db.SelectContext(ctx, &rows, q, username, kindSession); err != nil {
		return b, fmt.Errorf("load %q: %w", username, err)
	}
	if len(rows) == 0 {
		return b, ErrNotFound
	}
	b.Accounts, b.Stocks, b.Transactions = []fintrack.Account{}, []fintrack.StockHolding{}, []fintrack.Transaction{}
	for _, r := range rows {
		var target any
		switch r.Kind {
		case kindAccounts:
			target = &b.Accounts
		case kindStocks:
			target = &b.Stocks
		case kindTransactions:
			target = &b.Transactions
		default:
			continue
		}
		if err := json.Unmarshal([]byte(r.Value), target); err != nil {
			return b, fmt.Errorf("load %q %s: %w", username, r.Kind, err)
		}
		if t, err := time.Parse(time.RFC3339Nano, r.UpdatedAt); err == nil && t.After(b.LastUpdated) {
			b.LastUpdated = t
		}
	}
	return b, nil
}

// Save implements Store. The three collections are written in one transaction.
func (s *SQL) Save(ctx context.Context, username string, b fintrack.Bundle) error {
	if err := s.init(ctx); err != nil {
		return err
	}
	stamp := s.now().UTC().Format(time.RFC3339Nano)
	parts := []struct {
		kind  string
		value any
	}{
		{kindAccounts, b.Accounts},
		{kindStocks, b.Stocks},
		{kindTransactions, b.Transactions},
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save %q: %w", username, err)
	}
	defer tx.Rollback()
	q := tx.Rebind(upsert)
	for _, p := range parts {
		data, err := json.Marshal(p.value)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, q, p.kind, username, string(data), stamp); err != nil {
			return fmt.Errorf("save %q %s: %w", username, p.kind, err)
		}
	}
	return tx.Commit()
}

// CurrentUser implements Sessions.
func (s *SQL) CurrentUser(ctx context.Context) (fintrack.User, error) {
	var u fintrack.User
	if err := s.init(ctx); err != nil {
		return u, err
	}
	var value string
	q := s.db.Rebind(`SELECT value FROM fintrack_data WHERE kind = ? AND owner = ''`)
	err := s.db.GetContext(ctx, &value, q, kindSession)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal([]byte(value), &u); err != nil {
		return u, fmt.Errorf("read session: %w", err)
	}
	return u, nil
}

// SetCurrentUser implements Sessions.
func (s *SQL) SetCurrentUser(ctx context.Context, u fintrack.User) error {
	if err := s.init(ctx); err != nil {
		return err
	}
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	stamp := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(upsert), kindSession, "", string(data), stamp); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// ClearCurrentUser implements Sessions.
func (s *SQL) ClearCurrentUser(ctx context.Context) error {
	if err := s.init(ctx); err != nil {
		return err
	}
	q := s.db.Rebind(`DELETE FROM fintrack_data WHERE kind = ? AND owner = ''`)
	if _, err := s.db.ExecContext(ctx, q, kindSession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQL) Close() error { return s.db.Close() }
