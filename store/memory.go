package store

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/etnz/fintrack"
)

// Memory keeps bundles and the session in memory. It is used by tests and by
// "ft serve -memory".
type Memory struct {
	mu      sync.RWMutex
	docs    map[string][]byte
	session *fintrack.User
	now     func() time.Time
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte), now: time.Now}
}

// Load implements Store.
func (m *Memory) Load(_ context.Context, username string) (fintrack.Bundle, error) {
	m.mu.RLock()
	doc, ok := m.docs[username]
	m.mu.RUnlock()
	if !ok {
		return fintrack.Bundle{}, ErrNotFound
	}
	return fintrack.DecodeBundle(bytes.NewReader(doc))
}

// Save implements Store. Bundles are stored encoded, so that later changes to
// b do not leak into the store.
func (m *Memory) Save(_ context.Context, username string, b fintrack.Bundle) error {
	b.LastUpdated = m.now().UTC()
	var buf bytes.Buffer
	if err := fintrack.EncodeBundle(&buf, b); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[username] = buf.Bytes()
	return nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

// CurrentUser implements Sessions.
func (m *Memory) CurrentUser(context.Context) (fintrack.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return fintrack.User{}, ErrNotFound
	}
	return *m.session, nil
}

// SetCurrentUser implements Sessions.
func (m *Memory) SetCurrentUser(_ context.Context, u fintrack.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &u
	return nil
}

// ClearCurrentUser implements Sessions.
func (m *Memory) ClearCurrentUser(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
