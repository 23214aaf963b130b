package app

import (
	"context"
	"sync"
	"time"
)

// Saver coalesces bursts of changes into a single write, issued after a quiet
// period. Each Schedule re-arms the timer, so only the last state of a burst
// is written.
type Saver struct {
	delay time.Duration
	write func(context.Context) error

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	closed  bool

	writing sync.Mutex // one write at a time
}

// NewSaver returns a Saver calling write delay after the last Schedule.
func NewSaver(delay time.Duration, write func(context.Context) error) *Saver {
	return &Saver{delay: delay, write: write}
}

// Schedule marks the state as changed and (re)arms the timer.
func (s *Saver) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		// errors are reported by write itself
		_ = s.Flush(context.Background())
	})
}

// Pending reports whether a write is scheduled.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Flush writes immediately if a write is pending.
func (s *Saver) Flush(ctx context.Context) error {
	s.writing.Lock()
	defer s.writing.Unlock()

	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return nil
	}
	s.pending = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	return s.write(ctx)
}

// Run calls write after the write in progress, if any. Use it for writes
// outside the schedule that must not be overtaken by an older one.
func (s *Saver) Run(ctx context.Context, write func(context.Context) error) error {
	s.writing.Lock()
	defer s.writing.Unlock()
	return write(ctx)
}

// Close flushes the pending write, later Schedule calls are ignored.
func (s *Saver) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.Flush(ctx)
}
