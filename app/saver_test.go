package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestSaverCoalesces(t *testing.T) {
	var writes atomic.Int32
	done := make(chan struct{}, 10)
	s := NewSaver(20*time.Millisecond, func(context.Context) error {
		writes.Add(1)
		done <- struct{}{}
		return nil
	})

	for range 5 {
		s.Schedule()
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("no write after the quiet period")
	}
	time.Sleep(50 * time.Millisecond)
	if got := writes.Load(); got != 1 {
		t.Errorf("writes = %d, want 1", got)
	}
	if s.Pending() {
		t.Errorf("Pending() = true after the write")
	}
}

func TestSaverFlush(t *testing.T) {
	var writes int
	s := NewSaver(time.Hour, func(context.Context) error {
		writes++
		return nil
	})
	ctx := context.Background()

	if err := s.Flush(ctx); err != nil || writes != 0 {
		t.Fatalf("Flush() with nothing pending wrote %d times, err %v", writes, err)
	}
	s.Schedule()
	if !s.Pending() {
		t.Fatal("Pending() = false after Schedule")
	}
	if err := s.Flush(ctx); err != nil {
		t.Fatal(err)
	}
	if writes != 1 {
		t.Errorf("writes = %d, want 1", writes)
	}

	s.Schedule()
	if err := s.Close(ctx); err != nil {
		t.Fatal(err)
	}
	s.Schedule()
	if writes != 2 || s.Pending() {
		t.Errorf("after Close: writes = %d, pending = %v, want 2, false", writes, s.Pending())
	}
}

func TestSaverRunWaitsForWrite(t *testing.T) {
	started, release := make(chan struct{}), make(chan struct{})
	var order []string
	s := NewSaver(time.Hour, func(context.Context) error {
		close(started)
		<-release
		order = append(order, "scheduled")
		return nil
	})
	s.Schedule()
	go s.Flush(context.Background())
	<-started

	ran := make(chan struct{})
	go func() {
		s.Run(context.Background(), func(context.Context) error {
			order = append(order, "run")
			return nil
		})
		close(ran)
	}()
	select {
	case <-ran:
		t.Fatal("Run() did not wait for the write in progress")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	<-ran
	if len(order) != 2 || order[0] != "scheduled" || order[1] != "run" {
		t.Errorf("writes = %v, want [scheduled run]", order)
	}
}
