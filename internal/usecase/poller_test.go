package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPollerStopsOnCancel(t *testing.T) {
	var ticks atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	p := NewPoller(time.Millisecond, 1000, 1000)
	done := make(chan struct{})
	go func() {
		p.Run(ctx, "products", func(context.Context) error {
			ticks.Add(1)
			return nil
		})
		close(done)
	}()

	// Wait for the immediate tick plus a few interval ticks.
	deadline := time.After(time.Second)
	for ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("poller never ticked")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	settled := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	if got := ticks.Load(); got != settled {
		t.Fatalf("ticks advanced after cancellation: %d -> %d", settled, got)
	}
}

func TestPollerLimiterCapsTickVolume(t *testing.T) {
	var ticks atomic.Int32
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	// The interval alone would allow ~60 ticks in this window; the limiter
	// (1 burst token + 20/s) permits only a handful.
	p := NewPoller(2*time.Millisecond, 20, 1)
	p.Run(ctx, "gallery", func(context.Context) error {
		ticks.Add(1)
		return nil
	})

	got := ticks.Load()
	if got == 0 {
		t.Fatal("poller never ticked")
	}
	if got > 8 {
		t.Fatalf("limiter did not cap tick volume: %d ticks", got)
	}
}
