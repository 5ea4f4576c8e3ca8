// Package netdelay simulates the latency of a backend that is not there.
// Mutating service operations wait on a Delayer once before touching
// storage. Tests inject None and run synchronously.
package netdelay

import (
	"context"
	"time"
)

type Delayer interface {
	// Wait blocks for the simulated round-trip, or returns early with the
	// context's error when the caller gives up.
	Wait(ctx context.Context) error
}

// Fixed waits the same duration on every call.
type Fixed struct {
	d time.Duration
}

func NewFixed(d time.Duration) Fixed {
	return Fixed{d: d}
}

func (f Fixed) Wait(ctx context.Context) error {
	if f.d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(f.d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// None waits not at all.
type None struct{}

func (None) Wait(ctx context.Context) error {
	return ctx.Err()
}
