// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package network

import (
	"context"
	"math/rand/v2"
	"time"
)

// Default pause bounds after each accepted hit.
const (
	DefaultMinDelay = 2 * time.Second
	DefaultMaxDelay = 5 * time.Second
)

// Pacer sleeps a uniformly random duration in [Min, Max] to keep request
// patterns below abuse-detection thresholds.
type Pacer struct {
	Min time.Duration
	Max time.Duration

	// Sleep waits for d or until ctx ends. Nil uses a timer. Tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error

	// Int64N draws from [0, n). Nil uses math/rand/v2.
	Int64N func(n int64) int64
}

// Next returns the duration of the next pause.
func (p *Pacer) Next() time.Duration {
	lo, hi := p.Min, p.Max
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	span := int64(hi - lo)
	if span <= 0 {
		return lo
	}
	draw := rand.Int64N
	if p.Int64N != nil {
		draw = p.Int64N
	}
	return lo + time.Duration(draw(span+1))
}

// Wait pauses for Next().
func (p *Pacer) Wait(ctx context.Context) error {
	d := p.Next()
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
