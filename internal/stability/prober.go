// Package stability decides whether a file has finished being written by
// comparing its size across two close-in-time samples. Matching non-zero
// samples are taken as a proxy for "fully written"; the race window this
// leaves is accepted because the probe repeats on every drain cycle.
package stability

import (
	"context"
	"os"
	"time"
)

// Prober samples a file's size twice per attempt, Interval apart, for up to
// Attempts rounds within one drain pass.
type Prober struct {
	interval time.Duration
	attempts int

	// seams for tests
	fileSize func(path string) (int64, error)
	sleep    func(ctx context.Context, d time.Duration) bool
}

// Option configures optional Prober behavior.
type Option func(*Prober)

// WithFileSize injects a size sampler (used in tests).
func WithFileSize(fn func(string) (int64, error)) Option {
	return func(p *Prober) {
		if fn != nil {
			p.fileSize = fn
		}
	}
}

// WithSleep injects the inter-sample wait (used in tests).
func WithSleep(fn func(context.Context, time.Duration) bool) Option {
	return func(p *Prober) {
		if fn != nil {
			p.sleep = fn
		}
	}
}

// New constructs a prober. interval is the gap between the two size samples;
// attempts bounds how many rounds run before the file is left pending for the
// next cycle.
func New(interval time.Duration, attempts int, opts ...Option) *Prober {
	if attempts < 1 {
		attempts = 1
	}
	p := &Prober{
		interval: interval,
		attempts: attempts,
		fileSize: statSize,
		sleep:    sleepCtx,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsReady reports whether path looks fully written: two consecutive size
// samples that both succeed, are equal, and are non-zero. A stat failure or a
// vanished file yields false immediately; that is "not ready", never an
// error, and the caller re-evaluates on a later drain.
func (p *Prober) IsReady(ctx context.Context, path string) bool {
	for attempt := 0; attempt < p.attempts; attempt++ {
		first, err := p.fileSize(path)
		if err != nil {
			return false
		}
		if !p.sleep(ctx, p.interval) {
			return false
		}
		second, err := p.fileSize(path)
		if err != nil {
			return false
		}
		if first == second && first > 0 {
			return true
		}
	}
	return false
}

func statSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
