// Package pacer implements the bounded-retry policy used by every HTTP
// call in this module, modeled on github.com/rclone/rclone/lib/pacer as
// called from backend/doi's fs.NewPacer construction (the pack retained
// only lib/pacer's tests, so its calling convention is rebuilt fresh here).
package pacer

import (
	"context"
	"time"

	"github.com/ropensci/datahugger-go/internal/dherrors"
)

// Default bounds, matching the Open Questions decision in SPEC_FULL.md:
// bounded exponential backoff capped at 3 attempts, applied only to
// Temporary-classified errors.
const (
	MaxAttempts = 3
	MinSleep    = 10 * time.Millisecond
	MaxSleep    = 2 * time.Second
	DecayConst  = 2
)

// Pacer retries a Call according to the bounded-backoff policy.
type Pacer struct {
	maxAttempts int
	minSleep    time.Duration
	maxSleep    time.Duration
	decay       int
	sleep       func(time.Duration)
}

// New builds a Pacer with the default policy.
func New() *Pacer {
	return &Pacer{
		maxAttempts: MaxAttempts,
		minSleep:    MinSleep,
		maxSleep:    MaxSleep,
		decay:       DecayConst,
		sleep:       time.Sleep,
	}
}

// Call invokes fn, retrying while it returns (true, err) and the error is
// Temporary, up to maxAttempts. A Temporary error that survives every
// retry is re-wrapped as Persistent (the crawl boundary in spec.md §4.G).
// fn returns (retry, err): retry tells the Pacer whether the caller thinks
// another attempt is worthwhile; err (if any) is inspected for its Status
// when it implements dherrors.StatusError.
func (p *Pacer) Call(ctx context.Context, fn func() (bool, error)) error {
	var lastErr error
	backoff := p.minSleep

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		retry, err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retry || !isTemporary(err) || attempt == p.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p.sleep(backoff)
		backoff *= time.Duration(p.decay)
		if backoff > p.maxSleep {
			backoff = p.maxSleep
		}
	}

	if isTemporary(lastErr) {
		return dherrors.NewPacerError("exhausted retries", lastErr)
	}
	return lastErr
}

func isTemporary(err error) bool {
	var se dherrors.StatusError
	if stErr, ok := err.(dherrors.StatusError); ok {
		se = stErr
		return se.Status() == dherrors.Temporary
	}
	return false
}
