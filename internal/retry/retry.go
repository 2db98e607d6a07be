// Package retry provides a minimal retry policy for provider calls.
// The default policy performs a single attempt; retries are an explicit
// opt-in rather than inlined call-site logic.
package retry

import (
	"context"
	"time"
)

// Policy controls how many times an operation is attempted and how long to
// wait between attempts. The delay doubles after each failed attempt.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// Default performs exactly one attempt.
func Default() Policy {
	return Policy{MaxAttempts: 1}
}

// Do runs fn until it succeeds, the attempt budget is exhausted, or the
// context is canceled. The last error is returned.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.InitialDelay
	var err error
	for i := 0; i < attempts; i++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
	}
	return err
}
