package planner

import (
	"context"
	"time"
)

// RetryPolicy wraps upstream generative calls. Only rate-limit classified
// errors are retried; everything else propagates on first occurrence. After
// retries are exhausted the last error propagates unchanged.
type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
}

// DefaultRetryPolicy: 2 retries, 1s initial delay, doubling per attempt.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 2, InitialDelay: time.Second}

// Do invokes fn, retrying on rate-limit errors with exponential backoff.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	delay := p.InitialDelay
	var err error
	for attempt := 0; ; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= p.MaxRetries || Classify(err).Kind != KindRateLimited {
			return err
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
}
