package draftpipe

import (
	"context"
	"time"
)

// RetryClassifier decides whether an error is worth retrying.
// Retryable is the default classifier.
type RetryClassifier func(error) bool

// Retry runs fn up to attempts times, sleeping delays[i] between attempt i
// and i+1. A nil or exhausted delays slice means no backoff. The classifier
// is consulted after every failure; a non-retryable error is returned
// immediately without consuming the remaining budget. Delays are
// cancellable through ctx.
func Retry(ctx context.Context, attempts int, delays []time.Duration, classify RetryClassifier, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	if classify == nil {
		classify = Retryable
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !classify(err) {
			return err
		}
		if attempt >= attempts-1 {
			break
		}

		var delay time.Duration
		if attempt < len(delays) {
			delay = delays[attempt]
		}
		if delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return lastErr
}
