package retry

import (
	"context"
	"time"

	ai "github.com/spetersoncode/blogsmith"
)

// effectiveDelay returns the delay to use, honoring the server's Retry-After
// when it is larger. The flag reports that the server's value won.
func effectiveDelay(configured time.Duration, err error) (time.Duration, bool) {
	if server := ai.RetryAfterOf(err); server > configured {
		return server, true
	}
	return configured, false
}

// Do executes fn with retry logic. It respects context cancellation during
// backoff waits and returns the last error if all attempts fail.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	return DoWithEvents(ctx, cfg, nil, fn)
}

// DoWithEvents is like Do but reports every failed attempt on events:
// EventRetrying before a backoff wait, EventGaveUp when fn's error is
// returned. Events are sent non-blocking; a full channel drops them. A nil
// channel disables reporting.
func DoWithEvents[T any](ctx context.Context, cfg Config, events chan<- Event, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	gaveUp := func(attempt int, err error) {
		emit(events, Event{
			Type:        EventGaveUp,
			Attempt:     attempt,
			MaxAttempts: attempts,
			Error:       err,
			Category:    ai.CategoryOf(err),
		})
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsTransient(err) {
			gaveUp(attempt, err)
			return zero, err
		}
		if attempt == attempts {
			break
		}

		delay, server := effectiveDelay(cfg.Delay(attempt-1), err)
		emit(events, Event{
			Type:        EventRetrying,
			Attempt:     attempt,
			MaxAttempts: attempts,
			Error:       err,
			Category:    ai.CategoryOf(err),
			Delay:       delay,
			ServerDelay: server,
		})

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	gaveUp(attempts, lastErr)
	return zero, lastErr
}
