// Package retry runs provider requests with exponential backoff.
//
// Only transient failures are retried: rate limits, 5xx responses and
// network timeouts. Everything else is returned on the first attempt.
package retry

import (
	"math"
	"math/rand"
	"time"
)

// Config holds retry configuration parameters.
type Config struct {
	// MaxAttempts is the maximum number of attempts, counting the first one.
	MaxAttempts int

	// InitialDelay is the base delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// Multiplier is the exponential backoff multiplier.
	Multiplier float64

	// Jitter scales each delay by (1 + random(-jitter, +jitter)).
	Jitter float64
}

// DefaultConfig returns the default retry configuration: 4 attempts,
// 1s initial delay doubling up to 20s, 10% jitter.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  4,
		InitialDelay: 1 * time.Second,
		MaxDelay:     20 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// Disabled returns a configuration that disables retries (single attempt).
func Disabled() Config {
	return Config{MaxAttempts: 1}
}

// Delay returns the wait after the given failed attempt (0-indexed):
// min(MaxDelay, InitialDelay * Multiplier^attempt), scaled by jitter.
func (c Config) Delay(attempt int) time.Duration {
	delay := c.base(attempt)
	if c.Jitter > 0 {
		delay *= 1.0 + (rand.Float64()*2-1)*c.Jitter
	}
	return time.Duration(delay)
}

// MaxWait is the longest total backoff a request can spend between its
// attempts, with jitter at its upper bound. A caller deadline shorter than
// this cuts retries off.
func (c Config) MaxWait() time.Duration {
	var total float64
	for attempt := 0; attempt < c.MaxAttempts-1; attempt++ {
		total += c.base(attempt)
	}
	return time.Duration(math.Round(total * (1 + max(c.Jitter, 0))))
}

func (c Config) base(attempt int) float64 {
	if attempt < 0 {
		attempt = 0
	}
	return min(float64(c.InitialDelay)*math.Pow(c.Multiplier, float64(attempt)), float64(c.MaxDelay))
}
