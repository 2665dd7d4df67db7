package client

import "github.com/spetersoncode/blogsmith/internal/retry"

// RetryConfig holds retry configuration parameters.
type RetryConfig = retry.Config

// RetryEvent describes a failed attempt. It implements slog.LogValuer.
type RetryEvent = retry.Event

// Kinds of RetryEvent.
const (
	RetryRetrying = retry.EventRetrying
	RetryGaveUp   = retry.EventGaveUp
)

// DefaultRetryConfig returns the default retry configuration: 4 attempts,
// 1s initial delay doubling up to 20s, 10% jitter.
func DefaultRetryConfig() RetryConfig {
	return retry.DefaultConfig()
}

// DisabledRetryConfig returns a configuration that disables retries (single attempt).
func DisabledRetryConfig() RetryConfig {
	return retry.Disabled()
}
