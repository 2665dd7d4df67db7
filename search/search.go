// Package search retrieves ranked web results for a query.
//
// Two backends are provided: Tavily, a search API built for LLM context,
// and Google Programmable Search (Custom Search JSON API). Both retry
// transient failures with exponential backoff.
package search

import (
	"errors"

	"github.com/spetersoncode/blogsmith/internal/retry"
)

// DefaultMaxResults is used when a caller asks for zero or fewer results.
const DefaultMaxResults = 3

// ErrMissingCredentials indicates a backend was built without its keys.
var ErrMissingCredentials = errors.New("search: missing credentials")

// Result is one ranked search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Option configures a search backend.
type Option func(*options)

type options struct {
	retry retry.Config
}

// WithRetry overrides the retry policy (default retry.DefaultConfig).
func WithRetry(cfg retry.Config) Option {
	return func(o *options) {
		o.retry = cfg
	}
}

func applyOptions(opts []Option) options {
	o := options{retry: retry.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func clampMax(n int) int {
	if n <= 0 {
		return DefaultMaxResults
	}
	return n
}
