package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	ai "github.com/spetersoncode/blogsmith"
	"github.com/spetersoncode/blogsmith/internal/retry"
)

// DefaultTavilyURL is the Tavily search endpoint.
const DefaultTavilyURL = "https://api.tavily.com/search"

// Tavily searches through the Tavily REST API.
type Tavily struct {
	apiKey  string
	baseURL string
	http    *http.Client
	opts    options
}

// NewTavily creates a Tavily backend. baseURL may be empty for the public
// endpoint.
func NewTavily(apiKey, baseURL string, opts ...Option) *Tavily {
	if baseURL == "" {
		baseURL = DefaultTavilyURL
	}
	return &Tavily{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		opts:    applyOptions(opts),
	}
}

type tavilyRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type tavilyResponse struct {
	Results []Result `json:"results"`
}

// Search returns up to max results for query.
func (t *Tavily) Search(ctx context.Context, query string, max int) ([]Result, error) {
	if t.apiKey == "" {
		return nil, fmt.Errorf("%w: tavily API key", ErrMissingCredentials)
	}
	body, err := json.Marshal(tavilyRequest{Query: query, MaxResults: clampMax(max), SearchDepth: "basic"})
	if err != nil {
		return nil, err
	}
	return retry.Do(ctx, t.opts.retry, func() ([]Result, error) {
		return t.do(ctx, body)
	})
}

func (t *Tavily) do(ctx context.Context, body []byte) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("tavily: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, data)
	}

	var out tavilyResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("tavily: decode response: %w", err)
	}
	return out.Results, nil
}

// statusError maps a non-200 Tavily response to a categorized error.
func statusError(resp *http.Response, body []byte) error {
	msg := fmt.Sprintf("tavily: HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		var after time.Duration
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			after = time.Duration(secs) * time.Second
		}
		return ai.NewTransientErrorWithRetry(msg, resp.StatusCode, after, nil)
	case resp.StatusCode >= 500:
		return ai.NewTransientError(msg, resp.StatusCode, nil)
	case resp.StatusCode == http.StatusBadRequest:
		return ai.NewUserInputError(msg, resp.StatusCode, nil)
	default:
		return ai.NewPermanentError(msg, resp.StatusCode, nil)
	}
}
