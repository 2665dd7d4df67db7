package search

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/spetersoncode/blogsmith/internal/retry"
)

// customSearchMax is the per-request cap of the Custom Search API.
const customSearchMax = 10

// Google searches through the Google Custom Search JSON API.
type Google struct {
	svc  *customsearch.Service
	cx   string
	opts options
}

// NewGoogle creates a Custom Search backend for the engine cx. Extra
// client options (an endpoint, an HTTP client) are passed to the service.
func NewGoogle(ctx context.Context, apiKey, cx string, opts []Option, clientOpts ...option.ClientOption) (*Google, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("%w: google search API key and engine ID", ErrMissingCredentials)
	}
	svc, err := customsearch.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, clientOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Google{svc: svc, cx: cx, opts: applyOptions(opts)}, nil
}

// Search returns up to max results for query.
func (g *Google) Search(ctx context.Context, query string, max int) ([]Result, error) {
	n := clampMax(max)
	if n > customSearchMax {
		n = customSearchMax
	}
	resp, err := retry.Do(ctx, g.opts.retry, func() (*customsearch.Search, error) {
		return g.svc.Cse.List().Cx(g.cx).Q(query).Num(int64(n)).Context(ctx).Do()
	})
	if err != nil {
		return nil, fmt.Errorf("google search: %w", err)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, Result{
			Title:   item.Title,
			URL:     item.Link,
			Content: item.Snippet,
		})
	}
	return results, nil
}
