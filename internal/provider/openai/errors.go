package openai

import (
	"errors"
	"net/http"

	"github.com/openai/openai-go"
	ai "github.com/spetersoncode/blogsmith"
)

// Error codes OpenAI returns with a 429 that retrying cannot fix.
var exhaustedQuotaCodes = map[string]bool{
	"insufficient_quota":         true,
	"billing_hard_limit_reached": true,
}

// wrapError categorizes an OpenAI API error by status code and
// Retry-After. Other errors are returned as they are and left to the
// retry package's network heuristics.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if exhaustedQuotaCodes[apiErr.Code] {
		return ai.NewPermanentError("openai quota exhausted", apiErr.StatusCode, err)
	}
	var header http.Header
	if apiErr.Response != nil {
		header = apiErr.Response.Header
	}
	return ai.NewStatusError(err.Error(), apiErr.StatusCode, ai.ParseRetryAfter(header), err)
}
