package openai

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/openai/openai-go"
	ai "github.com/spetersoncode/blogsmith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, wrapError(nil))
	})

	t.Run("non-API errors pass through", func(t *testing.T) {
		err := errors.New("dial tcp: refused")
		assert.Same(t, err, wrapError(err))
	})

	t.Run("rate limit becomes transient with retry delay", func(t *testing.T) {
		err := wrapError(newAPIError(t, 429, "rate_limit_exceeded", http.Header{"Retry-After": []string{"3"}}))
		require.Error(t, err)
		assert.True(t, ai.IsTransient(err))
		assert.Equal(t, 3*time.Second, ai.RetryAfterOf(err))
		assert.Equal(t, 429, ai.StatusCodeOf(err))
	})

	t.Run("exhausted quota is not retried", func(t *testing.T) {
		err := wrapError(newAPIError(t, 429, "insufficient_quota", http.Header{}))
		assert.True(t, ai.IsPermanent(err))
		assert.Equal(t, 429, ai.StatusCodeOf(err))
	})

	t.Run("rejected image prompt is user input", func(t *testing.T) {
		err := wrapError(newAPIError(t, 400, "content_policy_violation", http.Header{}))
		assert.True(t, ai.IsUserInput(err))
	})

	t.Run("auth failure becomes permanent", func(t *testing.T) {
		assert.True(t, ai.IsPermanent(wrapError(newAPIError(t, 401, "invalid_api_key", http.Header{}))))
	})
}

func newAPIError(t *testing.T, status int, code string, header http.Header) *openai.Error {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "https://api.openai.com/v1/images/generations", nil)
	require.NoError(t, err)
	return &openai.Error{
		Code:       code,
		StatusCode: status,
		Request:    req,
		Response:   &http.Response{StatusCode: status, Header: header},
	}
}
