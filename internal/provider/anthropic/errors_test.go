package anthropic

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/spetersoncode/blogsmith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	newAPIError := func(status int, header http.Header) *anthropic.Error {
		req, err := http.NewRequest(http.MethodPost, "https://api.anthropic.com/v1/messages", nil)
		require.NoError(t, err)
		return &anthropic.Error{
			StatusCode: status,
			Request:    req,
			Response:   &http.Response{StatusCode: status, Header: header},
		}
	}

	t.Run("overloaded is transient", func(t *testing.T) {
		err := wrapError(newAPIError(529, http.Header{}))
		assert.True(t, ai.IsTransient(err))
		assert.Equal(t, 529, ai.StatusCodeOf(err))
	})

	t.Run("retry after is kept", func(t *testing.T) {
		err := wrapError(newAPIError(429, http.Header{"Retry-After": []string{"7"}}))
		assert.Equal(t, 7*time.Second, ai.RetryAfterOf(err))
	})

	t.Run("bad request is user input", func(t *testing.T) {
		assert.True(t, ai.IsUserInput(wrapError(newAPIError(400, http.Header{}))))
	})

	t.Run("other errors pass through", func(t *testing.T) {
		err := errors.New("dial tcp: refused")
		assert.Same(t, err, wrapError(err))
		assert.NoError(t, wrapError(nil))
	})
}
