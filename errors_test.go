package blogsmith

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("Error includes cause", func(t *testing.T) {
		err := NewTransientError("rate limited", 429, errors.New("slow down"))
		assert.Equal(t, "rate limited: slow down", err.Error())
	})

	t.Run("Error without cause", func(t *testing.T) {
		err := NewPermanentError("bad key", 401, nil)
		assert.Equal(t, "bad key", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("Unwrap exposes cause to errors.Is", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewUserInputError("invalid", 400, cause)
		assert.True(t, errors.Is(err, cause))
	})
}

func TestCategories(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
		permanent bool
		userInput bool
	}{
		{"transient", NewTransientError("x", 503, nil), true, false, false},
		{"permanent", NewPermanentError("x", 403, nil), false, true, false},
		{"user input", NewUserInputError("x", 422, nil), false, false, true},
		{"wrapped transient", fmt.Errorf("chat: %w", NewTransientError("x", 500, nil)), true, false, false},
		{"plain error", errors.New("x"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.transient, IsTransient(tt.err))
			assert.Equal(t, tt.permanent, IsPermanent(tt.err))
			assert.Equal(t, tt.userInput, IsUserInput(tt.err))
		})
	}
}

func TestStatusAndRetryAfter(t *testing.T) {
	t.Run("reads metadata through wrapping", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", NewTransientErrorWithRetry("x", 429, 3*time.Second, nil))
		assert.Equal(t, 429, StatusCodeOf(err))
		assert.Equal(t, 3*time.Second, RetryAfterOf(err))
	})

	t.Run("zero for uncategorized errors", func(t *testing.T) {
		err := errors.New("x")
		assert.Zero(t, StatusCodeOf(err))
		assert.Zero(t, RetryAfterOf(err))
	})

	t.Run("Retryable follows category", func(t *testing.T) {
		assert.True(t, NewTransientError("x", 0, nil).Retryable())
		assert.False(t, NewPermanentError("x", 0, nil).Retryable())
	})
}

func TestStatusCategory(t *testing.T) {
	tests := []struct {
		code int
		want ErrorCategory
	}{
		{429, ErrorTransient},
		{500, ErrorTransient},
		{529, ErrorTransient},
		{401, ErrorPermanent},
		{403, ErrorPermanent},
		{400, ErrorUserInput},
		{404, ErrorUserInput},
		{422, ErrorUserInput},
		{418, ErrorPermanent},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCategory(tt.code))
		})
	}
}

func TestNewStatusError(t *testing.T) {
	cause := errors.New("api")

	t.Run("category from status", func(t *testing.T) {
		err := NewStatusError("bad key", 401, 0, cause)
		assert.Equal(t, ErrorPermanent, CategoryOf(err))
		assert.Equal(t, 401, err.StatusCode())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("retry delay forces transient", func(t *testing.T) {
		err := NewStatusError("quota", 403, 2*time.Second, cause)
		assert.True(t, IsTransient(err))
		assert.Equal(t, 2*time.Second, RetryAfterOf(err))
	})

	t.Run("uncategorized", func(t *testing.T) {
		assert.Equal(t, ErrorCategory(""), CategoryOf(cause))
	})
}

func TestParseRetryAfter(t *testing.T) {
	header := func(v string) http.Header {
		return http.Header{"Retry-After": []string{v}}
	}

	assert.Equal(t, 12*time.Second, ParseRetryAfter(header("12")))
	assert.Zero(t, ParseRetryAfter(header("-3")))
	assert.Zero(t, ParseRetryAfter(header("soon")))
	assert.Zero(t, ParseRetryAfter(http.Header{}))
	assert.Zero(t, ParseRetryAfter(nil))
	assert.Zero(t, ParseRetryAfter(header(time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat))))

	future := ParseRetryAfter(header(time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)))
	assert.Greater(t, future, 50*time.Second)
	assert.LessOrEqual(t, future, time.Minute)
}
