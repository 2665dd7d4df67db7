package client

import (
	"context"
	"errors"
	"testing"

	ai "github.com/spetersoncode/blogsmith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testModel implements ai.Model for testing.
type testModel struct {
	id       string
	provider ai.Provider
}

func (m testModel) String() string        { return m.id }
func (m testModel) Provider() ai.Provider { return m.provider }

func TestErrFeatureNotSupported(t *testing.T) {
	err := &ErrFeatureNotSupported{Provider: "anthropic", Feature: "image"}
	assert.Equal(t, "anthropic provider does not support image", err.Error())
}

func TestErrMissingAPIKey(t *testing.T) {
	t.Run("Error with model", func(t *testing.T) {
		err := &ErrMissingAPIKey{Provider: "anthropic", Model: "claude-sonnet"}
		assert.Equal(t, `no API key configured for anthropic (required by model "claude-sonnet")`, err.Error())
	})

	t.Run("Error without model", func(t *testing.T) {
		err := &ErrMissingAPIKey{Provider: "openai"}
		assert.Equal(t, "no API key configured for openai", err.Error())
	})
}

func TestErrNoModel(t *testing.T) {
	t.Run("known operation carries a hint", func(t *testing.T) {
		err := &ErrNoModel{Operation: "chat"}
		assert.Equal(t, "no model specified for chat: set client.Config Defaults.Chat or use ai.WithModel()", err.Error())
	})

	t.Run("unknown operation", func(t *testing.T) {
		err := &ErrNoModel{Operation: "speech"}
		assert.Equal(t, "no model specified for speech and no default configured", err.Error())
	})
}

func TestChatFailsFast(t *testing.T) {
	ctx := context.Background()
	msgs := []ai.Message{ai.UserMessage("hi")}

	t.Run("no model configured", func(t *testing.T) {
		c := New(Config{APIKeys: APIKeys{OpenAI: "key"}})
		_, err := c.Chat(ctx, msgs)
		var noModel *ErrNoModel
		require.True(t, errors.As(err, &noModel))
		assert.Equal(t, "chat", noModel.Operation)
	})

	t.Run("missing key for the model's provider", func(t *testing.T) {
		c := New(Config{
			APIKeys:  APIKeys{OpenAI: "key"},
			Defaults: Defaults{Chat: testModel{id: "claude-sonnet-4-5", provider: ai.ProviderAnthropic}},
		})
		_, err := c.Chat(ctx, msgs)
		var missing *ErrMissingAPIKey
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "anthropic", missing.Provider)
		assert.Equal(t, "claude-sonnet-4-5", missing.Model)
	})

	t.Run("request model overrides default", func(t *testing.T) {
		c := New(Config{
			APIKeys:  APIKeys{Anthropic: "key"},
			Defaults: Defaults{Chat: testModel{id: "claude-sonnet-4-5", provider: ai.ProviderAnthropic}},
		})
		_, err := c.Chat(ctx, msgs, ai.WithModel(testModel{id: "gpt-5", provider: ai.ProviderOpenAI}))
		var missing *ErrMissingAPIKey
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "openai", missing.Provider)
	})
}

func TestGenerateImageFailsFast(t *testing.T) {
	ctx := context.Background()

	t.Run("anthropic cannot make images", func(t *testing.T) {
		c := New(Config{
			APIKeys:  APIKeys{Anthropic: "key"},
			Defaults: Defaults{Image: testModel{id: "claude", provider: ai.ProviderAnthropic}},
		})
		_, err := c.GenerateImage(ctx, "a cat")
		var unsupported *ErrFeatureNotSupported
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, "image", unsupported.Feature)
	})

	t.Run("no image model", func(t *testing.T) {
		c := New(Config{APIKeys: APIKeys{OpenAI: "key"}})
		_, err := c.GenerateImage(ctx, "a cat")
		var noModel *ErrNoModel
		require.True(t, errors.As(err, &noModel))
		assert.Equal(t, "image", noModel.Operation)
	})

	t.Run("missing google key", func(t *testing.T) {
		c := New(Config{
			APIKeys:  APIKeys{OpenAI: "key"},
			Defaults: Defaults{Image: testModel{id: "imagen-4.0-generate-001", provider: ai.ProviderGoogle}},
		})
		_, err := c.GenerateImage(ctx, "a cat")
		var missing *ErrMissingAPIKey
		assert.True(t, errors.As(err, &missing))
	})
}

func TestSupportsFeature(t *testing.T) {
	gpt := testModel{id: "gpt-5", provider: ai.ProviderOpenAI}
	claude := testModel{id: "claude-sonnet-4-5", provider: ai.ProviderAnthropic}
	dalle := testModel{id: "dall-e-3", provider: ai.ProviderOpenAI}

	tests := []struct {
		name    string
		cfg     Config
		feature Feature
		want    bool
	}{
		{"chat with key", Config{APIKeys: APIKeys{OpenAI: "k"}, Defaults: Defaults{Chat: gpt}}, FeatureChat, true},
		{"chat without key", Config{APIKeys: APIKeys{Google: "k"}, Defaults: Defaults{Chat: claude}}, FeatureChat, false},
		{"chat without model", Config{APIKeys: APIKeys{OpenAI: "k"}}, FeatureChat, false},
		{"image with key", Config{APIKeys: APIKeys{OpenAI: "k"}, Defaults: Defaults{Image: dalle}}, FeatureImage, true},
		{"image on anthropic", Config{APIKeys: APIKeys{Anthropic: "k"}, Defaults: Defaults{Image: claude}}, FeatureImage, false},
		{"unknown feature", Config{APIKeys: APIKeys{OpenAI: "k"}, Defaults: Defaults{Chat: gpt}}, Feature("speech"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.cfg).SupportsFeature(tt.feature))
		})
	}
}

func TestProviderCapabilities(t *testing.T) {
	assert.False(t, providerCapabilities[ai.ProviderAnthropic][FeatureImage])
	assert.True(t, providerCapabilities[ai.ProviderOpenAI][FeatureImage])
	assert.True(t, providerCapabilities[ai.ProviderGoogle][FeatureImage])
}

func TestDo(t *testing.T) {
	ctx := context.Background()
	model := testModel{id: "gpt-5", provider: ai.ProviderOpenAI}
	noRetry := DisabledRetryConfig()

	t.Run("emits start and complete with usage", func(t *testing.T) {
		events := make(chan Event, 8)
		c := New(Config{Events: events, RetryConfig: &noRetry})

		resp, err := do(ctx, c, "chat", model, func() (*ai.Response, error) {
			return &ai.Response{Content: "ok", Usage: ai.Usage{InputTokens: 3, OutputTokens: 4}}, nil
		}, func(r *ai.Response) *ai.Usage { return &r.Usage })
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Content)

		close(events)
		var got []Event
		for ev := range events {
			if ev.Type != EventRetry {
				got = append(got, ev)
			}
		}
		require.Len(t, got, 2)
		assert.Equal(t, EventRequestStart, got[0].Type)
		assert.Equal(t, EventRequestComplete, got[1].Type)
		require.NotNil(t, got[1].Usage)
		assert.Equal(t, 4, got[1].Usage.OutputTokens)
		assert.Equal(t, "gpt-5", got[1].Model)
	})

	t.Run("emits error", func(t *testing.T) {
		events := make(chan Event, 8)
		c := New(Config{Events: events, RetryConfig: &noRetry})

		_, err := do(ctx, c, "image", model, func() (*ai.ImageResponse, error) {
			return nil, errors.New("boom")
		}, nil)
		require.Error(t, err)

		close(events)
		var last Event
		for ev := range events {
			if ev.Type != EventRetry {
				last = ev
			}
		}
		assert.Equal(t, EventRequestError, last.Type)
		assert.EqualError(t, last.Error, "boom")
	})
}
