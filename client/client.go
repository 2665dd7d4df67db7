package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	ai "github.com/spetersoncode/blogsmith"
	"github.com/spetersoncode/blogsmith/internal/provider/anthropic"
	"github.com/spetersoncode/blogsmith/internal/provider/google"
	"github.com/spetersoncode/blogsmith/internal/provider/openai"
	"github.com/spetersoncode/blogsmith/internal/retry"
)

// Feature represents a capability that a provider may support.
type Feature string

const (
	FeatureChat  Feature = "chat"
	FeatureImage Feature = "image"
)

// providerCapabilities defines which features each provider supports.
var providerCapabilities = map[ai.Provider]map[Feature]bool{
	ai.ProviderAnthropic: {
		FeatureChat:  true,
		FeatureImage: false,
	},
	ai.ProviderOpenAI: {
		FeatureChat:  true,
		FeatureImage: true,
	},
	ai.ProviderGoogle: {
		FeatureChat:  true,
		FeatureImage: true,
	},
}

// APIKeys holds API keys for different providers.
// Only configure keys for providers you intend to use.
type APIKeys struct {
	Anthropic string
	OpenAI    string
	Google    string
}

// forProvider returns the key configured for p.
func (k APIKeys) forProvider(p ai.Provider) string {
	switch p {
	case ai.ProviderAnthropic:
		return k.Anthropic
	case ai.ProviderOpenAI:
		return k.OpenAI
	case ai.ProviderGoogle:
		return k.Google
	}
	return ""
}

// Defaults holds default models for each capability.
// The model's provider determines which backend is used.
type Defaults struct {
	Chat  ai.Model
	Image ai.Model
}

// Config holds configuration for creating a unified client.
type Config struct {
	// APIKeys contains authentication keys for each provider.
	APIKeys APIKeys

	// Defaults contains default models for each capability.
	Defaults Defaults

	// RetryConfig configures retry behavior for transient errors.
	// If nil, retry.DefaultConfig is used.
	RetryConfig *RetryConfig

	// Events is an optional channel for receiving client operation events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- Event
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for chat requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for chat requests.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithMaxTokens(n))
	}
}

// WithDefaultImageOptions sets default options for image requests.
func WithDefaultImageOptions(opts ...ai.ImageOption) ClientOption {
	return func(c *Client) {
		c.defaultImageOpts = append(c.defaultImageOpts, opts...)
	}
}

// Client is a unified interface to all provider capabilities.
// Provider clients are lazily initialized when first needed.
type Client struct {
	apiKeys          APIKeys
	defaults         Defaults
	retryConfig      retry.Config
	events           chan<- Event
	defaultChatOpts  []ai.Option
	defaultImageOpts []ai.ImageOption

	mu              sync.RWMutex
	anthropicClient *anthropic.Client
	openaiClient    *openai.Client
	googleClient    *google.Client
	googleInitErr   error
}

// New creates a unified client with the given configuration.
func New(cfg Config, opts ...ClientOption) *Client {
	retryConfig := retry.DefaultConfig()
	if cfg.RetryConfig != nil {
		retryConfig = *cfg.RetryConfig
	}

	c := &Client{
		apiKeys:     cfg.APIKeys,
		defaults:    cfg.Defaults,
		retryConfig: retryConfig,
		events:      cfg.Events,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getAnthropicClient returns the Anthropic client, initializing it if needed.
func (c *Client) getAnthropicClient() (*anthropic.Client, error) {
	c.mu.RLock()
	if c.anthropicClient != nil {
		defer c.mu.RUnlock()
		return c.anthropicClient, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.anthropicClient != nil {
		return c.anthropicClient, nil
	}
	c.anthropicClient = anthropic.New(c.apiKeys.Anthropic)
	return c.anthropicClient, nil
}

// getOpenAIClient returns the OpenAI client, initializing it if needed.
func (c *Client) getOpenAIClient() (*openai.Client, error) {
	c.mu.RLock()
	if c.openaiClient != nil {
		defer c.mu.RUnlock()
		return c.openaiClient, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.openaiClient != nil {
		return c.openaiClient, nil
	}
	c.openaiClient = openai.New(c.apiKeys.OpenAI)
	return c.openaiClient, nil
}

// getGoogleClient returns the Google client, initializing it if needed.
// A failed initialization is remembered and returned on later calls.
func (c *Client) getGoogleClient(ctx context.Context) (*google.Client, error) {
	c.mu.RLock()
	if c.googleClient != nil || c.googleInitErr != nil {
		defer c.mu.RUnlock()
		return c.googleClient, c.googleInitErr
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.googleClient != nil || c.googleInitErr != nil {
		return c.googleClient, c.googleInitErr
	}

	client, err := google.New(ctx, c.apiKeys.Google)
	if err != nil {
		c.googleInitErr = fmt.Errorf("failed to initialize Google client: %w", err)
		return nil, c.googleInitErr
	}
	c.googleClient = client
	return c.googleClient, nil
}

// checkKey fails fast when model's provider has no key.
func (c *Client) checkKey(model ai.Model) error {
	if c.apiKeys.forProvider(model.Provider()) == "" {
		return &ErrMissingAPIKey{Provider: model.Provider().String(), Model: model.String()}
	}
	return nil
}

// getChatProvider returns the chat provider for the given model.
func (c *Client) getChatProvider(ctx context.Context, model ai.Model) (ai.ChatProvider, error) {
	if err := c.checkKey(model); err != nil {
		return nil, err
	}
	switch model.Provider() {
	case ai.ProviderAnthropic:
		return c.getAnthropicClient()
	case ai.ProviderOpenAI:
		return c.getOpenAIClient()
	case ai.ProviderGoogle:
		return c.getGoogleClient(ctx)
	}
	return nil, fmt.Errorf("unsupported provider: %s", model.Provider())
}

// getImageProvider returns the image provider for the given model.
func (c *Client) getImageProvider(ctx context.Context, model ai.Model) (ai.ImageProvider, error) {
	if !providerCapabilities[model.Provider()][FeatureImage] {
		return nil, &ErrFeatureNotSupported{Provider: model.Provider().String(), Feature: string(FeatureImage)}
	}
	if err := c.checkKey(model); err != nil {
		return nil, err
	}
	switch model.Provider() {
	case ai.ProviderOpenAI:
		return c.getOpenAIClient()
	case ai.ProviderGoogle:
		return c.getGoogleClient(ctx)
	}
	return nil, &ErrFeatureNotSupported{Provider: model.Provider().String(), Feature: string(FeatureImage)}
}

// Chat sends a conversation and returns a complete response.
// The model comes from ai.WithModel or the configured default. Transient
// errors are retried according to the client's retry configuration.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	opts = append(append([]ai.Option{}, c.defaultChatOpts...), opts...)
	options := ai.ApplyOptions(opts...)

	model := options.Model
	if model == nil {
		model = c.defaults.Chat
	}
	if model == nil {
		return nil, &ErrNoModel{Operation: "chat"}
	}

	provider, err := c.getChatProvider(ctx, model)
	if err != nil {
		return nil, err
	}
	if options.Model == nil {
		opts = append([]ai.Option{ai.WithModel(model)}, opts...)
	}

	return do(ctx, c, "chat", model, func() (*ai.Response, error) {
		return provider.Chat(ctx, messages, opts...)
	}, func(resp *ai.Response) *ai.Usage {
		return &resp.Usage
	})
}

// GenerateImage creates images from a text prompt.
// The model comes from ai.WithImageModel or the configured default.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (*ai.ImageResponse, error) {
	opts = append(append([]ai.ImageOption{}, c.defaultImageOpts...), opts...)
	options := ai.ApplyImageOptions(opts...)

	model := options.Model
	if model == nil {
		model = c.defaults.Image
	}
	if model == nil {
		return nil, &ErrNoModel{Operation: "image"}
	}

	provider, err := c.getImageProvider(ctx, model)
	if err != nil {
		return nil, err
	}
	if options.Model == nil {
		opts = append([]ai.ImageOption{ai.WithImageModel(model)}, opts...)
	}

	return do(ctx, c, "image", model, func() (*ai.ImageResponse, error) {
		return provider.GenerateImage(ctx, prompt, opts...)
	}, nil)
}

// do runs fn under the retry policy and reports request events.
func do[T any](ctx context.Context, c *Client, operation string, model ai.Model, fn func() (T, error), usage func(T) *ai.Usage) (T, error) {
	provider := model.Provider()
	start := time.Now()
	emit(c.events, Event{Type: EventRequestStart, Operation: operation, Provider: provider, Model: model.String()})

	var retryEvents chan retry.Event
	var forwarded sync.WaitGroup
	if c.events != nil {
		retryEvents = make(chan retry.Event, 10)
		forwarded.Add(1)
		go func() {
			defer forwarded.Done()
			c.forwardRetryEvents(retryEvents, operation, provider, model.String())
		}()
	}

	resp, err := retry.DoWithEvents(ctx, c.retryConfig, retryEvents, fn)

	if retryEvents != nil {
		close(retryEvents)
		forwarded.Wait()
	}

	if err != nil {
		emit(c.events, Event{
			Type:      EventRequestError,
			Operation: operation,
			Provider:  provider,
			Model:     model.String(),
			Duration:  time.Since(start),
			Error:     err,
		})
		return resp, err
	}

	ev := Event{
		Type:      EventRequestComplete,
		Operation: operation,
		Provider:  provider,
		Model:     model.String(),
		Duration:  time.Since(start),
	}
	if usage != nil {
		ev.Usage = usage(resp)
	}
	emit(c.events, ev)
	return resp, nil
}

// SupportsFeature reports whether the feature can be served by the
// configured default model for it.
func (c *Client) SupportsFeature(f Feature) bool {
	var model ai.Model
	switch f {
	case FeatureChat:
		model = c.defaults.Chat
	case FeatureImage:
		model = c.defaults.Image
	default:
		return false
	}
	if model == nil {
		return false
	}
	return providerCapabilities[model.Provider()][f] && c.apiKeys.forProvider(model.Provider()) != ""
}

// DefaultChatModel returns the configured default chat model, or nil.
func (c *Client) DefaultChatModel() ai.Model { return c.defaults.Chat }

// DefaultImageModel returns the configured default image model, or nil.
func (c *Client) DefaultImageModel() ai.Model { return c.defaults.Image }

// forwardRetryEvents forwards retry events to the client's event channel
// as EventRetry events.
func (c *Client) forwardRetryEvents(retryEvents <-chan retry.Event, operation string, provider ai.Provider, model string) {
	for re := range retryEvents {
		emit(c.events, Event{
			Type:       EventRetry,
			Operation:  operation,
			Provider:   provider,
			Model:      model,
			RetryEvent: &re,
		})
	}
}
