package blog

import (
	"context"
	"strings"
	"sync"
	"time"

	ai "github.com/spetersoncode/blogsmith"
)

// Chatter is the chat surface of client.Client.
type Chatter interface {
	Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)
}

// Imager is the image surface of client.Client.
type Imager interface {
	GenerateImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (*ai.ImageResponse, error)
}

// ChatGenerator adapts a chat client to TextGenerator and keeps a running
// total of token usage. It is safe for concurrent use.
type ChatGenerator struct {
	chat    Chatter
	opts    []ai.Option
	timeout time.Duration

	mu    sync.Mutex
	usage ai.Usage
	calls int
}

// ChatGeneratorOption configures a ChatGenerator.
type ChatGeneratorOption func(*ChatGenerator)

// WithChatOptions passes options to every chat request.
func WithChatOptions(opts ...ai.Option) ChatGeneratorOption {
	return func(g *ChatGenerator) {
		g.opts = append(g.opts, opts...)
	}
}

// WithGenerateTimeout bounds each generation request.
func WithGenerateTimeout(d time.Duration) ChatGeneratorOption {
	return func(g *ChatGenerator) {
		g.timeout = d
	}
}

// NewChatGenerator creates a TextGenerator over chat.
func NewChatGenerator(chat Chatter, opts ...ChatGeneratorOption) *ChatGenerator {
	g := &ChatGenerator{chat: chat}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends p as a system and a user message.
func (g *ChatGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	msgs := make([]ai.Message, 0, 2)
	if p.System != "" {
		msgs = append(msgs, ai.SystemMessage(p.System))
	}
	msgs = append(msgs, ai.UserMessage(p.User))

	opts := g.opts
	if p.JSON {
		opts = append(append([]ai.Option{}, g.opts...), ai.WithJSONResponse())
	}

	resp, err := g.chat.Chat(ctx, msgs, opts...)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	g.usage = g.usage.Add(resp.Usage)
	g.calls++
	g.mu.Unlock()

	return strings.TrimSpace(resp.Content), nil
}

// Usage returns the accumulated token usage and the number of successful
// requests.
func (g *ChatGenerator) Usage() (ai.Usage, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.usage, g.calls
}

// ImageRenderer adapts an image client to ImageGenerator.
type ImageRenderer struct {
	images Imager
	opts   []ai.ImageOption
	count  int
	mu     sync.Mutex
}

// NewImageRenderer creates an ImageGenerator over images. opts apply to
// every request, e.g. ai.WithImageSize.
func NewImageRenderer(images Imager, opts ...ai.ImageOption) *ImageRenderer {
	return &ImageRenderer{images: images, opts: opts}
}

// GenerateImage renders one image and returns its URL or data URI.
func (r *ImageRenderer) GenerateImage(ctx context.Context, prompt string) (string, error) {
	opts := append(append([]ai.ImageOption{}, r.opts...), ai.WithImageCount(1))
	resp, err := r.images.GenerateImage(ctx, prompt, opts...)
	if err != nil {
		return "", err
	}
	ref := resp.First()
	if ref == "" {
		return "", ErrNoImage
	}
	r.mu.Lock()
	r.count++
	r.mu.Unlock()
	return ref, nil
}

// Count returns the number of images rendered.
func (r *ImageRenderer) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
