package blog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/blogsmith"
)

type fakeChat struct {
	messages []ai.Message
	options  *ai.Options
	deadline bool
	resp     *ai.Response
	err      error
}

func (f *fakeChat) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	f.messages = messages
	f.options = ai.ApplyOptions(opts...)
	_, f.deadline = ctx.Deadline()
	return f.resp, f.err
}

type fakeImageClient struct {
	options *ai.ImageOptions
	resp    *ai.ImageResponse
	err     error
}

func (f *fakeImageClient) GenerateImage(_ context.Context, _ string, opts ...ai.ImageOption) (*ai.ImageResponse, error) {
	f.options = ai.ApplyImageOptions(opts...)
	return f.resp, f.err
}

func TestChatGenerator(t *testing.T) {
	t.Run("system and user messages", func(t *testing.T) {
		chat := &fakeChat{resp: &ai.Response{Content: "  answer \n", Usage: ai.Usage{InputTokens: 10, OutputTokens: 5}}}
		g := NewChatGenerator(chat, WithChatOptions(ai.WithMaxTokens(500)))

		text, err := g.Generate(context.Background(), Prompt{Task: TaskTitle, System: "sys", User: "usr"})
		require.NoError(t, err)
		assert.Equal(t, "answer", text)
		assert.Equal(t, []ai.Message{ai.SystemMessage("sys"), ai.UserMessage("usr")}, chat.messages)
		assert.Equal(t, 500, chat.options.MaxTokens)
		assert.Equal(t, ai.ResponseFormatText, chat.options.ResponseFormat)
		assert.False(t, chat.deadline)
	})

	t.Run("no system prompt", func(t *testing.T) {
		chat := &fakeChat{resp: &ai.Response{Content: "x"}}
		_, err := NewChatGenerator(chat).Generate(context.Background(), Prompt{User: "usr"})
		require.NoError(t, err)
		assert.Equal(t, []ai.Message{ai.UserMessage("usr")}, chat.messages)
	})

	t.Run("json and timeout", func(t *testing.T) {
		chat := &fakeChat{resp: &ai.Response{Content: "{}"}}
		g := NewChatGenerator(chat, WithGenerateTimeout(time.Minute))

		_, err := g.Generate(context.Background(), Prompt{User: "u", JSON: true})
		require.NoError(t, err)
		assert.Equal(t, ai.ResponseFormatJSON, chat.options.ResponseFormat)
		assert.True(t, chat.deadline)
	})

	t.Run("accumulates usage", func(t *testing.T) {
		chat := &fakeChat{resp: &ai.Response{Content: "x", Usage: ai.Usage{InputTokens: 3, OutputTokens: 2}}}
		g := NewChatGenerator(chat)
		for i := 0; i < 3; i++ {
			_, err := g.Generate(context.Background(), Prompt{User: "u"})
			require.NoError(t, err)
		}
		chat.err = errors.New("down")
		_, err := g.Generate(context.Background(), Prompt{User: "u"})
		require.Error(t, err)

		usage, calls := g.Usage()
		assert.Equal(t, ai.Usage{InputTokens: 9, OutputTokens: 6}, usage)
		assert.Equal(t, 3, calls)
	})
}

func TestImageRenderer(t *testing.T) {
	t.Run("returns the first ref", func(t *testing.T) {
		client := &fakeImageClient{resp: &ai.ImageResponse{Images: []ai.GeneratedImage{{Base64: "AAAA"}}}}
		r := NewImageRenderer(client, ai.WithImageSize(ai.ImageSize1792x1024))

		ref, err := r.GenerateImage(context.Background(), "a gopher")
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,AAAA", ref)
		assert.Equal(t, 1, client.options.Count)
		assert.Equal(t, ai.ImageSize1792x1024, client.options.Size)
		assert.Equal(t, 1, r.Count())
	})

	t.Run("empty response", func(t *testing.T) {
		r := NewImageRenderer(&fakeImageClient{resp: &ai.ImageResponse{}})
		_, err := r.GenerateImage(context.Background(), "a gopher")
		assert.ErrorIs(t, err, ErrNoImage)
		assert.Equal(t, 0, r.Count())
	})

	t.Run("client error", func(t *testing.T) {
		r := NewImageRenderer(&fakeImageClient{err: errors.New("quota")})
		_, err := r.GenerateImage(context.Background(), "a gopher")
		assert.EqualError(t, err, "quota")
	})
}
