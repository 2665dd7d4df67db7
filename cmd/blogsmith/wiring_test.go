package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/blogsmith/blog"
	"github.com/spetersoncode/blogsmith/workflow"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := LoadConfig("", envMap(map[string]string{"OPENAI_API_KEY": "sk-test"}))
	require.NoError(t, err)
	cfg.SearchProvider = "none"
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewApp(t *testing.T) {
	t.Run("wires text and image models", func(t *testing.T) {
		a, err := newApp(context.Background(), testConfig(t), discardLogger(), nil)
		require.NoError(t, err)
		defer a.close()

		assert.Equal(t, "gpt-5", a.chatModel.String())
		assert.Equal(t, "dall-e-3", a.imageModel.String())
		assert.NotNil(t, a.images)
		assert.Nil(t, a.posts)
		assert.Equal(t, blog.RewriteAuto, a.pipeline.Router().Mode)
	})

	t.Run("no images", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.ImageProvider = "none"
		cfg.TextModel = "gpt-5-mini"

		a, err := newApp(context.Background(), cfg, discardLogger(), nil, blog.WithRewriteMode(blog.RewriteManual))
		require.NoError(t, err)
		defer a.close()

		assert.Equal(t, "gpt-5-mini", a.chatModel.String())
		assert.Nil(t, a.images)
		assert.Equal(t, blog.RewriteManual, a.pipeline.Router().Mode)
	})

	t.Run("router settings", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Threshold = 75
		cfg.MaxRewrites = 1

		a, err := newApp(context.Background(), cfg, discardLogger(), nil)
		require.NoError(t, err)
		defer a.close()

		assert.Equal(t, blog.Router{Mode: blog.RewriteAuto, Threshold: 75, MaxRewrites: 1}, a.pipeline.Router())
	})

	t.Run("warns when the generate timeout leaves no room for retries", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.GenerateTimeout = time.Second

		var buf bytes.Buffer
		a, err := newApp(context.Background(), cfg, slog.New(slog.NewTextHandler(&buf, nil)), nil)
		require.NoError(t, err)
		defer a.close()
		assert.Contains(t, buf.String(), `msg="generate timeout cuts provider retries short" generate_timeout=1s`)
	})

	t.Run("image style and format", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.ImageStyle = "natural"
		cfg.ImageFormat = "b64_json"

		var buf bytes.Buffer
		a, err := newApp(context.Background(), cfg, slog.New(slog.NewTextHandler(&buf, nil)), nil)
		require.NoError(t, err)
		defer a.close()
		assert.NotNil(t, a.images)
		assert.NotContains(t, buf.String(), "generate timeout")
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.OpenAIKey = ""
		_, err := newApp(context.Background(), cfg, discardLogger(), nil)
		assert.ErrorContains(t, err, "OPENAI_API_KEY")
	})

	t.Run("keeps posts in the store dir", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.StoreDir = filepath.Join(t.TempDir(), "runs")

		a, err := newApp(context.Background(), cfg, discardLogger(), nil)
		require.NoError(t, err)
		defer a.close()
		require.NotNil(t, a.posts)

		out := &blog.Outcome{
			RunID:    "run-42",
			Terminal: blog.NodeTerminatedSuccess,
			State:    workflow.NewState(map[string]any{blog.FieldSourceURL: "https://x.example", blog.FieldDraftBody: "body"}),
		}
		require.NoError(t, a.keep(context.Background(), out))

		post, err := a.posts.Load(context.Background(), "run-42")
		require.NoError(t, err)
		assert.Equal(t, "body", post.Body)
		assert.FileExists(t, filepath.Join(cfg.StoreDir, "run-42.json"))
	})
}

func TestWriteOutcome(t *testing.T) {
	t.Run("success prints markdown and saves json", func(t *testing.T) {
		var stdout bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&stdout)

		out := &blog.Outcome{
			Terminal: blog.NodeTerminatedSuccess,
			State: workflow.NewState(blog.Post{
				SourceURL: "https://x.example",
				Title:     "Hello",
				Body:      "## One\ntext",
			}.Patch()),
		}
		path := filepath.Join(t.TempDir(), "out", "post.json")
		require.NoError(t, writeOutcome(cmd, out, path, ""))

		assert.Contains(t, stdout.String(), "# Hello")
		post, err := readPost(path)
		require.NoError(t, err)
		assert.Equal(t, "Hello", post.Title)
	})

	t.Run("failure saves state and returns the marker", func(t *testing.T) {
		var stdout bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&stdout)

		out := &blog.Outcome{
			Terminal: blog.NodeTerminatedFailure,
			State: workflow.NewState(map[string]any{
				blog.FieldSourceURL:    "https://down.example",
				blog.FieldScrapedText:  blog.FailureMarker(blog.ReasonNetwork, ""),
				blog.FieldScrapeFailed: true,
			}),
		}
		path := filepath.Join(t.TempDir(), "post.json")
		err := writeOutcome(cmd, out, path, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), blog.FailureTag)
		assert.Empty(t, stdout.String())

		data, rerr := os.ReadFile(path)
		require.NoError(t, rerr)
		assert.Contains(t, string(data), `"scrape_failed": true`)
	})
}
