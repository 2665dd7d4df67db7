package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"google.golang.org/api/option"

	ai "github.com/spetersoncode/blogsmith"
	"github.com/spetersoncode/blogsmith/blog"
	"github.com/spetersoncode/blogsmith/client"
	"github.com/spetersoncode/blogsmith/fetch"
	"github.com/spetersoncode/blogsmith/model"
	"github.com/spetersoncode/blogsmith/search"
	"github.com/spetersoncode/blogsmith/store"
)

// app is a wired pipeline plus what is needed to report its cost.
type app struct {
	pipeline   *blog.Pipeline
	log        *slog.Logger
	generator  *blog.ChatGenerator
	images     *blog.ImageRenderer
	chatModel  model.ChatModel
	imageModel model.ImageModel
	events     chan client.Event

	// posts is nil unless a store directory is configured.
	posts *store.Posts
}

// newApp validates cfg and wires the pipeline. Progress lines go to
// progressOut when it is non-nil.
func newApp(ctx context.Context, cfg *Config, log *slog.Logger, progressOut io.Writer, extra ...blog.Option) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	textProvider, _ := ai.ParseProvider(cfg.TextProvider)
	chatModel, ok := model.LookupChat(textProvider, cfg.TextModel)
	if !ok {
		return nil, fmt.Errorf("no chat model %q for provider %s", cfg.TextModel, textProvider)
	}

	a := &app{log: log, chatModel: chatModel, events: make(chan client.Event, 100)}
	defaults := client.Defaults{Chat: chatModel}

	if cfg.ImageProvider != "none" {
		imageProvider, _ := ai.ParseProvider(cfg.ImageProvider)
		imageModel, ok := model.LookupImage(imageProvider, cfg.ImageModel)
		if !ok {
			return nil, fmt.Errorf("no image model %q for provider %s", cfg.ImageModel, imageProvider)
		}
		a.imageModel = imageModel
		defaults.Image = imageModel
	}

	c := client.New(client.Config{
		APIKeys: client.APIKeys{
			Anthropic: cfg.AnthropicKey,
			OpenAI:    cfg.OpenAIKey,
			Google:    cfg.GoogleKey,
		},
		Defaults: defaults,
		Events:   a.events,
	}, client.WithDefaultTemperature(cfg.Temperature))
	go logClientEvents(log, a.events)

	if wait := client.DefaultRetryConfig().MaxWait(); cfg.GenerateTimeout > 0 && cfg.GenerateTimeout <= wait {
		log.Warn("generate timeout cuts provider retries short",
			"generate_timeout", cfg.GenerateTimeout, "retry_wait", wait)
	}
	a.generator = blog.NewChatGenerator(c, blog.WithGenerateTimeout(cfg.GenerateTimeout))
	deps := blog.Deps{
		Fetcher: fetch.New(&fetch.Options{
			Timeout:          cfg.FetchTimeout,
			AllowInsecureTLS: cfg.InsecureTLS,
			Browser:          cfg.Browser,
		}),
		Generator: a.generator,
	}

	if defaults.Image != nil {
		imageOpts, err := ai.ImageSettings{
			Size:    cfg.ImageSize,
			Quality: cfg.ImageQuality,
			Style:   cfg.ImageStyle,
			Format:  cfg.ImageFormat,
		}.Options(a.imageModel.Provider())
		if err != nil {
			return nil, err
		}
		a.images = blog.NewImageRenderer(c, imageOpts...)
		deps.Images = a.images
	}

	switch cfg.SearchProvider {
	case "tavily":
		deps.Retriever = search.NewTavily(cfg.TavilyKey, "")
	case "google":
		g, err := search.NewGoogle(ctx, cfg.GoogleSearchKey, cfg.GoogleSearchCX, nil, option.WithUserAgent("blogsmith"))
		if err != nil {
			return nil, err
		}
		deps.Retriever = g
	}

	mode, _ := blog.ParseRewriteMode(cfg.RewriteMode)
	format, _ := blog.ParseScoreFormat(cfg.ScoreFormat)
	opts := []blog.Option{
		blog.WithRewriteMode(mode),
		blog.WithThreshold(cfg.Threshold),
		blog.WithMaxRewrites(cfg.MaxRewrites),
		blog.WithScoreFormat(format),
		blog.WithTrendQuery(cfg.TrendQuery, cfg.TrendResults),
		blog.WithLogger(log),
		blog.WithStageTimeout(cfg.StageTimeout),
		blog.WithRunTimeout(cfg.RunTimeout),
	}
	if progressOut != nil {
		opts = append(opts, blog.WithObserver(progress(progressOut)))
	}
	a.pipeline = blog.New(deps, append(opts, extra...)...)

	if cfg.StoreDir != "" {
		adapter, err := store.NewDirAdapter(cfg.StoreDir)
		if err != nil {
			return nil, err
		}
		a.posts = store.NewPosts(adapter)
	}

	log.Debug("pipeline ready",
		"text_model", chatModel.String(),
		"image_model", a.imageModel.String(),
		"search", cfg.SearchProvider,
		"rewrite_mode", mode)
	return a, nil
}

// logUsage reports token usage, image count and estimated cost.
func (a *app) logUsage() {
	usage, calls := a.generator.Usage()
	cost := a.chatModel.Cost(usage)
	images := 0
	if a.images != nil {
		images = a.images.Count()
		cost += a.imageModel.Pricing().Cost(images)
	}
	a.log.Info("usage",
		"requests", calls,
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
		"images", images,
		"estimated_cost_usd", fmt.Sprintf("%.4f", cost))
}

// keep saves the outcome's post when a store is configured.
func (a *app) keep(ctx context.Context, out *blog.Outcome) error {
	if a.posts == nil {
		return nil
	}
	if err := a.posts.Save(ctx, out.RunID, out.Post()); err != nil {
		return err
	}
	a.log.Info("post saved", "run_id", out.RunID)
	return nil
}

// close stops client event logging.
func (a *app) close() {
	close(a.events)
}
