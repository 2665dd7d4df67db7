package blog

import (
	"log/slog"
	"time"

	"github.com/spetersoncode/blogsmith/event"
	"github.com/spetersoncode/blogsmith/workflow"
)

type options struct {
	mode           RewriteMode
	threshold      int
	maxRewrites    int
	scoreFormat    ScoreFormat
	trendQuery     string
	trendResults   int
	observer       event.Observer
	logger         *slog.Logger
	maxTransitions int
	stageTimeout   time.Duration
	runTimeout     time.Duration
}

// Option configures a Pipeline.
type Option func(*options)

// WithRewriteMode selects automatic or caller-driven rewrites.
func WithRewriteMode(m RewriteMode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithThreshold sets the score at or below which a draft is rewritten.
func WithThreshold(score int) Option {
	return func(o *options) {
		o.threshold = score
	}
}

// WithMaxRewrites sets the rewrite budget per run.
func WithMaxRewrites(n int) Option {
	return func(o *options) {
		o.maxRewrites = n
	}
}

// WithScoreFormat selects the scoring response layout.
func WithScoreFormat(f ScoreFormat) Option {
	return func(o *options) {
		o.scoreFormat = f
	}
}

// WithTrendQuery sets the query sent to the trend retriever and the
// number of results requested.
func WithTrendQuery(query string, results int) Option {
	return func(o *options) {
		o.trendQuery = query
		o.trendResults = results
	}
}

// WithObserver sets the observer that receives progress events.
func WithObserver(obs event.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMaxTransitions bounds the number of stage executions per run. The
// bound is raised to whatever the rewrite budget needs to reach art
// direction.
func WithMaxTransitions(n int) Option {
	return func(o *options) {
		o.maxTransitions = n
	}
}

// WithStageTimeout bounds each stage.
func WithStageTimeout(d time.Duration) Option {
	return func(o *options) {
		o.stageTimeout = d
	}
}

// WithRunTimeout bounds a whole run, rewrites included. A run that hits
// it returns context.DeadlineExceeded.
func WithRunTimeout(d time.Duration) Option {
	return func(o *options) {
		o.runTimeout = d
	}
}

func applyOptions(opts []Option) options {
	o := options{
		mode:           RewriteAuto,
		threshold:      DefaultThreshold,
		maxRewrites:    DefaultMaxRewrites,
		scoreFormat:    ScoreFormatJSON,
		trendQuery:     DefaultTrendQuery,
		trendResults:   DefaultTrendResults,
		maxTransitions: workflow.DefaultMaxTransitions,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.trendQuery == "" {
		o.trendQuery = DefaultTrendQuery
	}
	if o.trendResults <= 0 {
		o.trendResults = DefaultTrendResults
	}
	if o.maxRewrites < 0 {
		o.maxRewrites = 0
	}
	if need := transitionsFor(o.maxRewrites); o.maxTransitions < need {
		o.maxTransitions = need
	}
	if o.observer == nil {
		o.observer = event.Discard
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// transitionsFor returns the stage executions of a run that spends the
// whole rewrite budget: research, seo and art once, writing and scoring
// once per draft.
func transitionsFor(maxRewrites int) int {
	return 3 + 2*(maxRewrites+1)
}
