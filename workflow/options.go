package workflow

import (
	"time"

	"github.com/spetersoncode/blogsmith/event"
)

// DefaultMaxTransitions bounds a run when no WithMaxTransitions option is given.
const DefaultMaxTransitions = 32

// Options contains configuration for one machine run.
type Options struct {
	// MaxTransitions caps the number of stage executions.
	MaxTransitions int

	// Timeout sets a deadline for the entire run.
	Timeout time.Duration

	// StageTimeout sets a deadline for each stage.
	StageTimeout time.Duration

	// Observer receives run, stage and route events.
	Observer event.Observer

	// RunID tags every emitted event.
	RunID string
}

// Option is a functional option for machine runs.
type Option func(*Options)

// WithMaxTransitions caps the number of stage executions in a run.
func WithMaxTransitions(n int) Option {
	return func(o *Options) {
		o.MaxTransitions = n
	}
}

// WithTimeout sets the overall run timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithStageTimeout sets the timeout for each stage.
func WithStageTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.StageTimeout = d
	}
}

// WithObserver sets the event observer.
func WithObserver(obs event.Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

// WithRunID sets the identifier attached to emitted events.
func WithRunID(id string) Option {
	return func(o *Options) {
		o.RunID = id
	}
}

// ApplyOptions applies functional options to an Options struct.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{MaxTransitions: DefaultMaxTransitions}
	for _, opt := range opts {
		opt(o)
	}
	if o.MaxTransitions <= 0 {
		o.MaxTransitions = DefaultMaxTransitions
	}
	if o.Observer == nil {
		o.Observer = event.Discard
	}
	return o
}
