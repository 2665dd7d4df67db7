package workflow

import "context"

// Stage is one unit of work in a run. It reads state and returns the patch
// to merge; it must not mutate state directly.
type Stage interface {
	// Name returns a stable identifier used in events and errors.
	Name() string

	// Run executes the stage. A non-nil error aborts the run.
	Run(ctx context.Context, s *State) (Patch, error)
}

// StageFunc is a function signature for simple stage implementations.
type StageFunc func(ctx context.Context, s *State) (Patch, error)

type funcStage struct {
	name string
	fn   StageFunc
}

// NewStage creates a stage from a function.
func NewStage(name string, fn StageFunc) Stage {
	return &funcStage{name: name, fn: fn}
}

func (f *funcStage) Name() string { return f.name }

func (f *funcStage) Run(ctx context.Context, s *State) (Patch, error) {
	return f.fn(ctx, s)
}
