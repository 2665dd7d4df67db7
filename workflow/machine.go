package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/spetersoncode/blogsmith/event"
)

// Transition decides the node that follows from, given the state after
// from's patch was merged. The returned patch is merged before the next
// stage runs and may be nil.
type Transition[N comparable] func(from N, s *State) (N, Patch)

// Result describes a finished run.
type Result[N comparable] struct {
	// Terminal is the terminal node the run stopped at.
	Terminal N

	// Path lists every node entered, start and terminal included.
	Path []N

	Duration time.Duration
}

// Machine executes stages keyed by node until a terminal node is reached.
// A Machine holds no per-run data and may be shared by concurrent runs on
// distinct states.
type Machine[N comparable] struct {
	stages   map[N]Stage
	next     Transition[N]
	terminal map[N]struct{}
}

// NewMachine creates a machine. Every node returned by next must either
// have a stage or be listed in terminal.
func NewMachine[N comparable](stages map[N]Stage, next Transition[N], terminal []N) *Machine[N] {
	m := &Machine[N]{
		stages:   make(map[N]Stage, len(stages)),
		next:     next,
		terminal: make(map[N]struct{}, len(terminal)),
	}
	for n, st := range stages {
		m.stages[n] = st
	}
	for _, n := range terminal {
		m.terminal[n] = struct{}{}
	}
	return m
}

// IsTerminal reports whether n ends a run.
func (m *Machine[N]) IsTerminal(n N) bool {
	_, ok := m.terminal[n]
	return ok
}

// Run executes from start until a terminal node. The returned Result is
// non-nil even on error and records the path taken so far.
func (m *Machine[N]) Run(ctx context.Context, start N, s *State, opts ...Option) (*Result[N], error) {
	options := ApplyOptions(opts...)
	obs := options.Observer
	begin := time.Now()

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	res := &Result[N]{}
	fail := func(err error) (*Result[N], error) {
		res.Duration = time.Since(begin)
		obs.OnEvent(event.Event{Type: event.RunError, RunID: options.RunID, Error: err, Timestamp: time.Now()})
		return res, err
	}

	obs.OnEvent(event.Event{Type: event.RunStart, RunID: options.RunID, Stage: nodeName(start), Timestamp: time.Now()})

	node := start
	for steps := 0; ; steps++ {
		res.Path = append(res.Path, node)

		if m.IsTerminal(node) {
			res.Terminal = node
			res.Duration = time.Since(begin)
			obs.OnEvent(event.Event{Type: event.RunEnd, RunID: options.RunID, Stage: nodeName(node), Timestamp: time.Now()})
			return res, nil
		}

		stage, ok := m.stages[node]
		if !ok {
			return fail(fmt.Errorf("%w: %v", ErrUnknownNode, node))
		}
		if steps >= options.MaxTransitions {
			return fail(&StageError{Stage: stage.Name(), Err: ErrMaxTransitions})
		}
		if err := ctx.Err(); err != nil {
			return fail(&StageError{Stage: stage.Name(), Err: err})
		}

		patch, err := m.runStage(ctx, stage, s, options)
		if err != nil {
			return fail(&StageError{Stage: stage.Name(), Err: err})
		}
		if err := s.Merge(patch); err != nil {
			return fail(&StageError{Stage: stage.Name(), Err: err})
		}
		obs.OnEvent(event.Event{Type: event.StageEnd, RunID: options.RunID, Stage: stage.Name(), Timestamp: time.Now()})

		to, routePatch := m.next(node, s)
		if err := s.Merge(routePatch); err != nil {
			return fail(&StageError{Stage: stage.Name(), Err: err})
		}
		obs.OnEvent(event.Event{
			Type:      event.RouteSelected,
			RunID:     options.RunID,
			Stage:     nodeName(node),
			Next:      nodeName(to),
			Timestamp: time.Now(),
		})
		node = to
	}
}

func (m *Machine[N]) runStage(ctx context.Context, stage Stage, s *State, options *Options) (Patch, error) {
	options.Observer.OnEvent(event.Event{Type: event.StageStart, RunID: options.RunID, Stage: stage.Name(), Timestamp: time.Now()})
	if options.StageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.StageTimeout)
		defer cancel()
	}
	return stage.Run(ctx, s)
}

func nodeName[N comparable](n N) string {
	return fmt.Sprint(n)
}
