package blog

import (
	"context"
	"strings"
	"time"

	ai "github.com/spetersoncode/blogsmith"
	"github.com/spetersoncode/blogsmith/event"
	"github.com/spetersoncode/blogsmith/workflow"
)

// Deps are the external collaborators of a pipeline. Any of them may be
// nil: research then fails, and the other stages degrade.
type Deps struct {
	Fetcher   ContentFetcher
	Retriever TrendRetriever
	Generator TextGenerator
	Images    ImageGenerator
}

// Pipeline runs the blog state machine. It holds only read-only
// collaborators and is safe for concurrent runs on distinct states.
type Pipeline struct {
	deps   Deps
	opts   options
	router Router
	stages map[Node]workflow.Stage
}

// New creates a pipeline.
func New(deps Deps, opts ...Option) *Pipeline {
	o := applyOptions(opts)
	report := &reporter{obs: o.observer, log: o.logger}
	return &Pipeline{
		deps:   deps,
		opts:   o,
		router: Router{Mode: o.mode, Threshold: o.threshold, MaxRewrites: o.maxRewrites},
		stages: map[Node]workflow.Stage{
			NodeResearch: &researchStage{fetcher: deps.Fetcher, report: report},
			NodeSEO: &seoStage{
				retriever: deps.Retriever,
				generator: deps.Generator,
				query:     o.trendQuery,
				results:   o.trendResults,
				report:    report,
			},
			NodeWriting: &writingStage{generator: deps.Generator, report: report},
			NodeScoring: &scoringStage{generator: deps.Generator, format: o.scoreFormat, report: report},
			NodeArt:     &artStage{generator: deps.Generator, images: deps.Images, report: report},
		},
	}
}

// Router returns the transition function in use.
func (p *Pipeline) Router() Router { return p.router }

// Outcome is the result of a run.
type Outcome struct {
	RunID string

	// Terminal is NodeNone when the run returned an error.
	Terminal Node
	State    *workflow.State
	Path     []Node
	Duration time.Duration
}

// Failed reports whether the run ended because the source could not be
// fetched.
func (o *Outcome) Failed() bool {
	return o.Terminal == NodeTerminatedFailure
}

// Post returns a typed snapshot of the final state.
func (o *Outcome) Post() Post {
	return PostFrom(o.State)
}

// Run executes a fresh run. initial must hold a non-empty source_url
// string; other keys are carried into the state as given. source_url is
// sealed for the rest of the run.
func (p *Pipeline) Run(ctx context.Context, initial map[string]any) (*Outcome, error) {
	url, _ := initial[FieldSourceURL].(string)
	if strings.TrimSpace(url) == "" {
		return nil, ErrMissingSourceURL
	}
	s := workflow.NewState(initial)
	s.Seal(FieldSourceURL)
	return p.execute(ctx, NodeResearch, s)
}

// ResumeWithRewriteFeedback re-enters a finished run at writing with a
// caller-requested rewrite. It works on a clone, so state is left as it
// was. Only pipelines in RewriteManual mode accept it.
func (p *Pipeline) ResumeWithRewriteFeedback(ctx context.Context, state *workflow.State, feedback string) (*Outcome, error) {
	if p.opts.mode != RewriteManual {
		return nil, ErrManualRewriteDisabled
	}
	if state == nil || scrapeFailed(state) || !workflow.Has(state, KeyScrapedText) || !workflow.Has(state, KeyDraftBody) {
		return nil, ErrNotResumable
	}
	if state.GetInt(FieldRewriteCount) >= p.router.MaxRewrites {
		return nil, ErrRewriteBudgetExhausted
	}

	s := state.Clone()
	s.Seal(FieldSourceURL)
	patch := KeyRewriteRequested.Set(nil, true)
	KeyRewriteFeedback.Set(patch, feedback)
	if err := s.Merge(patch); err != nil {
		return nil, err
	}
	return p.execute(ctx, NodeWriting, s)
}

func (p *Pipeline) execute(ctx context.Context, start Node, s *workflow.State) (*Outcome, error) {
	runID := ai.NewRunID()
	ctx = withRunID(ctx, runID)
	obs := event.Multi(logObserver(p.opts.logger), p.opts.observer)

	m := workflow.NewMachine(p.stages, p.transition(runID, obs),
		[]Node{NodeTerminatedFailure, NodeTerminatedSuccess})

	res, err := m.Run(ctx, start, s,
		workflow.WithRunID(runID),
		workflow.WithObserver(obs),
		workflow.WithMaxTransitions(p.opts.maxTransitions),
		workflow.WithStageTimeout(p.opts.stageTimeout),
		workflow.WithTimeout(p.opts.runTimeout),
	)
	out := &Outcome{
		RunID:    runID,
		Terminal: res.Terminal,
		State:    s,
		Path:     res.Path,
		Duration: res.Duration,
	}
	if err != nil {
		out.Terminal = NodeNone
	}
	return out, err
}

// transition adapts Router.Next to the machine and reports rewrite cycles.
func (p *Pipeline) transition(runID string, obs event.Observer) workflow.Transition[Node] {
	return func(from Node, s *workflow.State) (Node, workflow.Patch) {
		in := RouteInputFrom(s)
		to, patch := p.router.Next(from, in)
		if from == NodeScoring && to == NodeWriting {
			obs.OnEvent(event.Event{
				Type:      event.RewriteCycle,
				RunID:     runID,
				Stage:     StageScoring,
				Next:      StageWriting,
				Iteration: in.RewriteCount + 1,
				Message:   "quality score below threshold",
				Timestamp: time.Now(),
			})
		}
		return to, patch
	}
}
