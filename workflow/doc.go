// Package workflow drives a state machine over a shared, merge-only state.
//
// A run is a sequence of stages. Each stage reads the State and returns a
// Patch; the Machine merges the patch and then asks a transition function
// for the next node. Transition functions are pure: they see the node that
// just ran and the merged state, and return the next node plus an optional
// routing patch.
//
// # State Model
//
// State is a string-keyed map with no delete operation. Later patches only
// overwrite. Keys can be sealed so a run cannot change them once set:
//
//	s := workflow.NewState(map[string]any{"source_url": url})
//	s.Seal("source_url")
//
// Typed keys give compile-time checked access:
//
//	var KeyScore = workflow.NewKey[int]("quality_score")
//
//	p := workflow.Patch{}
//	KeyScore.Set(p, 72)
//	_ = s.Merge(p)
//	score := workflow.GetOr(s, KeyScore, 0)
//
// # Machine
//
//	m := workflow.NewMachine(stages, next, []Node{Done, Failed})
//	res, err := m.Run(ctx, Start, s,
//	    workflow.WithMaxTransitions(16),
//	    workflow.WithObserver(obs),
//	)
//
// The machine checks ctx between stages and stops after MaxTransitions
// stage executions with ErrMaxTransitions. Stage errors come back wrapped
// in *StageError.
package workflow
