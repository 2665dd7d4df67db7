package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrSealedKey indicates a patch tried to change a sealed key.
	ErrSealedKey = errors.New("workflow: sealed key")

	// ErrUnknownNode indicates a transition led to a node with no stage
	// that is not terminal either.
	ErrUnknownNode = errors.New("workflow: unknown node")

	// ErrMaxTransitions indicates the run exceeded its transition budget.
	ErrMaxTransitions = errors.New("workflow: max transitions exceeded")
)

// StageError wraps errors from stage execution.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("workflow: stage %q failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
