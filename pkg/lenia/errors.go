package lenia

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateKernel is returned when a ring kernel has no weight left
	// to normalize.
	ErrDegenerateKernel = errors.New("degenerate kernel")
	// ErrUnknownPattern is returned for an unrecognized initialization pattern.
	ErrUnknownPattern = errors.New("unknown pattern")
	// ErrInvalidStep is returned when a step cannot produce a finite grid.
	ErrInvalidStep = errors.New("invalid step")
	// ErrInvalidParameter is returned by constructors and setters for values
	// outside their domain.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// StepError describes the first offending cell of a failed step.
type StepError struct {
	// Generation is the zero-based index of the failed step within a batch.
	Generation int
	// Stage is "kernel", "convolve" or "growth".
	Stage string
	// Index is the linear cell index, or -1 when the failure is not tied to a cell.
	Index int
	Value float64
	Msg   string
}

func (e *StepError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid step: generation %d: %s: %s", e.Generation, e.Stage, e.Msg)
	}
	return fmt.Sprintf("invalid step: generation %d: %s: cell %d = %v", e.Generation, e.Stage, e.Index, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidStep.
func (e *StepError) Unwrap() error { return ErrInvalidStep }

func invalidParam(name string, v float64, why string) error {
	return fmt.Errorf("%w: %s=%v %s", ErrInvalidParameter, name, v, why)
}
