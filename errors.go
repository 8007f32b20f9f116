package bciflow

import (
	"errors"
	"fmt"
)

// Dispatch errors
var (
	// ErrTaskNotRegistered indicates the (mode, experiment type) pair has no
	// registered implementation.
	ErrTaskNotRegistered = errors.New("task not registered")

	// ErrNilTask indicates a nil TaskFunc was registered.
	ErrNilTask = errors.New("nil task implementation")

	// ErrNilRegistry indicates Dispatch was called without a registry.
	ErrNilRegistry = errors.New("nil registry")
)

// UnregisteredTaskError reports a dispatch request for a (mode, experiment
// type) pair that has no registered implementation. KnownMode distinguishes
// an unknown paradigm from a known paradigm with an unknown procedure.
type UnregisteredTaskError struct {
	Mode       Mode
	Experiment ExperimentType
	KnownMode  bool
}

func (e *UnregisteredTaskError) Error() string {
	if e.KnownMode {
		return fmt.Sprintf("task not implemented: experiment type %q is not registered for mode %q",
			e.Experiment, e.Mode)
	}
	return fmt.Sprintf("task not implemented: mode %q is not registered (requested experiment type %q)",
		e.Mode, e.Experiment)
}

func (e *UnregisteredTaskError) Unwrap() error {
	return ErrTaskNotRegistered
}
