package session

import "errors"

// Run errors
var (
	// ErrRunNotFound indicates the run directory does not exist.
	ErrRunNotFound = errors.New("run not found")

	// ErrRunAlreadyExists indicates a run with this ID already exists.
	ErrRunAlreadyExists = errors.New("run already exists")

	// ErrRunNotStarted indicates an operation on a run that is not active.
	ErrRunNotStarted = errors.New("run not started")
)
