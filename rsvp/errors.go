package rsvp

import "errors"

// Task errors
var (
	// ErrUnexpectedSymbol indicates a trigger symbol outside the task
	// alphabet.
	ErrUnexpectedSymbol = errors.New("unexpected symbol in sequence")

	// ErrMissingPhrase indicates the copy-phrase task has no target phrase.
	ErrMissingPhrase = errors.New("no target phrase configured")

	// ErrNoDisplay indicates a task was dispatched without a display.
	ErrNoDisplay = errors.New("no display configured")
)
