// Package display defines the stimulus presentation interface that task
// implementations draw through. The dispatcher forwards a Display without
// inspecting it; concrete windows (PsychoPy-style, terminal, headless) live
// with the application, not here.
package display

import (
	"context"
	"time"
)

// Stimulus is one item in a presentation sequence.
type Stimulus struct {
	// Label is the symbol or marker presented ("A", "+", "calibration_trigger").
	Label string

	// Duration is how long the stimulus stays on screen.
	Duration time.Duration

	// Color is an optional display hint ("white", "red").
	Color string
}

// Trigger records when a stimulus was flashed, in seconds on the display
// clock. Task implementations align these timings against acquisition data.
type Trigger struct {
	Label string  `json:"label"`
	Time  float64 `json:"time"`
}

// Display presents stimuli to the participant.
type Display interface {
	// PresentStimuli shows a sequence in order and returns one trigger per
	// stimulus with its flash time. Blocks until the sequence finishes or
	// ctx is canceled.
	PresentStimuli(ctx context.Context, sequence []Stimulus) ([]Trigger, error)

	// UpdateTaskText updates the task status line (target phrase, typed
	// text) without interrupting presentation.
	UpdateTaskText(text string) error

	// Wait idles for the given duration, keeping the window responsive.
	Wait(ctx context.Context, d time.Duration) error
}
