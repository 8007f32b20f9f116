package display

import (
	"context"
	"sync"
	"time"
)

// MockDisplay is an in-memory Display for tests and headless runs. It records
// every presented sequence and returns synthetic trigger timings from an
// internal clock that advances by each stimulus duration.
type MockDisplay struct {
	mu        sync.Mutex
	clock     float64 // seconds on the fake display clock
	sequences [][]Stimulus
	taskTexts []string

	// PresentErr, when set, is returned by PresentStimuli.
	PresentErr error
}

// NewMockDisplay creates an empty mock display.
func NewMockDisplay() *MockDisplay {
	return &MockDisplay{}
}

// PresentStimuli implements Display.
func (d *MockDisplay) PresentStimuli(ctx context.Context, sequence []Stimulus) ([]Trigger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.PresentErr != nil {
		return nil, d.PresentErr
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	copied := make([]Stimulus, len(sequence))
	copy(copied, sequence)
	d.sequences = append(d.sequences, copied)

	triggers := make([]Trigger, 0, len(sequence))
	for _, stim := range sequence {
		triggers = append(triggers, Trigger{Label: stim.Label, Time: d.clock})
		d.clock += stim.Duration.Seconds()
	}
	return triggers, nil
}

// UpdateTaskText implements Display.
func (d *MockDisplay) UpdateTaskText(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.taskTexts = append(d.taskTexts, text)
	return nil
}

// Wait implements Display. The mock advances its clock without sleeping.
func (d *MockDisplay) Wait(ctx context.Context, duration time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clock += duration.Seconds()
	return nil
}

// Sequences returns all presented sequences in order.
func (d *MockDisplay) Sequences() [][]Stimulus {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]Stimulus, len(d.sequences))
	copy(out, d.sequences)
	return out
}

// TaskTexts returns all task text updates in order.
func (d *MockDisplay) TaskTexts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.taskTexts))
	copy(out, d.taskTexts)
	return out
}
