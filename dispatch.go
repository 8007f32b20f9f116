package bciflow

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mindsetlab/bciflow/acquisition"
	"github.com/mindsetlab/bciflow/display"
	"github.com/mindsetlab/bciflow/params"
)

// TaskFunc is the entry point of an experiment task. The dispatcher forwards
// the acquisition client, display, parameters, and save path verbatim; the
// task owns everything that happens after that.
type TaskFunc func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error)

// TaskResult is what a task implementation reports back through Dispatch.
type TaskResult struct {
	TaskType TaskType       `json:"taskType"`
	RunID    string         `json:"runId,omitempty"`
	SavePath string         `json:"savePath,omitempty"`
	Duration time.Duration  `json:"duration,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Registry maps task types to their implementations. Build it at startup
// (NewRegistry plus Register calls, or rsvp.Register) and treat it as
// read-only afterward; Dispatch only reads it, so a fully built Registry is
// safe for concurrent dispatches.
type Registry struct {
	tasks map[TaskType]TaskFunc
	modes map[Mode]bool
}

// NewRegistry creates an empty task registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[TaskType]TaskFunc),
		modes: make(map[Mode]bool),
	}
}

// Register adds a task implementation for the given task type.
// Registering a new experiment type under an existing mode, or a whole new
// mode, is just another Register call; the lookup logic never changes.
func (r *Registry) Register(t TaskType, fn TaskFunc) error {
	if fn == nil {
		return fmt.Errorf("register %s: %w", t, ErrNilTask)
	}
	if _, exists := r.tasks[t]; exists {
		return fmt.Errorf("register %s: already registered", t)
	}
	r.tasks[t] = fn
	r.modes[t.Mode] = true
	return nil
}

// Lookup returns the implementation for a task type, if registered.
func (r *Registry) Lookup(t TaskType) (TaskFunc, bool) {
	fn, ok := r.tasks[t]
	return fn, ok
}

// HasMode reports whether any experiment type is registered under the mode.
func (r *Registry) HasMode(m Mode) bool {
	return r.modes[m]
}

// TaskTypes returns all registered task types, sorted by label.
func (r *Registry) TaskTypes() []TaskType {
	types := make([]TaskType, 0, len(r.tasks))
	for t := range r.tasks {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

// Dispatch routes a single invocation to the task registered for taskType,
// forwarding the acquisition client, display, parameters, and save path
// unchanged, and returns whatever the task returns.
//
// If the mode is unknown, or the mode is known but the experiment type is not
// registered under it, Dispatch fails with an *UnregisteredTaskError (which
// unwraps to ErrTaskNotRegistered) before any task side effect begins.
// Dispatch holds no state between calls.
func Dispatch(ctx context.Context, reg *Registry, daq *acquisition.Client, disp display.Display, taskType TaskType, p params.Params, savePath string) (*TaskResult, error) {
	if reg == nil {
		return nil, fmt.Errorf("dispatch %s: %w", taskType, ErrNilRegistry)
	}

	fn, ok := reg.Lookup(taskType)
	if !ok {
		return nil, &UnregisteredTaskError{
			Mode:       taskType.Mode,
			Experiment: taskType.Experiment,
			KnownMode:  reg.HasMode(taskType.Mode),
		}
	}

	return fn(ctx, daq, disp, p, savePath)
}
