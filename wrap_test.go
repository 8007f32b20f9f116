package bciflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mindsetlab/bciflow/acquisition"
	"github.com/mindsetlab/bciflow/display"
	"github.com/mindsetlab/bciflow/notify"
	"github.com/mindsetlab/bciflow/params"
)

// recordingNotifier captures events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(ctx context.Context, event notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func TestWithRetry(t *testing.T) {
	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		flaky := func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("transient")
			}
			return &TaskResult{RunID: "ok"}, nil
		}

		result, err := WithRetry(flaky, 3)(context.Background(), nil, nil, nil, "")
		if err != nil {
			t.Fatalf("WithRetry error: %v", err)
		}
		if result.RunID != "ok" {
			t.Errorf("result.RunID = %q, want %q", result.RunID, "ok")
		}
		if calls != 3 {
			t.Errorf("task called %d times, want 3", calls)
		}
	})

	t.Run("zero retries still runs once", func(t *testing.T) {
		calls := 0
		fn := func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error) {
			calls++
			return &TaskResult{RunID: "once"}, nil
		}

		result, err := WithRetry(fn, 0)(context.Background(), nil, nil, nil, "")
		if err != nil {
			t.Fatalf("WithRetry error: %v", err)
		}
		if result.RunID != "once" {
			t.Errorf("result.RunID = %q, want %q", result.RunID, "once")
		}
		if calls != 1 {
			t.Errorf("task called %d times, want 1", calls)
		}
	})

	t.Run("exhausts retries", func(t *testing.T) {
		taskErr := errors.New("permanent")
		failing := func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error) {
			return nil, taskErr
		}

		_, err := WithRetry(failing, 2)(context.Background(), nil, nil, nil, "")
		if !errors.Is(err, taskErr) {
			t.Errorf("error = %v, want wrapped %v", err, taskErr)
		}
	})
}

func TestWithTiming(t *testing.T) {
	fn := func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error) {
		return &TaskResult{}, nil
	}

	result, err := WithTiming(fn)(context.Background(), nil, nil, nil, "")
	if err != nil {
		t.Fatalf("WithTiming error: %v", err)
	}
	if result.Duration <= 0 {
		t.Error("WithTiming should set a positive duration")
	}
}

func TestWithNotify(t *testing.T) {
	taskType := TaskType{Mode: ModeRSVP, Experiment: Calibration}

	t.Run("success events", func(t *testing.T) {
		notifier := &recordingNotifier{}
		ctx := notify.WithNotifier(context.Background(), notifier)

		fn := func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error) {
			return &TaskResult{RunID: "run-1"}, nil
		}

		if _, err := WithNotify(fn, taskType)(ctx, nil, nil, nil, ""); err != nil {
			t.Fatalf("WithNotify error: %v", err)
		}

		if len(notifier.events) != 2 {
			t.Fatalf("got %d events, want 2", len(notifier.events))
		}
		if notifier.events[0].Type != notify.EventTaskStarted {
			t.Errorf("first event = %s, want task_started", notifier.events[0].Type)
		}
		if notifier.events[1].Type != notify.EventTaskCompleted {
			t.Errorf("second event = %s, want task_completed", notifier.events[1].Type)
		}
		if notifier.events[1].RunID != "run-1" {
			t.Errorf("completion event RunID = %q, want %q", notifier.events[1].RunID, "run-1")
		}
	})

	t.Run("failure event", func(t *testing.T) {
		notifier := &recordingNotifier{}
		ctx := notify.WithNotifier(context.Background(), notifier)

		fn := func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error) {
			return nil, errors.New("boom")
		}

		if _, err := WithNotify(fn, taskType)(ctx, nil, nil, nil, ""); err == nil {
			t.Fatal("task error should propagate")
		}
		if len(notifier.events) != 2 {
			t.Fatalf("got %d events, want 2", len(notifier.events))
		}
		if notifier.events[1].Type != notify.EventTaskFailed {
			t.Errorf("second event = %s, want task_failed", notifier.events[1].Type)
		}
		if notifier.events[1].Severity != notify.SeverityError {
			t.Errorf("severity = %s, want error", notifier.events[1].Severity)
		}
	})

	t.Run("no notifier is a passthrough", func(t *testing.T) {
		fn := func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error) {
			return &TaskResult{}, nil
		}
		if _, err := WithNotify(fn, taskType)(context.Background(), nil, nil, nil, ""); err != nil {
			t.Fatalf("WithNotify without notifier: %v", err)
		}
	})
}
