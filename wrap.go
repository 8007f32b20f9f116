package bciflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mindsetlab/bciflow/acquisition"
	"github.com/mindsetlab/bciflow/display"
	"github.com/mindsetlab/bciflow/notify"
	"github.com/mindsetlab/bciflow/params"
)

// =============================================================================
// Task Wrappers
// =============================================================================

// WithRetry wraps a task with retry logic. maxRetries is the total number
// of attempts; values below one still run the task once. Retrying an
// experiment task only makes sense for failures that happen before any data
// is recorded, so tasks composed with this should fail fast during setup.
func WithRetry(fn TaskFunc, maxRetries int) TaskFunc {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error) {
		var lastErr error
		for i := 0; i < maxRetries; i++ {
			result, err := fn(ctx, daq, disp, p, savePath)
			if err == nil {
				return result, nil
			}
			lastErr = err
		}
		return nil, fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
	}
}

// WithTiming wraps a task with timing metrics. The measured duration is
// recorded on the result when the task did not set one itself.
func WithTiming(fn TaskFunc) TaskFunc {
	return func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error) {
		start := time.Now()
		result, err := fn(ctx, daq, disp, p, savePath)
		duration := time.Since(start)
		slog.Debug("task execution completed", "duration", duration)
		if result != nil && result.Duration == 0 {
			result.Duration = duration
		}
		return result, err
	}
}

// WithNotify wraps a task with start/completion events sent to the Notifier
// in the context. Without a notifier it is a passthrough.
func WithNotify(fn TaskFunc, taskType TaskType) TaskFunc {
	return func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error) {
		notifier := notify.NotifierFromContext(ctx)

		if notifier != nil {
			notifier.Notify(ctx, notify.Event{
				Type:      notify.EventTaskStarted,
				Task:      taskType.String(),
				Message:   fmt.Sprintf("%s started", taskType),
				Severity:  notify.SeverityInfo,
				Timestamp: time.Now(),
			})
		}

		result, err := fn(ctx, daq, disp, p, savePath)

		if notifier != nil {
			event := notify.Event{
				Type:      notify.EventTaskCompleted,
				Task:      taskType.String(),
				Message:   fmt.Sprintf("%s completed", taskType),
				Severity:  notify.SeverityInfo,
				Timestamp: time.Now(),
			}
			if err != nil {
				event.Type = notify.EventTaskFailed
				event.Message = fmt.Sprintf("%s failed: %v", taskType, err)
				event.Severity = notify.SeverityError
			} else if result != nil {
				event.RunID = result.RunID
			}
			notifier.Notify(ctx, event)
		}

		return result, err
	}
}
