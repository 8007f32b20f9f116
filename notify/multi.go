package notify

import (
	"context"
	"log/slog"
)

// =============================================================================
// MultiNotifier
// =============================================================================

// MultiNotifier fans session events out to several sinks, e.g. a local log
// plus a lab dashboard webhook.
type MultiNotifier struct {
	Notifiers []Notifier
	Logger    *slog.Logger
}

// NewMultiNotifier creates a notifier that forwards every event to each of
// the given notifiers. A failing sink is logged and skipped so the others
// still see the event.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{
		Notifiers: notifiers,
		Logger:    slog.Default(),
	}
}

// Notify implements Notifier. It returns the last sink error, if any.
func (n *MultiNotifier) Notify(ctx context.Context, event Event) error {
	var lastErr error
	for _, notifier := range n.Notifiers {
		if err := notifier.Notify(ctx, event); err != nil {
			lastErr = err
			if n.Logger != nil {
				n.Logger.Warn("session notifier failed",
					"error", err,
					"event_type", event.Type,
					"run_id", event.RunID,
				)
			}
		}
	}
	return lastErr
}

// =============================================================================
// NopNotifier
// =============================================================================

// NopNotifier discards every event. Used when a session runs without
// monitoring.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(ctx context.Context, event Event) error {
	return nil
}
