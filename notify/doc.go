// Package notify sends notifications about session events.
//
// A Notifier receives Events describing session and task progress: a run
// started, a sequence was shown, a decision was made, a task failed.
// Implementations include:
//
//   - LogNotifier: structured logging via slog
//   - WebhookNotifier: HTTP POST to a monitoring endpoint
//   - MultiNotifier: fan-out to several notifiers
//   - NopNotifier: discard everything
//
// Notifiers travel through context.Context via WithNotifier so task
// implementations and wrappers can emit events without extra plumbing.
package notify
