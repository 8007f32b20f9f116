package rsvp

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mindsetlab/bciflow"
	bcictx "github.com/mindsetlab/bciflow/context"
	"github.com/mindsetlab/bciflow/notify"
	"github.com/mindsetlab/bciflow/params"
	"github.com/mindsetlab/bciflow/session"
)

// taskRun bundles the per-run resources every RSVP task needs: the session
// store entry, the triggers file, and the optional notifier from the context.
type taskRun struct {
	store    *session.Store
	run      *session.Run
	triggers *os.File
	notifier notify.Notifier
	taskType bciflow.TaskType
}

// startRun resolves the session store (one injected via the context wins,
// otherwise a store is opened at savePath), starts the run, saves a copy of
// the parameters, opens triggers.txt, and emits the session_started event.
func startRun(ctx context.Context, taskType bciflow.TaskType, p params.Params, savePath string) (*taskRun, error) {
	store := bcictx.Store(ctx)
	if store == nil {
		var err error
		store, err = session.NewStore(savePath)
		if err != nil {
			return nil, fmt.Errorf("open session store: %w", err)
		}
	}

	user := p.String("user")
	if user == "" {
		user = "default"
	}
	run, err := store.StartRun(user, taskType.Slug())
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}

	tr := &taskRun{
		store:    store,
		run:      run,
		notifier: notify.NotifierFromContext(ctx),
		taskType: taskType,
	}
	if err := tr.setup(p); err != nil {
		return nil, err
	}

	tr.notify(ctx, notify.Event{
		Type:     notify.EventSessionStarted,
		Message:  fmt.Sprintf("%s session started", taskType),
		Severity: notify.SeverityInfo,
	})
	return tr, nil
}

// setup saves the run's parameter copy and opens the triggers file. A
// failure finalizes the run as failed so no folder is left marked running.
func (t *taskRun) setup(p params.Params) error {
	if err := params.Save(p, filepath.Join(t.run.Dir, "parameters.json")); err != nil {
		t.store.EndRun(t.run.ID, session.StatusFailed, err)
		return err
	}
	triggers, err := os.Create(filepath.Join(t.run.Dir, "triggers.txt"))
	if err != nil {
		err = fmt.Errorf("create triggers file: %w", err)
		t.store.EndRun(t.run.ID, session.StatusFailed, err)
		return err
	}
	t.triggers = triggers
	return nil
}

// writeTrigger appends one "label kind time" line to triggers.txt.
func (t *taskRun) writeTrigger(label, kind string, at float64) error {
	_, err := fmt.Fprintf(t.triggers, "%s %s %s\n",
		label, kind, strconv.FormatFloat(at, 'f', -1, 64))
	return err
}

// event records a session event, ignoring store errors; a failed event log
// line must not abort a running experiment.
func (t *taskRun) event(eventType, message string, data map[string]any) {
	t.store.RecordEvent(t.run.ID, session.Event{
		Type:    eventType,
		Message: message,
		Data:    data,
	})
}

func (t *taskRun) notify(ctx context.Context, event notify.Event) {
	if t.notifier == nil {
		return
	}
	event.RunID = t.run.ID
	event.Task = t.taskType.String()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	t.notifier.Notify(ctx, event)
}

// finish closes the triggers file and finalizes run metadata.
func (t *taskRun) finish(ctx context.Context, runErr error) {
	t.triggers.Close()

	status := session.StatusCompleted
	event := notify.Event{
		Type:     notify.EventSessionCompleted,
		Message:  fmt.Sprintf("%s session completed", t.taskType),
		Severity: notify.SeverityInfo,
	}
	if runErr != nil {
		status = session.StatusFailed
		event.Type = notify.EventSessionFailed
		event.Message = fmt.Sprintf("%s session failed: %v", t.taskType, runErr)
		event.Severity = notify.SeverityError
	} else if ctx.Err() != nil {
		status = session.StatusCanceled
	}

	t.store.EndRun(t.run.ID, status, runErr)
	t.notify(ctx, event)
}

// timingFromParams reads presentation timings, falling back to defaults.
func timingFromParams(p params.Params) Timing {
	timing := DefaultTiming()
	timing.Target = p.DurationOr("time_target", timing.Target)
	timing.Fixation = p.DurationOr("time_cross", timing.Fixation)
	timing.Flash = p.DurationOr("time_flash", timing.Flash)
	return timing
}

// seededRNG returns a deterministic generator when random_seed is set,
// otherwise one seeded from the clock.
func seededRNG(p params.Params) *rand.Rand {
	if seed, err := p.Int("random_seed"); err == nil {
		return rand.New(rand.NewSource(int64(seed)))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
