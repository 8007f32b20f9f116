package session

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store manages run folders under a base save path. Each run gets its own
// directory, <base>/<user>/<runID>/, holding metadata.json and an append-only
// events.jsonl.
type Store struct {
	baseDir string

	mu     sync.Mutex
	active map[string]*activeRun
}

type activeRun struct {
	dir    string
	meta   Meta
	events *os.File
}

// NewStore creates a run store rooted at baseDir, creating it if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &Store{
		baseDir: baseDir,
		active:  make(map[string]*activeRun),
	}, nil
}

// BaseDir returns the store's root directory.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Run is the handle for an active run.
type Run struct {
	ID   string
	Dir  string
	User string
	Task string
}

// StartRun begins a new run for the given user and task slug. It creates the
// run directory and writes the initial metadata.
func (s *Store) StartRun(user, taskSlug string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := GenerateRunID(taskSlug)
	if _, exists := s.active[runID]; exists {
		return nil, ErrRunAlreadyExists
	}

	dir := filepath.Join(s.baseDir, user, runID)
	if _, err := os.Stat(dir); err == nil {
		return nil, ErrRunAlreadyExists
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	meta := Meta{
		RunID:     runID,
		User:      user,
		Task:      taskSlug,
		StartedAt: time.Now(),
		Status:    StatusRunning,
	}
	if err := writeMeta(dir, meta); err != nil {
		return nil, err
	}

	events, err := os.OpenFile(filepath.Join(dir, "events.jsonl"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	s.active[runID] = &activeRun{dir: dir, meta: meta, events: events}
	return &Run{ID: runID, Dir: dir, User: user, Task: taskSlug}, nil
}

// RecordEvent appends an event to an active run's log.
func (s *Store) RecordEvent(runID string, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.active[runID]
	if !ok {
		return ErrRunNotStarted
	}

	run.meta.EventCount++
	event.ID = run.meta.EventCount
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	line, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := run.events.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}

// EndRun finalizes an active run with the given status. A non-nil runErr is
// recorded in the metadata and forces StatusFailed.
func (s *Store) EndRun(runID string, status Status, runErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.active[runID]
	if !ok {
		return ErrRunNotStarted
	}
	delete(s.active, runID)

	run.events.Close()

	run.meta.EndedAt = time.Now()
	run.meta.Status = status
	if runErr != nil {
		run.meta.Status = StatusFailed
		run.meta.Error = runErr.Error()
	}
	return writeMeta(run.dir, run.meta)
}

// LoadMeta reads the metadata of a finished or active run directory.
func LoadMeta(dir string) (Meta, error) {
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return Meta{}, ErrRunNotFound
		}
		return Meta{}, err
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return Meta{}, err
	}
	return meta, nil
}

// LoadEvents reads every event recorded for a run directory.
func LoadEvents(dir string) ([]Event, error) {
	data, err := os.ReadFile(filepath.Join(dir, "events.jsonl"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	var events []Event
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var ev Event
		if err := dec.Decode(&ev); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func writeMeta(dir string, meta Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "metadata.json"), append(data, '\n'), 0644)
}
