package session

import (
	"fmt"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Status indicates the status of a run.
type Status string

// Run status constants.
const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Meta contains run metadata, persisted as metadata.json in the run folder.
type Meta struct {
	RunID      string    `json:"runId"`
	User       string    `json:"user,omitempty"`
	Task       string    `json:"task"`
	StartedAt  time.Time `json:"startedAt"`
	EndedAt    time.Time `json:"endedAt,omitempty"`
	Status     Status    `json:"status"`
	EventCount int       `json:"eventCount"`
	Error      string    `json:"error,omitempty"`
}

// Event is one entry in a run's event log (events.jsonl).
type Event struct {
	ID        int            `json:"id"`
	Type      string         `json:"type"`
	Message   string         `json:"message,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// runIDAlphabet keeps run IDs filesystem- and URL-safe.
const runIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateRunID creates a unique run ID of the form
// "2026-08-23-rsvp-calibration-x8k2ab" from a task slug.
func GenerateRunID(taskSlug string) string {
	timestamp := time.Now().Format("2006-01-02")
	suffix, err := nanoid.Generate(runIDAlphabet, 6)
	if err != nil {
		// Fallback to timestamp-based suffix on entropy failure
		suffix = fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%s-%s", timestamp, taskSlug, suffix)
}

// Summary returns a human-readable summary of the run.
func (m Meta) Summary() string {
	return fmt.Sprintf("Run %s [%s]: %s (%d events)",
		m.RunID, m.Status, m.Task, m.EventCount)
}
