// Package session manages experiment run folders.
//
// A Store owns a base save path and creates one directory per run,
// <base>/<user>/<runID>/, where the task writes its outputs (raw data,
// triggers, saved parameters). The store itself maintains metadata.json and
// an append-only events.jsonl per run.
//
// Run IDs combine the date, the task slug, and a random suffix:
// "2026-08-23-rsvp-calibration-x8k2ab".
package session
