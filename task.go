package bciflow

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode is a top-level experiment paradigm.
type Mode string

// Known experiment paradigms. Only ModeRSVP ships task implementations;
// the others are recognized names so that parsing can distinguish "we know
// this paradigm but have no tasks for it" from free-form typos.
const (
	// ModeRSVP is rapid serial visual presentation.
	ModeRSVP Mode = "RSVP"

	// ModeSSVEP is steady-state visually evoked potentials.
	ModeSSVEP Mode = "SSVEP"

	// ModeMatrix is matrix (P300 grid) presentation.
	ModeMatrix Mode = "Matrix"
)

// ExperimentType is a specific procedure within a mode.
type ExperimentType string

// Experiment type constants.
const (
	// Calibration collects labeled data to train a signal model.
	Calibration ExperimentType = "Calibration"

	// CopyPhrase is the spelling task: the user copies a target phrase.
	CopyPhrase ExperimentType = "Copy Phrase"

	// FreeSpell is unconstrained spelling without a target phrase.
	FreeSpell ExperimentType = "Free Spell"
)

// TaskType identifies an experiment task: the (mode, experiment type) pair
// used as the dispatch key. It is comparable and usable as a map key.
type TaskType struct {
	Mode       Mode           `json:"mode"`
	Experiment ExperimentType `json:"experiment"`
}

// String returns a human-readable label, e.g. "RSVP Calibration".
func (t TaskType) String() string {
	return string(t.Mode) + " " + string(t.Experiment)
}

// Slug returns a filesystem-friendly form, e.g. "rsvp-copy-phrase".
func (t TaskType) Slug() string {
	s := strings.ToLower(t.String())
	return strings.ReplaceAll(s, " ", "-")
}

// ParseMode converts free-form input to a known Mode.
// Matching is case-insensitive; "rsvp" and "RSVP" both resolve to ModeRSVP.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RSVP":
		return ModeRSVP, nil
	case "SSVEP":
		return ModeSSVEP, nil
	case "MATRIX":
		return ModeMatrix, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// ParseExperimentType converts free-form input to a known ExperimentType.
// Underscores and hyphens are treated as word separators, so "copy_phrase",
// "copy-phrase" and "Copy Phrase" all resolve to CopyPhrase.
func ParseExperimentType(s string) (ExperimentType, error) {
	normalized := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s))
	// A cases.Caser carries internal state, so each call gets its own.
	titler := cases.Title(language.English)
	normalized = titler.String(strings.ToLower(normalized))

	switch ExperimentType(normalized) {
	case Calibration, CopyPhrase, FreeSpell:
		return ExperimentType(normalized), nil
	}
	return "", fmt.Errorf("unknown experiment type %q", s)
}

// ParseTaskType parses a "mode experiment" pair, e.g. ("RSVP", "copy_phrase").
func ParseTaskType(mode, experiment string) (TaskType, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return TaskType{}, err
	}
	e, err := ParseExperimentType(experiment)
	if err != nil {
		return TaskType{}, err
	}
	return TaskType{Mode: m, Experiment: e}, nil
}
