package rsvp

import (
	"math/rand"
	"time"

	"github.com/mindsetlab/bciflow/display"
)

// Special symbols shared by the RSVP tasks.
const (
	// BackspaceChar deletes the last typed symbol.
	BackspaceChar = "<"

	// SpaceChar stands in for a space in displayed text.
	SpaceChar = "_"

	// FixationCross is shown before each sequence.
	FixationCross = "+"
)

// Alphabet returns the default symbol set: A-Z, backspace, and space.
func Alphabet() []string {
	symbols := make([]string, 0, 28)
	for ch := 'A'; ch <= 'Z'; ch++ {
		symbols = append(symbols, string(ch))
	}
	return append(symbols, BackspaceChar, SpaceChar)
}

// symbolSet builds a membership set from an alphabet.
func symbolSet(alphabet []string) map[string]bool {
	set := make(map[string]bool, len(alphabet))
	for _, s := range alphabet {
		set[s] = true
	}
	return set
}

// Timing holds the presentation durations of one sequence.
type Timing struct {
	Target   time.Duration // target prompt before calibration sequences
	Fixation time.Duration // fixation cross
	Flash    time.Duration // each flashed symbol
}

// DefaultTiming mirrors the usual parameter-file values: 1s target prompt,
// 0.5s fixation, 0.25s flash.
func DefaultTiming() Timing {
	return Timing{
		Target:   time.Second,
		Fixation: 500 * time.Millisecond,
		Flash:    250 * time.Millisecond,
	}
}

// newSequence draws length distinct symbols from the alphabet, including
// target (when non-empty) at a random position, and shuffles them.
func newSequence(rng *rand.Rand, alphabet []string, length int, target string) []string {
	if length > len(alphabet) {
		length = len(alphabet)
	}

	perm := rng.Perm(len(alphabet))
	symbols := make([]string, 0, length)
	hasTarget := false
	for _, idx := range perm {
		if len(symbols) == length {
			break
		}
		symbols = append(symbols, alphabet[idx])
		if alphabet[idx] == target {
			hasTarget = true
		}
	}
	if target != "" && !hasTarget && len(symbols) > 0 {
		symbols[rng.Intn(len(symbols))] = target
	}
	return symbols
}

// calibrationStimuli builds the full presentation for one calibration
// sequence: target prompt, fixation cross, then the flashed symbols.
func calibrationStimuli(symbols []string, target string, timing Timing) []display.Stimulus {
	stimuli := make([]display.Stimulus, 0, len(symbols)+2)
	stimuli = append(stimuli,
		display.Stimulus{Label: target, Duration: timing.Target, Color: "yellow"},
		display.Stimulus{Label: FixationCross, Duration: timing.Fixation},
	)
	for _, s := range symbols {
		stimuli = append(stimuli, display.Stimulus{Label: s, Duration: timing.Flash})
	}
	return stimuli
}

// copyPhraseStimuli builds the presentation for one copy-phrase sequence:
// fixation cross, then the flashed symbols.
func copyPhraseStimuli(symbols []string, timing Timing) []display.Stimulus {
	stimuli := make([]display.Stimulus, 0, len(symbols)+1)
	stimuli = append(stimuli, display.Stimulus{Label: FixationCross, Duration: timing.Fixation})
	for _, s := range symbols {
		stimuli = append(stimuli, display.Stimulus{Label: s, Duration: timing.Flash})
	}
	return stimuli
}
