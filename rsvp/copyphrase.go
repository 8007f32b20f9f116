package rsvp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mindsetlab/bciflow"
	"github.com/mindsetlab/bciflow/acquisition"
	"github.com/mindsetlab/bciflow/display"
	"github.com/mindsetlab/bciflow/notify"
	"github.com/mindsetlab/bciflow/params"
)

// DefaultMaxSequences bounds how many sequences a copy-phrase run may show
// before giving up on the phrase.
const DefaultMaxSequences = 50

// nonletters are trigger labels that carry no typing evidence: the fixation
// cross and calibration markers.
var nonletters = map[string]bool{
	FixationCross:         true,
	"PLUS":                true,
	"calibration_trigger": true,
}

// Decision is the outcome of evaluating one sequence of evidence.
type Decision struct {
	// Commit is the symbol to type; empty means keep collecting evidence.
	Commit string

	// Stop ends the task regardless of phrase progress.
	Stop bool
}

// DecisionFunc turns the letters and flash times of one sequence into a
// typing decision. This is where a signal model plugs in; the timings index
// into the acquisition buffer for the epoch's data.
type DecisionFunc func(displayed, phrase string, letters []string, times []float64) (Decision, error)

// OracleDecider types the target phrase directly: it commits the next
// phrase symbol, or a backspace when the displayed text has diverged.
// It stands in for a trained signal model in demos and tests.
func OracleDecider(displayed, phrase string, letters []string, times []float64) (Decision, error) {
	if displayed == phrase {
		return Decision{Stop: true}, nil
	}
	if strings.HasPrefix(phrase, displayed) {
		next := string([]rune(phrase)[len([]rune(displayed))])
		return Decision{Commit: next}, nil
	}
	return Decision{Commit: BackspaceChar}, nil
}

// letterInfo filters non-letter triggers and separates flash times from
// letters. Symbols outside the task alphabet are an error.
func letterInfo(triggers []display.Trigger, valid map[string]bool) ([]string, []float64, error) {
	var letters []string
	var times []float64
	var invalid []string

	for _, trig := range triggers {
		if nonletters[trig.Label] {
			continue
		}
		if !valid[trig.Label] {
			invalid = append(invalid, trig.Label)
			continue
		}
		letters = append(letters, trig.Label)
		times = append(times, trig.Time)
	}

	if len(invalid) > 0 {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnexpectedSymbol, invalid)
	}
	return letters, times, nil
}

// nextTarget returns the symbol the participant should attend to next:
// the next phrase symbol, or backspace when the typed text has diverged.
func nextTarget(displayed, phrase string) string {
	if strings.HasPrefix(phrase, displayed) && displayed != phrase {
		return string([]rune(phrase)[len([]rune(displayed))])
	}
	return BackspaceChar
}

// applyCommit applies a typed symbol to the displayed text.
func applyCommit(displayed, commit string) string {
	if commit == BackspaceChar {
		runes := []rune(displayed)
		if len(runes) == 0 {
			return displayed
		}
		return string(runes[:len(runes)-1])
	}
	return displayed + commit
}

// CopyPhraseTask is the copy-phrase task with the oracle decider.
func CopyPhraseTask(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*bciflow.TaskResult, error) {
	return NewCopyPhraseTask(OracleDecider)(ctx, daq, disp, p, savePath)
}

// NewCopyPhraseTask builds a copy-phrase task around the given decider.
//
// The task loops one sequence per epoch: flash a randomized sequence, filter
// its triggers down to letters, and let the decider commit a symbol. It ends
// when the phrase is completed, the decider stops it, or the sequence budget
// runs out.
func NewCopyPhraseTask(decide DecisionFunc) bciflow.TaskFunc {
	return func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*bciflow.TaskResult, error) {
		if disp == nil {
			return nil, ErrNoDisplay
		}
		if decide == nil {
			decide = OracleDecider
		}

		phrase := p.String("task_text")
		if phrase == "" {
			return nil, ErrMissingPhrase
		}
		displayed := p.String("task_initial")
		if !strings.HasPrefix(phrase, displayed) {
			return nil, fmt.Errorf("initial text %q is not a prefix of phrase %q", displayed, phrase)
		}

		start := time.Now()
		taskType := bciflow.TaskType{Mode: bciflow.ModeRSVP, Experiment: bciflow.CopyPhrase}

		run, err := startRun(ctx, taskType, p, savePath)
		if err != nil {
			return nil, err
		}

		seqLength := p.IntOr("stim_length", DefaultSequenceLength)
		maxSequences := p.IntOr("max_seq_num", DefaultMaxSequences)
		timing := timingFromParams(p)
		pause := p.DurationOr("task_buffer_len", 750*time.Millisecond)
		rng := seededRNG(p)
		alphabet := Alphabet()
		valid := symbolSet(alphabet)

		sequences := 0
		runErr := func() error {
			for displayed != phrase && sequences < maxSequences {
				if err := ctx.Err(); err != nil {
					return err
				}
				sequences++

				target := nextTarget(displayed, phrase)
				symbols := newSequence(rng, alphabet, seqLength, target)

				if err := disp.UpdateTaskText(phrase + "\n" + displayed); err != nil {
					return err
				}
				triggers, err := disp.PresentStimuli(ctx, copyPhraseStimuli(symbols, timing))
				if err != nil {
					return fmt.Errorf("present sequence %d: %w", sequences, err)
				}

				for _, trig := range triggers {
					kind := "nontarget"
					switch trig.Label {
					case FixationCross:
						kind = "fixation"
					case target:
						kind = "target"
					}
					if err := run.writeTrigger(trig.Label, kind, trig.Time); err != nil {
						return err
					}
				}

				letters, times, err := letterInfo(triggers, valid)
				if err != nil {
					return err
				}

				decision, err := decide(displayed, phrase, letters, times)
				if err != nil {
					return fmt.Errorf("decide sequence %d: %w", sequences, err)
				}

				if decision.Commit != "" {
					displayed = applyCommit(displayed, decision.Commit)
					run.event(string(notify.EventDecisionMade), "", map[string]any{
						"commit":    decision.Commit,
						"displayed": displayed,
					})
					run.notify(ctx, notify.Event{
						Type:     notify.EventDecisionMade,
						Message:  fmt.Sprintf("typed %q", decision.Commit),
						Severity: notify.SeverityInfo,
					})
				}
				if decision.Stop {
					break
				}

				if err := disp.Wait(ctx, pause); err != nil {
					return err
				}
			}
			return nil
		}()

		run.finish(ctx, runErr)
		if runErr != nil {
			return nil, runErr
		}

		metadata := map[string]any{
			"phrase":    phrase,
			"typed":     displayed,
			"success":   displayed == phrase,
			"sequences": sequences,
		}
		if daq != nil {
			metadata["samples"] = daq.GetDataLen()
			metadata["offset"] = daq.Offset()
		}

		return &bciflow.TaskResult{
			TaskType: taskType,
			RunID:    run.run.ID,
			SavePath: run.run.Dir,
			Duration: time.Since(start),
			Metadata: metadata,
		}, nil
	}
}
