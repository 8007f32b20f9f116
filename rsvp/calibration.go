package rsvp

import (
	"context"
	"fmt"
	"time"

	"github.com/mindsetlab/bciflow"
	"github.com/mindsetlab/bciflow/acquisition"
	"github.com/mindsetlab/bciflow/display"
	"github.com/mindsetlab/bciflow/notify"
	"github.com/mindsetlab/bciflow/params"
)

// Calibration parameter defaults.
const (
	DefaultCalibrationSequences = 10
	DefaultSequenceLength       = 10
)

// CalibrationTask runs the RSVP calibration experiment: for each sequence a
// target symbol is prompted, a fixation cross shown, and a randomized
// sequence flashed. Stimulus triggers are written to triggers.txt in the run
// folder so the recorded data can be labeled afterward.
func CalibrationTask(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*bciflow.TaskResult, error) {
	if disp == nil {
		return nil, ErrNoDisplay
	}

	start := time.Now()
	taskType := bciflow.TaskType{Mode: bciflow.ModeRSVP, Experiment: bciflow.Calibration}

	run, err := startRun(ctx, taskType, p, savePath)
	if err != nil {
		return nil, err
	}

	numSequences := p.IntOr("stim_number", DefaultCalibrationSequences)
	seqLength := p.IntOr("stim_length", DefaultSequenceLength)
	timing := timingFromParams(p)
	pause := p.DurationOr("task_buffer_len", 750*time.Millisecond)
	rng := seededRNG(p)
	alphabet := Alphabet()

	runErr := func() error {
		for i := 0; i < numSequences; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			target := alphabet[rng.Intn(len(alphabet))]
			symbols := newSequence(rng, alphabet, seqLength, target)

			if err := disp.UpdateTaskText(fmt.Sprintf("%d/%d", i+1, numSequences)); err != nil {
				return err
			}
			triggers, err := disp.PresentStimuli(ctx, calibrationStimuli(symbols, target, timing))
			if err != nil {
				return fmt.Errorf("present sequence %d: %w", i+1, err)
			}

			for j, trig := range triggers {
				kind := "nontarget"
				switch {
				case j == 0:
					kind = "first_pres_target"
				case trig.Label == FixationCross:
					kind = "fixation"
				case trig.Label == target:
					kind = "target"
				}
				if err := run.writeTrigger(trig.Label, kind, trig.Time); err != nil {
					return err
				}
			}

			run.event(string(notify.EventSequenceShown), "", map[string]any{
				"sequence": i + 1,
				"target":   target,
			})

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

	metadata := map[string]any{"sequences": numSequences}
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
