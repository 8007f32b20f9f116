package rsvp

import "github.com/mindsetlab/bciflow"

// Register wires the RSVP tasks into a registry.
func Register(reg *bciflow.Registry) error {
	entries := map[bciflow.TaskType]bciflow.TaskFunc{
		{Mode: bciflow.ModeRSVP, Experiment: bciflow.Calibration}: CalibrationTask,
		{Mode: bciflow.ModeRSVP, Experiment: bciflow.CopyPhrase}:  CopyPhraseTask,
	}
	for taskType, fn := range entries {
		if err := reg.Register(taskType, fn); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry with the RSVP tasks already registered.
func NewRegistry() (*bciflow.Registry, error) {
	reg := bciflow.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
