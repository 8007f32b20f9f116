package bciflow

import (
	"context"
	"errors"
	"testing"

	"github.com/mindsetlab/bciflow/acquisition"
	"github.com/mindsetlab/bciflow/display"
	"github.com/mindsetlab/bciflow/params"
)

// fakeTask records its invocations and what it was invoked with.
type fakeTask struct {
	calls    int
	gotDAQ   *acquisition.Client
	gotDisp  display.Display
	gotPar   params.Params
	gotPath  string
	result   *TaskResult
	err      error
}

func (f *fakeTask) fn(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error) {
	f.calls++
	f.gotDAQ = daq
	f.gotDisp = disp
	f.gotPar = p
	f.gotPath = savePath
	return f.result, f.err
}

func testRegistry(t *testing.T) (*Registry, *fakeTask, *fakeTask) {
	t.Helper()

	calibration := &fakeTask{result: &TaskResult{RunID: "cal-run"}}
	copyPhrase := &fakeTask{result: &TaskResult{RunID: "cp-run"}}

	reg := NewRegistry()
	if err := reg.Register(TaskType{ModeRSVP, Calibration}, calibration.fn); err != nil {
		t.Fatalf("register calibration: %v", err)
	}
	if err := reg.Register(TaskType{ModeRSVP, CopyPhrase}, copyPhrase.fn); err != nil {
		t.Fatalf("register copy phrase: %v", err)
	}
	return reg, calibration, copyPhrase
}

func TestDispatchRegistered(t *testing.T) {
	reg, calibration, copyPhrase := testRegistry(t)
	disp := display.NewMockDisplay()
	p := params.New(map[string]string{"user": "u1"})

	result, err := Dispatch(context.Background(), reg, nil, disp,
		TaskType{ModeRSVP, Calibration}, p, "/tmp/data")
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if result.RunID != "cal-run" {
		t.Errorf("result.RunID = %q, want %q", result.RunID, "cal-run")
	}
	if calibration.calls != 1 {
		t.Errorf("calibration invoked %d times, want 1", calibration.calls)
	}
	if copyPhrase.calls != 0 {
		t.Errorf("copy phrase invoked %d times, want 0", copyPhrase.calls)
	}

	// Arguments must be forwarded unchanged.
	if calibration.gotDisp != display.Display(disp) {
		t.Error("display was not forwarded unchanged")
	}
	if calibration.gotPath != "/tmp/data" {
		t.Errorf("savePath = %q, want %q", calibration.gotPath, "/tmp/data")
	}
	if calibration.gotPar.String("user") != "u1" {
		t.Error("params were not forwarded unchanged")
	}

	// Second scenario: copy phrase resolves to the other implementation.
	result, err = Dispatch(context.Background(), reg, nil, disp,
		TaskType{ModeRSVP, CopyPhrase}, p, "/tmp/data")
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if result.RunID != "cp-run" {
		t.Errorf("result.RunID = %q, want %q", result.RunID, "cp-run")
	}
	if copyPhrase.calls != 1 {
		t.Errorf("copy phrase invoked %d times, want 1", copyPhrase.calls)
	}
}

func TestDispatchUnregistered(t *testing.T) {
	tests := []struct {
		name      string
		taskType  TaskType
		knownMode bool
	}{
		{"unknown mode", TaskType{ModeSSVEP, Calibration}, false},
		{"unknown experiment under known mode", TaskType{ModeRSVP, FreeSpell}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, calibration, copyPhrase := testRegistry(t)

			_, err := Dispatch(context.Background(), reg, nil,
				display.NewMockDisplay(), tt.taskType, nil, "/tmp/data")
			if err == nil {
				t.Fatal("Dispatch should fail for unregistered task")
			}
			if !errors.Is(err, ErrTaskNotRegistered) {
				t.Errorf("error %v should unwrap to ErrTaskNotRegistered", err)
			}

			var unregErr *UnregisteredTaskError
			if !errors.As(err, &unregErr) {
				t.Fatalf("error %T should be *UnregisteredTaskError", err)
			}
			if unregErr.Mode != tt.taskType.Mode || unregErr.Experiment != tt.taskType.Experiment {
				t.Errorf("error identifies %s %s, want %s",
					unregErr.Mode, unregErr.Experiment, tt.taskType)
			}
			if unregErr.KnownMode != tt.knownMode {
				t.Errorf("KnownMode = %v, want %v", unregErr.KnownMode, tt.knownMode)
			}

			// No side effect: no implementation invoked.
			if calibration.calls != 0 || copyPhrase.calls != 0 {
				t.Errorf("tasks invoked (%d, %d) times, want none",
					calibration.calls, copyPhrase.calls)
			}
		})
	}
}

func TestDispatchIdempotent(t *testing.T) {
	reg, calibration, _ := testRegistry(t)

	for i := 0; i < 2; i++ {
		if _, err := Dispatch(context.Background(), reg, nil,
			display.NewMockDisplay(), TaskType{ModeRSVP, Calibration}, nil, "/tmp"); err != nil {
			t.Fatalf("Dispatch %d error: %v", i, err)
		}
	}
	if calibration.calls != 2 {
		t.Errorf("calibration invoked %d times, want 2", calibration.calls)
	}
}

func TestDispatchNilRegistry(t *testing.T) {
	_, err := Dispatch(context.Background(), nil, nil, nil,
		TaskType{ModeRSVP, Calibration}, nil, "")
	if !errors.Is(err, ErrNilRegistry) {
		t.Errorf("error = %v, want ErrNilRegistry", err)
	}
}

func TestDispatchTaskErrorPropagates(t *testing.T) {
	taskErr := errors.New("device unplugged")
	failing := &fakeTask{err: taskErr}

	reg := NewRegistry()
	if err := reg.Register(TaskType{ModeRSVP, Calibration}, failing.fn); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := Dispatch(context.Background(), reg, nil,
		display.NewMockDisplay(), TaskType{ModeRSVP, Calibration}, nil, "")
	if !errors.Is(err, taskErr) {
		t.Errorf("task error should propagate unchanged, got %v", err)
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()
	taskType := TaskType{ModeRSVP, Calibration}

	if err := reg.Register(taskType, nil); !errors.Is(err, ErrNilTask) {
		t.Errorf("registering nil task: error = %v, want ErrNilTask", err)
	}

	noop := func(ctx context.Context, daq *acquisition.Client, disp display.Display, p params.Params, savePath string) (*TaskResult, error) {
		return nil, nil
	}
	if err := reg.Register(taskType, noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(taskType, noop); err == nil {
		t.Error("duplicate registration should fail")
	}

	if !reg.HasMode(ModeRSVP) {
		t.Error("HasMode(ModeRSVP) = false, want true")
	}
	if reg.HasMode(ModeSSVEP) {
		t.Error("HasMode(ModeSSVEP) = true, want false")
	}
}

func TestRegistryTaskTypes(t *testing.T) {
	reg, _, _ := testRegistry(t)

	types := reg.TaskTypes()
	if len(types) != 2 {
		t.Fatalf("TaskTypes() returned %d entries, want 2", len(types))
	}
	// Sorted by label: "RSVP Calibration" < "RSVP Copy Phrase"
	if types[0].Experiment != Calibration || types[1].Experiment != CopyPhrase {
		t.Errorf("TaskTypes() = %v, want calibration then copy phrase", types)
	}
}
