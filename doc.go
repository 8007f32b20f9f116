// Package bciflow provides session primitives for brain-computer-interface
// experiments: a typed task registry and dispatcher plus the supporting
// modules a running session needs.
//
// The package is organized into subpackages by domain:
//
//   - acquisition: data acquisition client, device interface, record buffer
//   - display: stimulus presentation interface
//   - params: experiment parameter loading and resolution
//   - session: run identifiers, save folders, event logs
//   - rsvp: RSVP calibration and copy-phrase task implementations
//   - notify: session event notification (log, webhook)
//   - context: service dependency injection
//   - testutil: test utilities and fixtures
//
// # Quick Start
//
//	import (
//	    "github.com/mindsetlab/bciflow"
//	    "github.com/mindsetlab/bciflow/rsvp"
//	)
//
//	// Build the registry of known tasks
//	reg := bciflow.NewRegistry()
//	rsvp.Register(reg)
//
//	// Route a request to the matching task
//	taskType := bciflow.TaskType{Mode: bciflow.ModeRSVP, Experiment: bciflow.Calibration}
//	result, err := bciflow.Dispatch(ctx, reg, daq, disp, taskType, params, savePath)
//
// See individual package documentation for detailed usage.
package bciflow
