package acquisition

import "errors"

// Acquisition errors
var (
	// ErrNoDevice indicates a client was configured without a device.
	ErrNoDevice = errors.New("no device configured")

	// ErrNotStreaming indicates an operation that requires an active
	// acquisition.
	ErrNotStreaming = errors.New("acquisition not streaming")

	// ErrBufferClosed indicates the record buffer has been closed.
	ErrBufferClosed = errors.New("buffer closed")
)

// AcquisitionError wraps a device or buffer failure with context.
type AcquisitionError struct {
	Op     string // Operation that failed (e.g., "connect", "append")
	Device string // Device name, if known
	Err    error  // Underlying error
}

func (e *AcquisitionError) Error() string {
	if e.Device != "" {
		return e.Op + " (" + e.Device + "): " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}
