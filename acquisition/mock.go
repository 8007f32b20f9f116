package acquisition

import (
	"fmt"
	"io"
	"sync"
)

// MockDevice is an in-memory Device for tests. It serves a fixed queue of
// sample frames and returns io.EOF when the queue is exhausted or the
// device is disconnected.
type MockDevice struct {
	DeviceName   string
	SampleRate   int
	ChannelNames []string

	// ConnectErr and InitErr, when set, fail the corresponding call.
	ConnectErr error
	InitErr    error

	mu        sync.Mutex
	frames    [][]float64
	connected bool
	initCalls int
}

// NewMockDevice creates a mock device that will serve the given frames.
func NewMockDevice(fs int, channels []string, frames [][]float64) *MockDevice {
	return &MockDevice{
		DeviceName:   "mock",
		SampleRate:   fs,
		ChannelNames: channels,
		frames:       frames,
	}
}

// Name implements Device.
func (d *MockDevice) Name() string { return d.DeviceName }

// Fs implements Device.
func (d *MockDevice) Fs() int { return d.SampleRate }

// Channels implements Device.
func (d *MockDevice) Channels() []string { return d.ChannelNames }

// Connect implements Device.
func (d *MockDevice) Connect() error {
	if d.ConnectErr != nil {
		return d.ConnectErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = true
	return nil
}

// AcquisitionInit implements Device.
func (d *MockDevice) AcquisitionInit(clock Clock) error {
	if d.InitErr != nil {
		return d.InitErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return fmt.Errorf("not connected")
	}
	d.initCalls++
	return nil
}

// ReadData implements Device.
func (d *MockDevice) ReadData() ([]float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected || len(d.frames) == 0 {
		return nil, io.EOF
	}
	frame := d.frames[0]
	d.frames = d.frames[1:]
	return frame, nil
}

// Disconnect implements Device.
func (d *MockDevice) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = false
	return nil
}

// InitCalls returns how many times AcquisitionInit was called.
func (d *MockDevice) InitCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initCalls
}
