package acquisition

// Device is a signal source with device-specific implementations for
// connecting, initializing, and reading sample frames.
type Device interface {
	// Name identifies the device type (e.g., "DSI", "LSL").
	Name() string

	// Fs is the sampling frequency in Hz.
	Fs() int

	// Channels lists channel names in frame order. By convention the last
	// channel carries the trigger signal.
	Channels() []string

	// Connect opens the connection to the device.
	Connect() error

	// AcquisitionInit runs device initialization after connecting. The
	// clock is reset by the client before this call so devices can align
	// their own timestamps with it.
	AcquisitionInit(clock Clock) error

	// ReadData reads the next sample frame, one value per channel.
	// It returns io.EOF when the stream ends.
	ReadData() ([]float64, error)

	// Disconnect closes the connection.
	Disconnect() error
}
