package acquisition

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

// initialWait is the seconds of headroom used to size the record queue,
// carried over from the reference acquisition loop.
const initialWait = 2

// ClientConfig configures a data acquisition client.
type ClientConfig struct {
	// Device is the signal source. Required.
	Device Device

	// Clock timestamps the session. Defaults to the monotonic clock.
	Clock Clock

	// RawDataPath is where raw data CSV is written.
	// Defaults to "rawdata.csv".
	RawDataPath string

	// BufferPath is where the record archive is stored.
	// Defaults to "buffer.db".
	BufferPath string

	// Processor overrides the default raw-data FileWriter. Optional.
	Processor Processor

	// Logger receives acquisition diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client acquires data from a device on a background goroutine, buffering
// records for querying and streaming them to a raw-data file. Start it once
// per session; the dispatcher forwards it to the selected task untouched.
type Client struct {
	device      Device
	clock       Clock
	rawDataPath string
	bufferPath  string
	processor   Processor
	logger      *slog.Logger

	mu         sync.Mutex
	streaming  bool
	calibrated bool
	offset     float64
	buf        *Buffer
	cancel     context.CancelFunc
	procDone   chan struct{}
}

// NewClient creates an acquisition client. The device is not contacted
// until StartAcquisition.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Device == nil {
		return nil, ErrNoDevice
	}
	if cfg.Clock == nil {
		cfg.Clock = NewClock()
	}
	if cfg.RawDataPath == "" {
		cfg.RawDataPath = "rawdata.csv"
	}
	if cfg.BufferPath == "" {
		cfg.BufferPath = "buffer.db"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		device:      cfg.Device,
		clock:       cfg.Clock,
		rawDataPath: cfg.RawDataPath,
		bufferPath:  cfg.BufferPath,
		processor:   cfg.Processor,
		logger:      cfg.Logger,
	}, nil
}

// Device returns the configured device.
func (c *Client) Device() Device {
	return c.device
}

// StartAcquisition connects and initializes the device, then starts the
// acquisition and processing goroutines. Calling it while already streaming
// is a no-op.
func (c *Client) StartAcquisition(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.streaming {
		return nil
	}

	c.logger.Debug("starting acquisition", "device", c.device.Name())

	if err := c.device.Connect(); err != nil {
		return &AcquisitionError{Op: "connect", Device: c.device.Name(), Err: err}
	}
	c.clock.Reset()
	if err := c.device.AcquisitionInit(c.clock); err != nil {
		c.device.Disconnect()
		return &AcquisitionError{Op: "initialize", Device: c.device.Name(), Err: err}
	}

	// Buffer and processor are set up after device initialization so any
	// device parameters updated during init are reflected.
	buf, err := NewBuffer(c.bufferPath, c.device.Channels())
	if err != nil {
		c.device.Disconnect()
		return err
	}
	proc := c.processor
	if proc == nil {
		proc = NewFileWriter(c.rawDataPath, c.device.Name(), c.device.Fs(), c.device.Channels())
	}
	if err := proc.Start(); err != nil {
		buf.Close()
		c.device.Disconnect()
		return err
	}

	multiplier := c.device.Fs()
	if multiplier <= 0 {
		multiplier = 100
	}
	records := make(chan Record, (initialWait+1)*multiplier)

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.buf = buf
	c.procDone = make(chan struct{})
	c.streaming = true

	go c.acquisitionLoop(runCtx, records)
	go c.processLoop(records, buf, proc)
	return nil
}

// acquisitionLoop continuously reads frames from the device and queues them
// for processing.
func (c *Client) acquisitionLoop(ctx context.Context, records chan<- Record) {
	defer close(records)

	sample := 0
	for {
		if ctx.Err() != nil {
			return
		}
		data, err := c.device.ReadData()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.logger.Warn("device read failed", "device", c.device.Name(), "error", err)
			}
			return
		}
		if data == nil {
			return
		}
		select {
		case records <- Record{Data: data, Timestamp: float64(sample)}:
		case <-ctx.Done():
			return
		}
		sample++
	}
}

// processLoop drains queued records into the buffer and processor. It also
// watches for the calibration trigger: the first record with a positive
// trigger channel marks the offset between display and acquisition time.
func (c *Client) processLoop(records <-chan Record, buf *Buffer, proc Processor) {
	defer close(c.procDone)
	defer proc.Close()

	fs := float64(c.device.Fs())
	if fs <= 0 {
		fs = 1
	}

	for rec := range records {
		c.markCalibration(rec, fs)
		if err := buf.Append(rec); err != nil {
			c.logger.Warn("buffer append failed", "error", err)
		}
		if err := proc.Process(rec.Data, rec.Timestamp); err != nil {
			c.logger.Warn("processor failed", "error", err)
		}
	}
}

func (c *Client) markCalibration(rec Record, fs float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calibrated || rec.Trigger() <= 0 {
		return
	}
	c.calibrated = true
	c.offset = rec.Timestamp / fs
	c.logger.Debug("calibration trigger detected", "offset", c.offset)
}

// StopAcquisition disconnects the device and shuts down the goroutines,
// draining any queued records first. The buffer stays open for GetData
// until Close or Cleanup.
func (c *Client) StopAcquisition() error {
	c.mu.Lock()
	if !c.streaming {
		c.mu.Unlock()
		return ErrNotStreaming
	}
	c.streaming = false
	cancel := c.cancel
	done := c.procDone
	c.mu.Unlock()

	c.logger.Debug("stopping acquisition", "device", c.device.Name())

	if err := c.device.Disconnect(); err != nil {
		c.logger.Warn("device disconnect failed", "error", err)
	}
	cancel()
	<-done
	return nil
}

// IsStreaming reports whether acquisition is active.
func (c *Client) IsStreaming() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.streaming
}

// IsCalibrated reports whether the calibration trigger has been seen.
func (c *Client) IsCalibrated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calibrated
}

// Offset returns seconds from acquisition start to the calibration trigger,
// or zero if the trigger has not been seen.
func (c *Client) Offset() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

// GetData returns every buffered record.
func (c *Client) GetData() ([]Record, error) {
	buf := c.buffer()
	if buf == nil {
		return nil, nil
	}
	return buf.All()
}

// GetDataRange returns buffered records with start <= timestamp < end.
func (c *Client) GetDataRange(start, end float64) ([]Record, error) {
	buf := c.buffer()
	if buf == nil {
		return nil, nil
	}
	return buf.Query(start, end)
}

// GetDataLen returns the number of buffered records without scanning them.
func (c *Client) GetDataLen() int64 {
	buf := c.buffer()
	if buf == nil {
		return 0
	}
	return buf.Len()
}

// Close closes the record buffer. Data is unavailable afterward.
func (c *Client) Close() error {
	buf := c.buffer()
	if buf == nil {
		return nil
	}
	return buf.Close()
}

// Cleanup closes the buffer and deletes the archive file.
func (c *Client) Cleanup() error {
	buf := c.buffer()
	if buf == nil {
		return nil
	}
	return buf.Cleanup()
}

func (c *Client) buffer() *Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf
}
