package acquisition

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Processor consumes records as they are acquired.
type Processor interface {
	// Start prepares the processor for incoming records.
	Start() error

	// Process handles one sample frame with its timestamp.
	Process(data []float64, timestamp float64) error

	// Close flushes and releases the processor.
	Close() error
}

// FileWriter streams raw acquisition data to a CSV file. The file starts
// with two metadata rows (device type and sampling rate) followed by the
// header row of timestamp and channel names, one data row per record.
type FileWriter struct {
	path       string
	deviceName string
	fs         int
	channels   []string

	file   *os.File
	writer *csv.Writer
}

// NewFileWriter creates a raw-data writer for the given device parameters.
func NewFileWriter(path, deviceName string, fs int, channels []string) *FileWriter {
	return &FileWriter{
		path:       path,
		deviceName: deviceName,
		fs:         fs,
		channels:   channels,
	}
}

// Start implements Processor. It creates the file and writes the metadata
// and header rows.
func (w *FileWriter) Start() error {
	f, err := os.Create(w.path)
	if err != nil {
		return &AcquisitionError{Op: "create raw data file", Err: err}
	}
	w.file = f
	w.writer = csv.NewWriter(f)

	rows := [][]string{
		{"daq_type", w.deviceName},
		{"sample_rate", strconv.Itoa(w.fs)},
		append([]string{"timestamp"}, w.channels...),
	}
	for _, row := range rows {
		if err := w.writer.Write(row); err != nil {
			f.Close()
			return &AcquisitionError{Op: "write raw data header", Err: err}
		}
	}
	w.writer.Flush()
	return w.writer.Error()
}

// Process implements Processor.
func (w *FileWriter) Process(data []float64, timestamp float64) error {
	if w.writer == nil {
		return &AcquisitionError{Op: "process", Err: fmt.Errorf("writer not started")}
	}

	row := make([]string, 0, len(data)+1)
	row = append(row, strconv.FormatFloat(timestamp, 'f', -1, 64))
	for _, v := range data {
		row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
	}
	if err := w.writer.Write(row); err != nil {
		return &AcquisitionError{Op: "write raw data row", Err: err}
	}
	return nil
}

// Close implements Processor.
func (w *FileWriter) Close() error {
	if w.writer == nil {
		return nil
	}
	w.writer.Flush()
	err := w.writer.Error()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	w.writer = nil
	return err
}
