package acquisition

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testFrames(n, triggerAt int) [][]float64 {
	frames := make([][]float64, n)
	for i := range frames {
		trigger := 0.0
		if i == triggerAt {
			trigger = 1.0
		}
		frames[i] = []float64{float64(i), float64(i) * 2, trigger}
	}
	return frames
}

func testClient(t *testing.T, device Device) *Client {
	t.Helper()

	dir := t.TempDir()
	client, err := NewClient(ClientConfig{
		Device:      device,
		RawDataPath: filepath.Join(dir, "rawdata.csv"),
		BufferPath:  filepath.Join(dir, "buffer.db"),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

// waitForSamples polls until the client has buffered n records.
func waitForSamples(t *testing.T, client *Client, n int64) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for client.GetDataLen() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d samples, have %d", n, client.GetDataLen())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestClientAcquisition(t *testing.T) {
	device := NewMockDevice(10, []string{"P3", "P4", "TRG"}, testFrames(20, 5))
	client := testClient(t, device)

	if err := client.StartAcquisition(context.Background()); err != nil {
		t.Fatalf("StartAcquisition: %v", err)
	}
	if !client.IsStreaming() {
		t.Error("IsStreaming() = false after start")
	}

	waitForSamples(t, client, 20)

	if err := client.StopAcquisition(); err != nil {
		t.Fatalf("StopAcquisition: %v", err)
	}
	if client.IsStreaming() {
		t.Error("IsStreaming() = true after stop")
	}

	// Buffer stays queryable after stop.
	records, err := client.GetData()
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if len(records) != 20 {
		t.Fatalf("got %d records, want 20", len(records))
	}
	if records[5].Trigger() != 1.0 {
		t.Errorf("record 5 trigger = %v, want 1.0", records[5].Trigger())
	}

	slice, err := client.GetDataRange(3, 6)
	if err != nil {
		t.Fatalf("GetDataRange: %v", err)
	}
	if len(slice) != 3 {
		t.Errorf("GetDataRange(3, 6) returned %d records, want 3", len(slice))
	}

	// Calibration trigger fired at sample 5, fs 10 -> 0.5s offset.
	if !client.IsCalibrated() {
		t.Error("IsCalibrated() = false, want true")
	}
	if got := client.Offset(); got != 0.5 {
		t.Errorf("Offset() = %v, want 0.5", got)
	}
}

func TestClientStartIdempotent(t *testing.T) {
	device := NewMockDevice(10, []string{"c1"}, testFrames(5, -1))
	client := testClient(t, device)

	if err := client.StartAcquisition(context.Background()); err != nil {
		t.Fatalf("StartAcquisition: %v", err)
	}
	// Starting while streaming is a no-op, not an error.
	if err := client.StartAcquisition(context.Background()); err != nil {
		t.Fatalf("second StartAcquisition: %v", err)
	}
	if device.InitCalls() != 1 {
		t.Errorf("device initialized %d times, want 1", device.InitCalls())
	}
	client.StopAcquisition()
}

func TestClientStopWithoutStart(t *testing.T) {
	client := testClient(t, NewMockDevice(10, []string{"c1"}, nil))
	if err := client.StopAcquisition(); !errors.Is(err, ErrNotStreaming) {
		t.Errorf("StopAcquisition error = %v, want ErrNotStreaming", err)
	}
}

func TestClientConnectError(t *testing.T) {
	device := NewMockDevice(10, []string{"c1"}, nil)
	device.ConnectErr = errors.New("cable unplugged")
	client := testClient(t, device)

	err := client.StartAcquisition(context.Background())
	if err == nil {
		t.Fatal("StartAcquisition should fail when connect fails")
	}
	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("error %T should be *AcquisitionError", err)
	}
	if acqErr.Op != "connect" {
		t.Errorf("Op = %q, want %q", acqErr.Op, "connect")
	}
	if client.IsStreaming() {
		t.Error("client should not be streaming after failed start")
	}
}

func TestClientNoDevice(t *testing.T) {
	if _, err := NewClient(ClientConfig{}); !errors.Is(err, ErrNoDevice) {
		t.Errorf("NewClient error = %v, want ErrNoDevice", err)
	}
}

func TestClientRawDataFile(t *testing.T) {
	dir := t.TempDir()
	device := NewMockDevice(10, []string{"c1", "TRG"}, testFrames2(3))
	client, err := NewClient(ClientConfig{
		Device:      device,
		RawDataPath: filepath.Join(dir, "rawdata.csv"),
		BufferPath:  filepath.Join(dir, "buffer.db"),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if err := client.StartAcquisition(context.Background()); err != nil {
		t.Fatalf("StartAcquisition: %v", err)
	}
	waitForSamples(t, client, 3)
	client.StopAcquisition()

	data, err := os.ReadFile(filepath.Join(dir, "rawdata.csv"))
	if err != nil {
		t.Fatalf("raw data file missing: %v", err)
	}
	if len(data) == 0 {
		t.Error("raw data file is empty")
	}
}

func testFrames2(n int) [][]float64 {
	frames := make([][]float64, n)
	for i := range frames {
		frames[i] = []float64{float64(i), 0}
	}
	return frames
}
