package acquisition

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rawdata.csv")
	w := NewFileWriter(path, "DSI", 300, []string{"P3", "P4", "TRG"})

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Process([]float64{1.5, -2.25, 0}, 0); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if err := w.Process([]float64{2, 3, 1}, 1); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open raw data: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("read raw data: %v", err)
	}

	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5 (two metadata, header, two data)", len(rows))
	}
	if rows[0][0] != "daq_type" || rows[0][1] != "DSI" {
		t.Errorf("metadata row = %v, want daq_type DSI", rows[0])
	}
	if rows[1][0] != "sample_rate" || rows[1][1] != "300" {
		t.Errorf("metadata row = %v, want sample_rate 300", rows[1])
	}
	wantHeader := []string{"timestamp", "P3", "P4", "TRG"}
	for i, col := range wantHeader {
		if rows[2][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[2][i], col)
		}
	}
	if rows[3][1] != "1.5" || rows[3][2] != "-2.25" {
		t.Errorf("data row = %v, want values 1.5 and -2.25", rows[3])
	}
}

func TestFileWriterNotStarted(t *testing.T) {
	w := NewFileWriter(filepath.Join(t.TempDir(), "x.csv"), "mock", 100, []string{"c1"})
	if err := w.Process([]float64{1}, 0); err == nil {
		t.Error("Process before Start should fail")
	}
}
