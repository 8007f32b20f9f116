package acquisition

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// Buffer archives acquisition records in a SQLite database so tasks can
// query time slices of the session after the fact. One column per channel
// plus a timestamp column, matching the channel order of the device.
type Buffer struct {
	path     string
	channels []string

	mu     sync.Mutex
	db     *sql.DB
	insert *sql.Stmt
	count  int64
	closed bool
}

// NewBuffer opens (creating if necessary) a record archive at path for the
// given channels.
func NewBuffer(path string, channels []string) (*Buffer, error) {
	if len(channels) == 0 {
		return nil, &AcquisitionError{Op: "open buffer", Err: fmt.Errorf("no channels")}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &AcquisitionError{Op: "open buffer", Err: err}
	}

	cols := make([]string, len(channels))
	for i, ch := range channels {
		cols[i] = quoteIdent(ch) + " REAL"
	}
	create := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS data (timestamp REAL NOT NULL, %s)",
		strings.Join(cols, ", "))
	if _, err := db.Exec(create); err != nil {
		db.Close()
		return nil, &AcquisitionError{Op: "create buffer table", Err: err}
	}

	quoted := make([]string, len(channels))
	holes := make([]string, len(channels)+1)
	holes[0] = "?"
	for i, ch := range channels {
		quoted[i] = quoteIdent(ch)
		holes[i+1] = "?"
	}
	insert, err := db.Prepare(fmt.Sprintf(
		"INSERT INTO data (timestamp, %s) VALUES (%s)",
		strings.Join(quoted, ", "), strings.Join(holes, ", ")))
	if err != nil {
		db.Close()
		return nil, &AcquisitionError{Op: "prepare buffer insert", Err: err}
	}

	var count int64
	if err := db.QueryRow("SELECT COUNT(*) FROM data").Scan(&count); err != nil {
		db.Close()
		return nil, &AcquisitionError{Op: "count buffer rows", Err: err}
	}

	return &Buffer{
		path:     path,
		channels: channels,
		db:       db,
		insert:   insert,
		count:    count,
	}, nil
}

// Append stores one record.
func (b *Buffer) Append(rec Record) error {
	if len(rec.Data) != len(b.channels) {
		return &AcquisitionError{
			Op:  "append",
			Err: fmt.Errorf("record has %d values, buffer has %d channels", len(rec.Data), len(b.channels)),
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBufferClosed
	}

	args := make([]any, 0, len(rec.Data)+1)
	args = append(args, rec.Timestamp)
	for _, v := range rec.Data {
		args = append(args, v)
	}
	if _, err := b.insert.Exec(args...); err != nil {
		return &AcquisitionError{Op: "append", Err: err}
	}
	b.count++
	return nil
}

// Len returns the number of archived records without scanning them.
func (b *Buffer) Len() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// All returns every archived record in timestamp order.
func (b *Buffer) All() ([]Record, error) {
	return b.queryRecords("SELECT * FROM data ORDER BY timestamp")
}

// Query returns records with start <= timestamp < end, in timestamp order.
func (b *Buffer) Query(start, end float64) ([]Record, error) {
	return b.queryRecords(
		"SELECT * FROM data WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp",
		start, end)
}

func (b *Buffer) queryRecords(query string, args ...any) ([]Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBufferClosed
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, &AcquisitionError{Op: "query", Err: err}
	}
	defer rows.Close()

	var records []Record
	scan := make([]any, len(b.channels)+1)
	for rows.Next() {
		rec := Record{Data: make([]float64, len(b.channels))}
		scan[0] = &rec.Timestamp
		for i := range rec.Data {
			scan[i+1] = &rec.Data[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, &AcquisitionError{Op: "scan", Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &AcquisitionError{Op: "query", Err: err}
	}
	return records, nil
}

// Close closes the underlying database. Records are unavailable afterward.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	b.insert.Close()
	return b.db.Close()
}

// Cleanup closes the buffer and deletes the archive file.
func (b *Buffer) Cleanup() error {
	if err := b.Close(); err != nil {
		return err
	}
	if err := os.Remove(b.path); err != nil && !os.IsNotExist(err) {
		return &AcquisitionError{Op: "cleanup", Err: err}
	}
	return nil
}

// quoteIdent quotes a channel name for use as a column identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, ``) + `"`
}
