package diag

import (
	"os"
	"path/filepath"
	"sync"
)

// Sink receives complete diagnostic records.
type Sink interface {
	Append(record []byte) error
}

// FileSink appends records to a file. The file is opened in append mode for
// every record and closed again, so each record is one append-only write and
// the file is never held open between events.
type FileSink struct {
	Path string

	// Perm is the mode used when the file is created. Zero means 0644.
	Perm os.FileMode
}

// NewFileSink returns a sink appending to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

// Append writes record to the end of the file, creating it when missing.
func (s *FileSink) Append(record []byte) error {
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(record); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Dir returns the directory holding the file.
func (s *FileSink) Dir() string {
	return filepath.Dir(s.Path)
}

// MemorySink keeps records in memory.
type MemorySink struct {
	mu      sync.Mutex
	records []string
	err     error
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Append stores record, or returns the configured failure.
func (s *MemorySink) Append(record []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, string(record))
	return nil
}

// FailWith makes subsequent appends fail with err. A nil err restores
// normal operation.
func (s *MemorySink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Records returns a copy of the stored records.
func (s *MemorySink) Records() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.records...)
}

// Len returns the number of stored records.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type discard struct{}

func (discard) Append([]byte) error { return nil }

// Discard drops every record.
var Discard Sink = discard{}
