package log

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends CBOR-encoded events to a log file. A single file
// may accumulate events from many runs and devices; Reader separates
// them again. Safe for concurrent use.
type FileLogger struct {
	mu     sync.Mutex
	file   *os.File
	enc    *cbor.Encoder
	closed bool
}

// NewFileLogger opens path for appending, creating it if needed.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{file: f, enc: newEncoder(f)}, nil
}

// Log appends the event to the file. Encoding and write errors are
// swallowed: a broken log must not abort a circuit execution. Events
// logged after Close are dropped.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	_ = l.enc.Encode(event)
}

// Close closes the underlying file. Calling Close again is a no-op.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}

var _ Logger = (*FileLogger)(nil)
