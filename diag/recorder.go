package diag

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Recorder writes diagnostic records and never fails.
type Recorder struct {
	handler  slog.Handler
	logger   *slog.Logger
	now      func() time.Time
	written  atomic.Int64
	failures atomic.Int64
}

// NewRecorder returns a Recorder writing through handler. Dropped records
// are reported at debug level on logger, which may be nil.
func NewRecorder(handler slog.Handler, logger *slog.Logger) *Recorder {
	if handler == nil {
		handler = NewLineHandler(Discard, nil)
	}
	return &Recorder{handler: handler, logger: logger, now: time.Now}
}

// NewFileRecorder returns a Recorder appending to the file at path.
func NewFileRecorder(path string, logger *slog.Logger) *Recorder {
	return NewRecorder(NewLineHandler(NewFileSink(path), nil), logger)
}

// Record writes one record for event with the given key/value pairs. Any
// failure, including a panic in the sink, is swallowed.
func (r *Recorder) Record(event string, args ...any) {
	if r == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			r.dropped(event, p)
		}
	}()

	rec := slog.NewRecord(r.now(), slog.LevelInfo, event, 0)
	rec.Add(args...)
	if err := r.handler.Handle(context.Background(), rec); err != nil {
		r.dropped(event, err)
		return
	}
	r.written.Add(1)
}

func (r *Recorder) dropped(event string, cause any) {
	r.failures.Add(1)
	if r.logger != nil {
		r.logger.Debug("diagnostic record dropped", "component", "diag", "event", event, "error", cause)
	}
}

// Logger returns a slog.Logger over the recorder's handler.
func (r *Recorder) Logger() *slog.Logger {
	return slog.New(r.handler)
}

// Written returns the number of records written.
func (r *Recorder) Written() int64 {
	return r.written.Load()
}

// Failures returns the number of records dropped.
func (r *Recorder) Failures() int64 {
	return r.failures.Load()
}
