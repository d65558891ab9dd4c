// Package diag implements the add-in's diagnostic side-channel: one
// timestamped line per host event, appended to a local file.
//
// Records look like
//
//	2026-10-18 09:14:02  OnConnection mode=Startup host=ONENOTE.EXE
//
// that is, local time, two spaces, the event name, then key=value pairs, and
// the platform line ending. Diagnostics are best effort: a record that cannot
// be written is dropped and never affects the caller.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
)

// TimeLayout is the timestamp layout of a record.
const TimeLayout = "2006-01-02 15:04:05"

// LineEnding is the platform line ending appended to each record.
var LineEnding = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// LineHandler is a slog.Handler that renders each record as a single
// diagnostic line and hands it to a Sink.
type LineHandler struct {
	sink       Sink
	level      slog.Leveler
	lineEnding string
	prefix     string
	attrs      []slog.Attr
	mu         *sync.Mutex
}

// HandlerOptions configures a LineHandler.
type HandlerOptions struct {
	// Level is the minimum level written. Nil means slog.LevelInfo.
	Level slog.Leveler

	// LineEnding overrides the platform line ending.
	LineEnding string
}

// NewLineHandler returns a handler writing to sink.
func NewLineHandler(sink Sink, opts *HandlerOptions) *LineHandler {
	h := &LineHandler{
		sink:       sink,
		level:      slog.LevelInfo,
		lineEnding: LineEnding,
		mu:         &sync.Mutex{},
	}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		if opts.LineEnding != "" {
			h.lineEnding = opts.LineEnding
		}
	}
	return h
}

// Enabled reports whether level is at or above the handler's level.
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats r and appends it to the sink in a single call.
func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString(ts.Local().Format(TimeLayout))
	b.WriteString("  ")
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.prefix, a)
		return true
	})
	b.WriteString(h.lineEnding)

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sink.Append([]byte(b.String()))
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, prefixed(h.prefix, a))
	}
	return &h2
}

// WithGroup returns a handler that qualifies subsequent keys with name.
func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func prefixed(prefix string, a slog.Attr) slog.Attr {
	if prefix == "" {
		return a
	}
	return slog.Attr{Key: prefix + a.Key, Value: a.Value}
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(b, p, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(quote(formatValue(a.Value)))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Local().Format(TimeLayout)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}

func quote(s string) string {
	if s == "" {
		return `""`
	}
	for _, r := range s {
		if unicode.IsSpace(r) || r == '"' || r == '=' || !unicode.IsPrint(r) {
			return strconv.Quote(s)
		}
	}
	return s
}
