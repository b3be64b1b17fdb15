// Package audit records successful sensitive actions as append-only,
// line-oriented log entries:
//
//	[2026-08-31T10:00:00Z] [AUDIT] event.created {"eventId":"...","userId":"..."}
//
// Sensitive keys are redacted recursively before serialisation. An
// optional sink can additionally persist entries for the admin panel.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Sink persists audit entries beyond the line log.
type Sink interface {
	Persist(ctx context.Context, action string, meta map[string]any, at time.Time) error
}

// Logger writes audit entries. Safe for concurrent use.
type Logger struct {
	mu   sync.Mutex
	out  io.Writer
	sink Sink
	slog *slog.Logger
	now  func() time.Time
}

// Option configures a Logger.
type Option func(*Logger)

// WithWriter redirects the line output, stdout by default.
func WithWriter(w io.Writer) Option {
	return func(l *Logger) { l.out = w }
}

// WithSink attaches a persistence sink. Sink failures are logged and
// never fail the action.
func WithSink(s Sink) Option {
	return func(l *Logger) { l.sink = s }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// NewLogger constructs a Logger.
func NewLogger(logger *slog.Logger, opts ...Option) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Logger{out: os.Stdout, slog: logger, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record emits one entry for a successful action. Meta is redacted at
// every nesting level before serialisation.
func (l *Logger) Record(ctx context.Context, action string, meta map[string]any) {
	if l == nil || action == "" {
		return
	}
	at := l.now().UTC()
	masked := Redact(meta)
	payload, err := json.Marshal(masked)
	if err != nil {
		payload = []byte("{}")
	}

	l.mu.Lock()
	fmt.Fprintf(l.out, "[%s] [AUDIT] %s %s\n", at.Format(time.RFC3339), action, payload)
	l.mu.Unlock()

	if l.sink != nil {
		redacted, _ := masked.(map[string]any)
		if err := l.sink.Persist(ctx, action, redacted, at); err != nil {
			l.slog.Warn("audit sink persist failed",
				slog.String("action", action), slog.Any("error", err))
		}
	}
}
