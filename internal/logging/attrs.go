package logging

import (
	"context"
	"log/slog"
	"time"
)

// Attr aliases slog.Attr so callers can build structured fields without
// importing log/slog alongside this package.
type Attr = slog.Attr

func String(key, value string) Attr { return slog.String(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Time(key string, value time.Time) Attr { return slog.Time(key, value) }

func Any(key string, value any) Attr { return slog.Any(key, value) }

// Error places err under the conventional "error" key. A nil error renders
// as the literal string "<nil>".
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(discardHandler{})
}

// NewComponentLogger tags every record from the returned logger with the
// given component name. A nil base falls back to the no-op logger.
func NewComponentLogger(base *slog.Logger, component string) *slog.Logger {
	if base == nil {
		base = NewNop()
	}
	return base.With(String(FieldComponent, component))
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
