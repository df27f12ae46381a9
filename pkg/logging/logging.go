// Package logging provides a small slog wrapper for request/response reporting.
package logging

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
)

// Logger wraps slog.Logger with a fixed attribute prefix.
type Logger struct {
	base  *slog.Logger
	attrs []slog.Attr
}

// New wraps base, or slog.Default() when base is nil.
func New(base *slog.Logger) *Logger {
	if base == nil {
		base = slog.Default()
	}
	return &Logger{base: base}
}

// Discard returns a Logger that drops every record.
func Discard() *Logger {
	return &Logger{base: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

// With returns a copy of l that prepends attrs to every record.
func (l *Logger) With(attrs ...slog.Attr) *Logger {
	merged := make([]slog.Attr, 0, len(l.attrs)+len(attrs))
	merged = append(merged, l.attrs...)
	merged = append(merged, attrs...)
	return &Logger{base: l.base, attrs: merged}
}

// WithComponent tags records with component=name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.With(slog.String("component", name))
}

// Enabled reports whether records at level would be written.
func (l *Logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.base.Enabled(ctx, level)
}

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, args...)
}

// InfoContext logs at info level; ctx carries the trace for TraceHandler.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, args...)
}

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.base.Enabled(ctx, level) {
		return
	}
	all := make([]any, 0, len(l.attrs)+len(args))
	for _, a := range l.attrs {
		all = append(all, a)
	}
	l.base.Log(ctx, level, msg, append(all, args...)...)
}

// FormatHeaders renders headers as "Name: value" pairs in name order,
// e.g. "[Content-Length: 36, Content-Type: text/plain]".
func FormatHeaders(h http.Header) string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		for _, v := range h[name] {
			parts = append(parts, name+": "+v)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
