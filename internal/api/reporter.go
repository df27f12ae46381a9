package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gezibash/geoclient/pkg/logging"
)

// Reporter observes each request and response. It must not modify them.
type Reporter interface {
	Request(req *http.Request)
	Response(resp *Response)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Request(*http.Request) {}
func (NopReporter) Response(*Response)    {}

// LogReporter writes one structured line per request/response field.
type LogReporter struct {
	log *logging.Logger
}

// NewLogReporter creates a Reporter that logs through l at info level.
// A nil l reports nothing.
func NewLogReporter(l *logging.Logger) *LogReporter {
	if l == nil {
		l = logging.Discard()
	}
	return &LogReporter{log: l.WithComponent("api")}
}

func (r *LogReporter) Request(req *http.Request) {
	if !r.log.Enabled(req.Context(), slog.LevelInfo) {
		return
	}
	r.log.InfoContext(req.Context(), "request URI", "uri", req.URL.String())
	r.log.InfoContext(req.Context(), "request method", "method", req.Method)
	r.log.InfoContext(req.Context(), "request headers", "headers", logging.FormatHeaders(req.Header))
}

func (r *LogReporter) Response(resp *Response) {
	if !r.log.Enabled(context.Background(), slog.LevelInfo) {
		return
	}
	r.log.Info("response headers", "headers", logging.FormatHeaders(resp.Header))
	r.log.Info("response status", "status", resp.StatusLine(), "code", resp.StatusCode)
}
