package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ShutdownCoordinator runs end-of-run flush handlers (trace export, metrics
// textfile) in reverse registration order. Handlers run at most once.
type ShutdownCoordinator struct {
	mu       sync.Mutex
	handlers []namedHandler
	done     bool
}

type namedHandler struct {
	name string
	fn   func(context.Context) error
}

// Register adds a shutdown handler. Handlers registered after Shutdown
// are ignored.
func (s *ShutdownCoordinator) Register(name string, fn func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.handlers = append(s.handlers, namedHandler{name: name, fn: fn})
}

// Shutdown runs every registered handler, newest first, and joins their
// errors. Later calls are no-ops.
func (s *ShutdownCoordinator) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return nil
	}
	s.done = true
	handlers := s.handlers
	s.handlers = nil
	s.mu.Unlock()

	var errs []error
	for i := len(handlers) - 1; i >= 0; i-- {
		h := handlers[i]
		slog.Debug("flushing", "component", h.name)
		if err := h.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
		}
	}
	return errors.Join(errs...)
}
