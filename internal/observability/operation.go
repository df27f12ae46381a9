package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	geoerrors "github.com/gezibash/geoclient/pkg/errors"
)

// Operation tracks one client command from validation to printed result.
// Its status label is the error class code ("ok", "connection", ...).
type Operation struct {
	ctx     context.Context
	span    trace.Span
	metrics *Metrics
	command string
	start   time.Time
	logger  *slog.Logger
}

// StartOperation opens the command span that request spans nest under.
// m may be nil.
func StartOperation(ctx context.Context, m *Metrics, command string, attrs ...attribute.KeyValue) (*Operation, context.Context) {
	attrs = append([]attribute.KeyValue{attribute.String("geoclient.command", command)}, attrs...)
	ctx, span := StartSpan(ctx, "geoclient "+command, attrs...)

	op := &Operation{
		ctx:     ctx,
		span:    span,
		metrics: m,
		command: command,
		start:   time.Now(),
		logger:  slog.Default().With("command", command),
	}
	op.logger.DebugContext(ctx, "command started")
	return op, ctx
}

// End closes the span and records duration under the class of err.
func (o *Operation) End(err error) {
	elapsed := time.Since(o.start)
	status := geoerrors.Code(err)
	o.logger.DebugContext(o.ctx, "command finished", "status", status, "duration", elapsed)

	EndSpan(o.span, err)
	if o.metrics == nil {
		return
	}
	o.metrics.OperationDuration.WithLabelValues(o.command, status).Observe(elapsed.Seconds())
	o.metrics.OperationTotal.WithLabelValues(o.command, status).Inc()
}
