// Package observability wires logging, tracing and metrics for one client run.
//
// A run is short: everything is set up before the request and flushed by
// Close before the process exits.
package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// flushTimeout bounds Close so an unreachable collector cannot hold the
// process open after the response has been printed.
const flushTimeout = 5 * time.Second

// ObsConfig is the config subset needed by the observability package.
type ObsConfig struct {
	LogLevel       string
	LogFormat      string
	OTLPEndpoint   string
	OTLPProtocol   string
	ServiceName    string
	ServiceVersion string
	// MetricsFile receives the run's metrics in textfile-collector format.
	MetricsFile string
}

// Observability holds the components of one run.
type Observability struct {
	Logger         *slog.Logger
	Metrics        *Metrics
	TracerProvider trace.TracerProvider
	Shutdown       *ShutdownCoordinator

	sdkTP *sdktrace.TracerProvider
}

// New installs the logger writing to w, creates the metrics registry and,
// when cfg.OTLPEndpoint is set, an exporting tracer provider.
func New(ctx context.Context, cfg ObsConfig, w io.Writer) (*Observability, error) {
	o := &Observability{
		Logger:   SetupLogger(cfg.LogLevel, cfg.LogFormat, w),
		Metrics:  NewMetrics(),
		Shutdown: &ShutdownCoordinator{},
	}
	if err := o.setupTracing(ctx, cfg); err != nil {
		return nil, err
	}
	o.setupMetricsFile(cfg.MetricsFile)
	return o, nil
}

func (o *Observability) setupTracing(ctx context.Context, cfg ObsConfig) error {
	if cfg.OTLPEndpoint == "" {
		o.TracerProvider = tracenoop.NewTracerProvider()
		o.Logger.Debug("tracing disabled", "reason", "no otlp_endpoint")
		return nil
	}

	tp, sdkTP, err := InitTracer(ctx, TracerConfig{
		Endpoint:       cfg.OTLPEndpoint,
		Protocol:       cfg.OTLPProtocol,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
	})
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	o.TracerProvider, o.sdkTP = tp, sdkTP
	o.Shutdown.Register("tracer", sdkTP.Shutdown)
	return nil
}

func (o *Observability) setupMetricsFile(path string) {
	if path == "" {
		return
	}
	o.Shutdown.Register("metrics-textfile", func(context.Context) error {
		return o.Metrics.WriteTextfile(path)
	})
}

// Close flushes spans and writes the metrics file, giving up after
// flushTimeout.
func (o *Observability) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	return o.Shutdown.Shutdown(ctx)
}
