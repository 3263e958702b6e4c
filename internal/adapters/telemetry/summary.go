package telemetry

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/mirror/internal/core/ports"
)

// SpanLogger implements sdktrace.SpanProcessor and logs every ended span with its duration.
// It backs the --trace flag of the CLI.
type SpanLogger struct {
	logger ports.Logger
}

// NewSpanLogger returns a SpanLogger writing to logger.
func NewSpanLogger(logger ports.Logger) *SpanLogger {
	return &SpanLogger{logger: logger}
}

// NewProvider returns a tracer provider that logs spans to logger.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewSpanLogger(logger)))
}

// OnStart does nothing.
func (l *SpanLogger) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span.
func (l *SpanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	var b strings.Builder
	b.WriteString("trace: ")
	b.WriteString(s.Name())
	for _, attr := range s.Attributes() {
		b.WriteString(" ")
		b.WriteString(string(attr.Key))
		b.WriteString("=")
		b.WriteString(attr.Value.Emit())
	}
	b.WriteString(" (")
	b.WriteString(s.EndTime().Sub(s.StartTime()).Round(time.Millisecond).String())
	b.WriteString(")")

	if s.Status().Code == codes.Error {
		b.WriteString(": ")
		b.WriteString(s.Status().Description)
		l.logger.Warn(b.String())
		return
	}
	l.logger.Info(b.String())
}

// ForceFlush does nothing.
func (l *SpanLogger) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (l *SpanLogger) Shutdown(_ context.Context) error {
	return nil
}
