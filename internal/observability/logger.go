package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger is the process-wide logger. It starts as a no-op so packages and
// tests can log before InitLogger runs.
var Logger = zap.NewNop()

// InitLogger installs a production JSON logger writing to outputPaths, or to
// stderr when none are given.
func InitLogger(outputPaths ...string) error {
	cfg := zap.NewProductionConfig()
	if len(outputPaths) > 0 {
		cfg.OutputPaths = outputPaths
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	Logger = logger
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger enriched with trace_id and span_id
// fields from the active OTel span in ctx.
//
// ctx itself rides along as a zap.Any("context", ctx) field: the otelzap
// bridge picks up any field holding a context.Context and emits the record
// with it, so OTLP log records carry the native TraceID/SpanID that Loki needs
// for trace correlation. The string fields keep stdout JSON greppable.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
