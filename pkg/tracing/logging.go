package tracing

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"
)

var (
	_ Tracer = LoggingTracer{}
	_ Span   = &loggingSpan{}
)

// LoggingTracer writes each finished span as a debug record.
type LoggingTracer struct {
	logger *slog.Logger
}

// NewLoggingTracer returns a [LoggingTracer] writing to logger, or to the
// default logger when logger is nil.
func NewLoggingTracer(logger *slog.Logger) LoggingTracer {
	return LoggingTracer{logger: logger}
}

//nolint:ireturn
func (l LoggingTracer) StartSpan(operationName string) Span {
	logger := l.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &loggingSpan{
		logger:        logger,
		operationName: operationName,
		baggage:       map[string]any{},
		start:         time.Now(),
	}
}

type loggingSpan struct {
	start         time.Time
	logger        *slog.Logger
	baggage       map[string]any
	operationName string
}

func (s *loggingSpan) Finish() {
	attrs := make([]slog.Attr, 0, len(s.baggage)+2)
	for _, k := range slices.Sorted(maps.Keys(s.baggage)) {
		attrs = append(attrs, slog.Any(k, s.baggage[k]))
	}

	attrs = append(attrs,
		slog.String("operation_name", s.operationName),
		slog.Float64("time_ms", time.Since(s.start).Seconds()*1e3),
	)

	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

func (s *loggingSpan) SetBaggageItem(key string, value any) {
	s.baggage[key] = value
}
