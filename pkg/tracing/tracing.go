// Package tracing records the duration of pipeline stages.
package tracing

// Tracer starts spans.
type Tracer interface {
	StartSpan(operationName string) Span
}

// Span is a single timed operation.
type Span interface {
	SetBaggageItem(key string, value any)
	Finish()
}

var (
	_ Tracer = NopTracer{}
	_ Span   = nopSpan{}
)

// NopTracer discards all spans.
type NopTracer struct{}

//nolint:ireturn
func (NopTracer) StartSpan(string) Span { return nopSpan{} }

type nopSpan struct{}

func (nopSpan) SetBaggageItem(string, any) {}
func (nopSpan) Finish()                    {}
