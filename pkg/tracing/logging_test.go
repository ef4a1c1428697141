package tracing_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/attrkit/pkg/tracing"
)

func TestLoggingTracer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	span := tracing.NewLoggingTracer(logger).StartSpan("dereference")
	span.SetBaggageItem("nodes", 12)
	span.Finish()

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "trace", entry["msg"])
	assert.Equal(t, "dereference", entry["operation_name"])
	assert.InDelta(t, 12, entry["nodes"], 0)
	assert.Contains(t, entry, "time_ms")
}

func TestNopTracer(t *testing.T) {
	t.Parallel()

	span := tracing.NopTracer{}.StartSpan("filter")
	span.SetBaggageItem("nodes", 1)
	span.Finish()
}
