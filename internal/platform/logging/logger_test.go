package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, zapcore.AddSync(&buf)).Named("httpapi")

	logger.Info("http request", "path", "/teams/all", "status", 200, "error", errors.New("boom"))

	var line map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "httpapi", line["logger"])
	assert.Equal(t, "/teams/all", line["path"])
	assert.EqualValues(t, 200, line["status"])
	assert.Equal(t, "boom", line["error"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelWarn, zapcore.AddSync(&buf))

	logger.Info("ignored")
	logger.Debug("ignored")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestLogger_AddsTraceFieldsFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, zapcore.AddSync(&buf))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "traced")

	var line map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", line["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", line["span_id"])
}

func TestLogger_OddArgsAndNilReceiver(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, zapcore.AddSync(&buf))
	logger.Info("odd", "dangling")
	assert.Contains(t, buf.String(), `"dangling":null`)

	var nilLogger *Logger
	assert.NotPanics(t, func() { nilLogger.Info("falls back to default") })
}

func TestSetDefault_NilFallsBackToNop(t *testing.T) {
	previous := Default()
	t.Cleanup(func() { SetDefault(previous) })

	SetDefault(nil)
	assert.NotNil(t, Default())
}

func TestLogger_LogContextUsesGivenLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, zapcore.AddSync(&buf))

	logger.LogContext(context.Background(), LevelWarn, "slow upstream", "provider", "footballdata")

	var line map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "footballdata", line["provider"])
}
