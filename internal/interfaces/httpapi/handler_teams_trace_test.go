package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/riskibarqy/football-standings/internal/platform/logging"
)

func TestTeams_InvalidPathRecordsSpanError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	h := NewHandler(&stubTeamsProvider{}, logging.NewNop())

	serve := func(path string) {
		ctx, parent := provider.Tracer("test").Start(context.Background(), "request")
		defer parent.End()

		req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(ctx)
		h.Teams(httptest.NewRecorder(), req)
	}
	serve("/bogus")
	serve("/help")

	var handlerSpans []sdktrace.ReadOnlySpan
	for _, span := range recorder.Ended() {
		if span.Name() == "httpapi.Handler.Teams" {
			handlerSpans = append(handlerSpans, span)
		}
	}
	require.Len(t, handlerSpans, 2)

	invalid, help := handlerSpans[0], handlerSpans[1]
	assert.Equal(t, codes.Error, invalid.Status().Code)
	require.NotEmpty(t, invalid.Events())
	assert.Equal(t, "exception", invalid.Events()[0].Name)

	assert.NotEqual(t, codes.Error, help.Status().Code)
	assert.Empty(t, help.Events())
}
