package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/riskibarqy/football-standings/internal/platform/logging"
)

func TestStartSpan_NoParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.Teams")
	defer span.End()

	assert.Equal(t, ctx, got)
	assert.False(t, span.SpanContext().IsValid())
}

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: "/health", want: false},
		{path: "/livez", want: false},
		{path: "/readyz", want: false},
		{path: " /HEALTHZ ", want: false},
		{path: "/teams/all", want: true},
		{path: "/teams/division/FRENCH_LIGUE1", want: true},
		{path: "/teams", want: true},
		{path: "/", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldTraceRequest(tt.path))
		})
	}
}

func TestRouteTemplate(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/teams/all", want: "/teams/all"},
		{path: "/teams/help", want: "/teams/help"},
		{path: "/teams/division/FRENCH_LIGUE1", want: "/teams/division/{name}"},
		{path: "/teams/division/NOPE", want: "/teams/*"},
		{path: "/teams", want: "/teams/*"},
		{path: "/teamsheet", want: "/teamsheet"},
		{path: "/healthz", want: "/healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, routeTemplate(tt.path))
		})
	}
}

func TestAccessLogLevel(t *testing.T) {
	assert.Equal(t, logging.LevelInfo, accessLogLevel(http.StatusOK))
	assert.Equal(t, logging.LevelInfo, accessLogLevel(http.StatusNoContent))
	assert.Equal(t, logging.LevelWarn, accessLogLevel(http.StatusBadRequest))
	assert.Equal(t, logging.LevelError, accessLogLevel(http.StatusServiceUnavailable))
}

func TestRequestLogging_RecordsStatusAndBytes(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.LevelInfo, zapcore.AddSync(&buf))
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("nope\n"))
	})

	rec := httptest.NewRecorder()
	RequestLogging(logger, next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teams/bogus", nil))

	var line map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "/teams/bogus", line["path"])
	assert.EqualValues(t, http.StatusBadRequest, line["status"])
	assert.EqualValues(t, 5, line["bytes"])
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
		wantVary   string
	}{
		{
			name:       "configured origin",
			allowed:    []string{"https://standings.example.com"},
			method:     http.MethodGet,
			origin:     "https://standings.example.com",
			wantStatus: http.StatusOK,
			wantOrigin: "https://standings.example.com",
			wantVary:   "Origin",
		},
		{
			name:       "wildcard preflight",
			allowed:    []string{" * "},
			method:     http.MethodOptions,
			origin:     "https://standings.example.com",
			wantStatus: http.StatusNoContent,
			wantOrigin: "*",
		},
		{
			name:       "unconfigured origin",
			allowed:    []string{"https://allowed.example.com", ""},
			method:     http.MethodGet,
			origin:     "https://not-allowed.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no origin header",
			allowed:    []string{"*"},
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/teams/all", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed, next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantVary, rec.Header().Get("Vary"))
		})
	}
}
