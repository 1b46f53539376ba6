package sportmonks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-standings/internal/platform/logging"
	"github.com/riskibarqy/football-standings/internal/platform/resilience"
	"github.com/riskibarqy/football-standings/internal/usecase"
)

const liveStandingsBody = `{"data":[
	{"participant_id":53,"position":1,"points":30,"updated_at":"2025-11-02 18:00:00",
	 "participant":{"id":53,"name":"Celtic"},
	 "details":[{"type_id":129,"value":12},{"type_id":130,"value":10},{"type_id":131,"value":0},{"type_id":132,"value":2},{"type_id":179,"value":21}]},
	{"participant_id":62,"position":2,"points":25,
	 "participant":{"id":62,"name":"Rangers"},
	 "details":[{"type_id":129,"value":12},{"type_id":130,"value":8},{"type_id":131,"value":1},{"type_id":132,"value":3},{"type_id":179,"value":14}]}
]}`

func newTestClient(baseURL string, retries int, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		Token:          "secret-token",
		Timeout:        2 * time.Second,
		MaxRetries:     retries,
		RetryInterval:  time.Millisecond,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestFetchStandings_Success(t *testing.T) {
	var gotPath, gotToken, gotInclude string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("api_token")
		gotInclude = r.URL.Query().Get("include")
		_, _ = w.Write([]byte(liveStandingsBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{})
	rows, err := client.FetchStandings(context.Background(), " 501 ")
	require.NoError(t, err)

	assert.Equal(t, "/standings/live/leagues/501", gotPath)
	assert.Equal(t, "secret-token", gotToken)
	assert.Equal(t, defaultIncludeStanding, gotInclude)

	require.Len(t, rows, 2)
	assert.Equal(t, "Celtic", rows[0].TeamName)
	assert.Equal(t, 12, rows[0].Played)
	assert.Equal(t, 10, rows[0].Won)
	assert.Equal(t, 21, rows[0].GoalDifference)
	assert.Equal(t, 30, rows[0].Points)
	require.NotNil(t, rows[0].SourceUpdatedAt)
	assert.Equal(t, 2025, rows[0].SourceUpdatedAt.Year())
	assert.Equal(t, "Rangers", rows[1].TeamName)
}

func TestFetchStandings_InvalidLeagueID(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0", 0, resilience.CircuitBreakerConfig{})

	for _, code := range []string{"", "PL", "-3", "0"} {
		_, err := client.FetchStandings(context.Background(), code)
		assert.ErrorIs(t, err, usecase.ErrInvalidInput, "code %q", code)
	}
}

func TestFetchStandings_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(liveStandingsBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2, resilience.CircuitBreakerConfig{})
	rows, err := client.FetchStandings(context.Background(), "501")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchStandings_DoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"no access to league"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3, resilience.CircuitBreakerConfig{})
	_, err := client.FetchStandings(context.Background(), "501")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=403")
	assert.NotContains(t, err.Error(), "secret-token")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchStandings_CircuitOpens(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	_, err := client.FetchStandings(context.Background(), "501")
	require.Error(t, err)
	assert.False(t, errors.Is(err, usecase.ErrDependencyUnavailable))

	_, err = client.FetchStandings(context.Background(), "501")
	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSanitizeSensitiveText(t *testing.T) {
	got := sanitizeSensitiveText(`Get "https://x/y?api_token=abc123&include=a": dial tcp`, "")
	assert.True(t, strings.Contains(got, "api_token=REDACTED"))
	assert.False(t, strings.Contains(got, "abc123"))

	assert.Equal(t, "https://x/y?api_token=REDACTED&include=a", redactAPIURL("https://x/y?api_token=abc123&include=a"))
}
