package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-standings/internal/config"
	"github.com/riskibarqy/football-standings/internal/platform/logging"
)

func baseConfig() config.Config {
	return config.Config{
		AppEnv:            config.EnvDev,
		ServiceName:       "football-standings-api",
		ServiceVersion:    "dev",
		StandingsProvider: config.ProviderFootballData,
	}
}

func TestStart_AllBackendsDisabled(t *testing.T) {
	rt, err := Start(baseConfig(), logging.NewNop())
	require.NoError(t, err)
	assert.Empty(t, rt.stoppers)
	assert.NoError(t, rt.Shutdown(context.Background()))
}

func TestStart_UptraceWithoutDSN(t *testing.T) {
	cfg := baseConfig()
	cfg.UptraceEnabled = true
	cfg.UptraceDSN = "  "

	rt, err := Start(cfg, logging.NewNop())
	assert.Error(t, err)
	assert.Nil(t, rt)
}

func TestRuntimeShutdown_ReverseOrderAndJoinedErrors(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	rt := &Runtime{logger: logging.NewNop()}
	rt.add("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	rt.add("skipped", nil)
	rt.add("second", func(context.Context) error {
		order = append(order, "second")
		return boom
	})

	err := rt.Shutdown(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"second", "first"}, order)
	assert.NoError(t, rt.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestRuntimeShutdown_NilRuntime(t *testing.T) {
	var rt *Runtime
	assert.NoError(t, rt.Shutdown(context.Background()))
}

func TestProfilerTags(t *testing.T) {
	cfg := baseConfig()
	cfg.StandingsProvider = config.ProviderSportMonks

	assert.Equal(t, map[string]string{
		"env":      config.EnvDev,
		"service":  "football-standings-api",
		"version":  "dev",
		"provider": config.ProviderSportMonks,
	}, profilerTags(cfg))
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	newPprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPprofMux_RejectsPost(t *testing.T) {
	rec := httptest.NewRecorder()
	newPprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
