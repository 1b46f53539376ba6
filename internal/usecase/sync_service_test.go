package usecase

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/riskibarqy/football-standings/internal/domain/division"
	"github.com/riskibarqy/football-standings/internal/domain/standing"
	standingmock "github.com/riskibarqy/football-standings/internal/mocks/domain/standing"
	"github.com/riskibarqy/football-standings/internal/platform/logging"
)

type stubStandingsProvider struct {
	mu     sync.Mutex
	rows   map[string][]ExternalStanding
	errs   map[string]error
	called []string
}

func (s *stubStandingsProvider) FetchStandings(_ context.Context, code string) ([]ExternalStanding, error) {
	s.mu.Lock()
	s.called = append(s.called, code)
	s.mu.Unlock()

	if err := s.errs[code]; err != nil {
		return nil, err
	}
	return s.rows[code], nil
}

func resultFor(t *testing.T, result SyncResult, div division.Division) SyncDivisionResult {
	t.Helper()
	for _, row := range result.Divisions {
		if row.Division == div.String() {
			return row
		}
	}
	t.Fatalf("no result for division %s", div)
	return SyncDivisionResult{}
}

func TestSyncService_SyncAll(t *testing.T) {
	t.Parallel()

	provider := &stubStandingsProvider{
		rows: map[string][]ExternalStanding{
			"PL": {
				{TeamName: "West Ham", Position: 2, Played: 6, Won: 3, Draw: 2, Lost: 1, GoalsFor: 10, GoalsAgainst: 6, GoalDifference: 4, Points: 11},
				{TeamName: " Arsenal ", Position: 1, Played: 6, Won: 5, Draw: 1, Lost: 0, GoalsFor: 14, GoalsAgainst: 3, GoalDifference: 11, Points: 16},
			},
			"BL1": {
				{TeamName: "Bayern", Position: 1, Played: 3, Won: 2, Draw: 0, Lost: 0, Points: 6},
			},
			"FL1": {},
		},
		errs: map[string]error{
			"PD": errors.New("upstream 503"),
		},
	}

	repo := standingmock.NewRepository(t)
	repo.
		On("ReplaceByDivision", mock.Anything, division.EnglishPremiership, mock.AnythingOfType("[]standing.Team")).
		Run(func(args mock.Arguments) {
			teams := args.Get(2).([]standing.Team)
			if !assert.Len(t, teams, 2) {
				return
			}
			assert.Equal(t, "Arsenal", teams[0].Name)
			assert.Equal(t, "5-1-0", teams[0].Form)
			assert.Equal(t, "West Ham", teams[1].Name)
			assert.Equal(t, 4, teams[1].GoalDifference)
			assert.Equal(t, "3-2-1", teams[1].Form)
		}).
		Return(nil).
		Once()

	service := NewSyncService(provider, repo, map[division.Division]string{
		division.EnglishPremiership: "PL",
		division.GermanBundesliga:   "BL1",
		division.FrenchLigue1:       "FL1",
		division.SpanishPrimera:     "PD",
	}, 3, logging.NewNop())

	result, err := service.SyncAll(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Divisions, len(division.All()))
	for i, div := range division.All() {
		assert.Equal(t, div.String(), result.Divisions[i].Division)
	}

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.FailedCount)
	assert.Equal(t, 6, result.SkippedCount)

	pl := resultFor(t, result, division.EnglishPremiership)
	assert.Equal(t, syncStatusSuccess, pl.Status)
	assert.Equal(t, 2, pl.Records)

	// Bayern's record does not add up to games played.
	bl := resultFor(t, result, division.GermanBundesliga)
	assert.Equal(t, syncStatusFailed, bl.Status)
	assert.Contains(t, bl.Message, "invalid input")

	assert.Equal(t, syncStatusSkipped, resultFor(t, result, division.FrenchLigue1).Status)
	assert.Equal(t, syncStatusFailed, resultFor(t, result, division.SpanishPrimera).Status)

	scot := resultFor(t, result, division.ScottishPremiership)
	assert.Equal(t, syncStatusSkipped, scot.Status)
	assert.Empty(t, scot.Competition)

	assert.ElementsMatch(t, []string{"PL", "BL1", "FL1", "PD"}, provider.called)
}

func TestSyncService_SyncAll_RepositoryFailure(t *testing.T) {
	t.Parallel()

	provider := &stubStandingsProvider{
		rows: map[string][]ExternalStanding{
			"DED": {{TeamName: "PSV", Position: 1, Played: 1, Won: 1, Points: 3}},
		},
	}
	repo := standingmock.NewRepository(t)
	repo.On("ReplaceByDivision", mock.Anything, division.DutchEredivise, mock.Anything).Return(errors.New("tx aborted")).Once()

	service := NewSyncService(provider, repo, map[division.Division]string{division.DutchEredivise: "DED"}, 0, nil)

	result, err := service.SyncAll(context.Background())
	require.NoError(t, err)

	row := resultFor(t, result, division.DutchEredivise)
	assert.Equal(t, syncStatusFailed, row.Status)
	assert.Contains(t, row.Message, "tx aborted")
	assert.Equal(t, 1, result.FailedCount)
}

func TestSyncService_MapTeams_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	service := NewSyncService(&stubStandingsProvider{}, standingmock.NewRepository(t), nil, 1, logging.NewNop())

	_, err := service.mapTeams(context.Background(), division.PortugueseLiga, []ExternalStanding{
		{TeamName: "Benfica", Position: 1},
		{TeamName: "Benfica", Position: 2},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSyncService_MapTeams_RejectsMissingName(t *testing.T) {
	t.Parallel()

	service := NewSyncService(&stubStandingsProvider{}, standingmock.NewRepository(t), nil, 1, logging.NewNop())

	_, err := service.mapTeams(context.Background(), division.PortugueseLiga, []ExternalStanding{
		{TeamName: "  ", Position: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSyncService_SyncAll_LogsOneSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.LevelInfo, zapcore.AddSync(&buf))
	service := NewSyncService(&stubStandingsProvider{}, standingmock.NewRepository(t), nil, 1, logger)

	result, err := service.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(division.All()), result.SkippedCount)

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`"msg":"standings sync finished"`)))
	assert.Contains(t, buf.String(), `"succeeded":0`)
	assert.NotContains(t, buf.String(), `"success":`)
}
