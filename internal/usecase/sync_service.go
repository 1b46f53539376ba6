package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/football-standings/internal/domain/division"
	"github.com/riskibarqy/football-standings/internal/domain/standing"
	"github.com/riskibarqy/football-standings/internal/platform/logging"
)

const (
	syncStatusSuccess = "success"
	syncStatusFailed  = "failed"
	syncStatusSkipped = "skipped"
)

// StandingsProvider fetches a competition's current table from an upstream source.
type StandingsProvider interface {
	FetchStandings(ctx context.Context, competitionCode string) ([]ExternalStanding, error)
}

// ExternalStanding is one upstream table row before it is mapped into the domain.
type ExternalStanding struct {
	TeamName        string `validate:"required"`
	Position        int    `validate:"gte=1"`
	Played          int    `validate:"gte=0"`
	Won             int    `validate:"gte=0"`
	Draw            int    `validate:"gte=0"`
	Lost            int    `validate:"gte=0"`
	GoalsFor        int    `validate:"gte=0"`
	GoalsAgainst    int    `validate:"gte=0"`
	GoalDifference  int
	Points          int `validate:"gte=0"`
	SourceUpdatedAt *time.Time
}

type SyncDivisionResult struct {
	Division    string `json:"division"`
	Competition string `json:"competition,omitempty"`
	Status      string `json:"status"`
	Records     int    `json:"records"`
	Message     string `json:"message,omitempty"`
	DurationMs  int64  `json:"duration_ms"`
}

type SyncResult struct {
	Divisions    []SyncDivisionResult `json:"divisions"`
	SuccessCount int                  `json:"success_count"`
	FailedCount  int                  `json:"failed_count"`
	SkippedCount int                  `json:"skipped_count"`
}

// SyncService copies upstream tables into the standings repository.
type SyncService struct {
	provider     StandingsProvider
	repo         standing.Repository
	competitions map[division.Division]string
	maxWorkers   int
	validate     *validator.Validate
	logger       *logging.Logger
}

func NewSyncService(
	provider StandingsProvider,
	repo standing.Repository,
	competitions map[division.Division]string,
	maxWorkers int,
	logger *logging.Logger,
) *SyncService {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}

	validate := validator.New()
	validate.RegisterStructValidation(validateRecord, ExternalStanding{})

	codes := make(map[division.Division]string, len(competitions))
	for div, code := range competitions {
		codes[div] = strings.TrimSpace(code)
	}

	return &SyncService{
		provider:     provider,
		repo:         repo,
		competitions: codes,
		maxWorkers:   maxWorkers,
		validate:     validate,
		logger:       logger,
	}
}

// validateRecord rejects rows whose results do not add up to games played.
func validateRecord(sl validator.StructLevel) {
	row := sl.Current().Interface().(ExternalStanding)
	if row.Won+row.Draw+row.Lost != row.Played {
		sl.ReportError(row.Played, "Played", "Played", "record_sum", "")
	}
}

// SyncAll refreshes every division that has a competition code.
// Per-division failures are reported in the result rather than returned.
func (s *SyncService) SyncAll(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncAll")
	defer span.End()

	divisions := division.All()
	result := SyncResult{Divisions: make([]SyncDivisionResult, 0, len(divisions))}

	workerCount := min(s.maxWorkers, len(divisions))
	p, err := ants.NewPool(workerCount)
	if err != nil {
		return SyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer p.Release()

	var (
		mu           sync.Mutex
		wg           sync.WaitGroup
		successCount atomic.Int32
		failedCount  atomic.Int32
		skippedCount atomic.Int32
	)

	for _, div := range divisions {
		wg.Add(1)
		if err := p.Submit(func() {
			defer wg.Done()

			row := s.syncDivision(ctx, div)
			switch row.Status {
			case syncStatusSuccess:
				successCount.Add(1)
			case syncStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			mu.Lock()
			result.Divisions = append(result.Divisions, row)
			mu.Unlock()
		}); err != nil {
			wg.Done()
			wg.Wait()
			return SyncResult{}, fmt.Errorf("submit sync task: %w", err)
		}
	}
	wg.Wait()

	sort.SliceStable(result.Divisions, func(i, j int) bool {
		a, _ := division.Parse(result.Divisions[i].Division)
		b, _ := division.Parse(result.Divisions[j].Division)
		return a < b
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())

	s.logger.InfoContext(ctx, "standings sync finished",
		"succeeded", result.SuccessCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount,
	)
	return result, nil
}

func (s *SyncService) syncDivision(ctx context.Context, div division.Division) SyncDivisionResult {
	start := time.Now()
	row := SyncDivisionResult{Division: div.String()}
	finish := func(status, message string) SyncDivisionResult {
		row.Status = status
		row.Message = message
		row.DurationMs = time.Since(start).Milliseconds()
		return row
	}

	code := s.competitions[div]
	if code == "" {
		return finish(syncStatusSkipped, "no competition code configured")
	}
	row.Competition = code

	if err := ctx.Err(); err != nil {
		return finish(syncStatusFailed, err.Error())
	}

	external, err := s.provider.FetchStandings(ctx, code)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch standings failed", "division", div.String(), "competition", code, "error", err)
		return finish(syncStatusFailed, fmt.Sprintf("fetch standings: %v", err))
	}
	if len(external) == 0 {
		return finish(syncStatusSkipped, "provider returned no rows")
	}

	teams, err := s.mapTeams(ctx, div, external)
	if err != nil {
		s.logger.WarnContext(ctx, "invalid upstream standings", "division", div.String(), "competition", code, "error", err)
		return finish(syncStatusFailed, err.Error())
	}

	if err := s.repo.ReplaceByDivision(ctx, div, teams); err != nil {
		s.logger.ErrorContext(ctx, "store standings failed", "division", div.String(), "error", err)
		return finish(syncStatusFailed, fmt.Sprintf("replace standings: %v", err))
	}

	row.Records = len(teams)
	return finish(syncStatusSuccess, "")
}

func (s *SyncService) mapTeams(ctx context.Context, div division.Division, rows []ExternalStanding) ([]standing.Team, error) {
	seen := make(map[string]struct{}, len(rows))
	out := make([]standing.Team, 0, len(rows))
	for i, row := range rows {
		row.TeamName = strings.TrimSpace(row.TeamName)
		if err := s.validate.StructCtx(ctx, row); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidInput, i, err)
		}
		if _, dup := seen[row.TeamName]; dup {
			return nil, fmt.Errorf("%w: duplicate team %q", ErrInvalidInput, row.TeamName)
		}
		seen[row.TeamName] = struct{}{}

		out = append(out, standing.Team{
			Division:        div,
			Name:            row.TeamName,
			Position:        row.Position,
			Played:          row.Played,
			GoalDifference:  row.GoalDifference,
			Points:          row.Points,
			Form:            standing.FormFromRecord(row.Won, row.Draw, row.Lost),
			SourceUpdatedAt: row.SourceUpdatedAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out, nil
}
