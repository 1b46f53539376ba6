package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/football-standings/internal/domain/division"
	"github.com/riskibarqy/football-standings/internal/domain/standing"
)

const defaultFetchWorkers = 4

// StandingService serves league tables per division.
type StandingService struct {
	repo       standing.Repository
	maxWorkers int
}

func NewStandingService(repo standing.Repository, maxWorkers int) *StandingService {
	if maxWorkers <= 0 {
		maxWorkers = defaultFetchWorkers
	}
	return &StandingService{
		repo:       repo,
		maxWorkers: maxWorkers,
	}
}

// TeamsForDivision returns the table for div ordered by position.
// A division without rows yields an empty, non-nil slice.
func (s *StandingService) TeamsForDivision(ctx context.Context, div division.Division) ([]standing.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.TeamsForDivision")
	defer span.End()

	if !div.Valid() {
		return nil, fmt.Errorf("%w: unknown division %d", ErrInvalidInput, int(div))
	}

	items, err := s.repo.ListByDivision(ctx, div)
	if err != nil {
		return nil, fmt.Errorf("%w: list standings division=%s: %w", ErrDependencyUnavailable, div, err)
	}
	if items == nil {
		items = []standing.Team{}
	}

	return items, nil
}

type divisionTable struct {
	name  string
	teams []standing.Team
}

// AllTeamsByDivision reads every division concurrently and keys the result by
// division name. Divisions with no teams are left out.
func (s *StandingService) AllTeamsByDivision(ctx context.Context) (map[string][]standing.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.AllTeamsByDivision")
	defer span.End()

	p := pool.NewWithResults[divisionTable]().
		WithContext(ctx).
		WithMaxGoroutines(s.maxWorkers).
		WithCancelOnError()

	for _, div := range division.All() {
		p.Go(func(ctx context.Context) (divisionTable, error) {
			items, err := s.repo.ListByDivision(ctx, div)
			if err != nil {
				return divisionTable{}, fmt.Errorf("list standings division=%s: %w", div, err)
			}
			return divisionTable{name: div.String(), teams: items}, nil
		})
	}

	tables, err := p.Wait()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}

	out := make(map[string][]standing.Team, len(tables))
	for _, table := range tables {
		if len(table.teams) == 0 {
			continue
		}
		out[table.name] = table.teams
	}

	return out, nil
}
