package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-standings/internal/domain/division"
	"github.com/riskibarqy/football-standings/internal/domain/standing"
)

type StandingRepository struct {
	mu         sync.RWMutex
	byDivision map[division.Division][]standing.Team
}

func NewStandingRepository(teams []standing.Team) *StandingRepository {
	byDivision := make(map[division.Division][]standing.Team)
	for _, item := range teams {
		byDivision[item.Division] = append(byDivision[item.Division], item)
	}
	for div := range byDivision {
		sortByPosition(byDivision[div])
	}

	return &StandingRepository{byDivision: byDivision}
}

func (r *StandingRepository) ListByDivision(_ context.Context, div division.Division) ([]standing.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := r.byDivision[div]
	out := make([]standing.Team, 0, len(teams))
	out = append(out, teams...)

	return out, nil
}

func (r *StandingRepository) ReplaceByDivision(_ context.Context, div division.Division, teams []standing.Team) error {
	rows := make([]standing.Team, 0, len(teams))
	for _, item := range teams {
		item.Division = div
		rows = append(rows, item)
	}
	sortByPosition(rows)

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(rows) == 0 {
		delete(r.byDivision, div)
		return nil
	}
	r.byDivision[div] = rows
	return nil
}

func sortByPosition(rows []standing.Team) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Position != rows[j].Position {
			return rows[i].Position < rows[j].Position
		}
		return rows[i].Name < rows[j].Name
	})
}
