package cache

import (
	"context"

	"github.com/riskibarqy/football-standings/internal/domain/division"
	"github.com/riskibarqy/football-standings/internal/domain/standing"
	basecache "github.com/riskibarqy/football-standings/internal/platform/cache"
)

// StandingRepository is a read-through cache in front of another standing.Repository.
type StandingRepository struct {
	next  standing.Repository
	cache *basecache.Store[[]standing.Team]
}

func NewStandingRepository(next standing.Repository, cache *basecache.Store[[]standing.Team]) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

func (r *StandingRepository) ListByDivision(ctx context.Context, div division.Division) ([]standing.Team, error) {
	items, err := r.cache.GetOrLoad(ctx, standingKey(div), func(ctx context.Context) ([]standing.Team, error) {
		items, err := r.next.ListByDivision(ctx, div)
		if err != nil {
			return nil, err
		}
		return append([]standing.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	// Callers may mutate the result; the cached slice must stay untouched.
	return append([]standing.Team{}, items...), nil
}

func (r *StandingRepository) ReplaceByDivision(ctx context.Context, div division.Division, teams []standing.Team) error {
	if err := r.next.ReplaceByDivision(ctx, div, teams); err != nil {
		return err
	}

	r.cache.Delete(standingKey(div))
	return nil
}

func standingKey(div division.Division) string {
	return "standing:division:" + div.String()
}
