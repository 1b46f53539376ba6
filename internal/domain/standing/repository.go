package standing

import (
	"context"

	"github.com/riskibarqy/football-standings/internal/domain/division"
)

// Repository describes standings persistence needs from use cases.
type Repository interface {
	ListByDivision(ctx context.Context, div division.Division) ([]Team, error)
	ReplaceByDivision(ctx context.Context, div division.Division, teams []Team) error
}
