package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-standings/internal/domain/division"
	"github.com/riskibarqy/football-standings/internal/domain/standing"
	qb "github.com/riskibarqy/football-standings/internal/platform/querybuilder"
)

const standingUpsertSuffix = `ON CONFLICT (division, team_name) WHERE deleted_at IS NULL
DO UPDATE SET
    position = EXCLUDED.position,
    played = EXCLUDED.played,
    goal_difference = EXCLUDED.goal_difference,
    points = EXCLUDED.points,
    form = EXCLUDED.form,
    source_updated_at = EXCLUDED.source_updated_at,
    updated_at = NOW()`

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListByDivision(ctx context.Context, div division.Division) ([]standing.Team, error) {
	query, args, err := qb.Select(standingColumns...).From(standingTable).
		Where(
			qb.Eq("division", div.String()),
			qb.IsNull("deleted_at"),
		).
		OrderBy("position", "points DESC", "team_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings division=%s: %w", div, err)
	}

	out := make([]standing.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Team{
			Division:        div,
			Name:            row.TeamName,
			Position:        row.Position,
			Played:          row.Played,
			GoalDifference:  row.GoalDifference,
			Points:          row.Points,
			Form:            strings.TrimSpace(row.Form),
			SourceUpdatedAt: nullTimeToTimePtr(row.SourceUpdatedAt),
		})
	}

	return out, nil
}

// ReplaceByDivision upserts the live rows for div in place and soft-deletes
// only the teams missing from teams, all in one transaction. Rows are
// therefore retired once per team leaving a table, not once per sync.
func (r *StandingRepository) ReplaceByDivision(ctx context.Context, div division.Division, teams []standing.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	keep := make([]any, 0, len(teams))
	if len(teams) > 0 {
		models := make([]standingInsertModel, 0, len(teams))
		for _, item := range teams {
			name := strings.TrimSpace(item.Name)
			keep = append(keep, name)
			models = append(models, standingInsertModel{
				Division:        div.String(),
				TeamName:        name,
				Position:        item.Position,
				Played:          item.Played,
				GoalDifference:  item.GoalDifference,
				Points:          item.Points,
				Form:            strings.TrimSpace(item.Form),
				SourceUpdatedAt: item.SourceUpdatedAt,
			})
		}

		query, args, err := qb.InsertModels(standingTable, models, standingUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert standings query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert standings division=%s: %w", div, err)
		}
	}

	retireQuery, retireArgs, err := qb.Update(standingTable).
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("division", div.String()),
			qb.IsNull("deleted_at"),
			qb.NotIn("team_name", keep...),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build retire standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, retireQuery, retireArgs...); err != nil {
		return fmt.Errorf("retire standings division=%s: %w", div, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings tx: %w", err)
	}
	return nil
}
