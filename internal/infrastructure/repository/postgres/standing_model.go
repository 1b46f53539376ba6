package postgres

import (
	"database/sql"
	"time"
)

const standingTable = "team_standings"

var standingColumns = []string{
	"id",
	"division",
	"team_name",
	"position",
	"played",
	"goal_difference",
	"points",
	"form",
	"source_updated_at",
	"created_at",
	"updated_at",
	"deleted_at",
}

type standingTableModel struct {
	ID              int64        `db:"id"`
	Division        string       `db:"division"`
	TeamName        string       `db:"team_name"`
	Position        int          `db:"position"`
	Played          int          `db:"played"`
	GoalDifference  int          `db:"goal_difference"`
	Points          int          `db:"points"`
	Form            string       `db:"form"`
	SourceUpdatedAt sql.NullTime `db:"source_updated_at"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
	DeletedAt       sql.NullTime `db:"deleted_at"`
}

type standingInsertModel struct {
	Division        string     `db:"division"`
	TeamName        string     `db:"team_name"`
	Position        int        `db:"position"`
	Played          int        `db:"played"`
	GoalDifference  int        `db:"goal_difference"`
	Points          int        `db:"points"`
	Form            string     `db:"form"`
	SourceUpdatedAt *time.Time `db:"source_updated_at"`
}

func nullTimeToTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
