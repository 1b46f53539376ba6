package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("team_name", "points").
		From("team_standings").
		Where(Eq("division", "GERMAN_BUNDESLIGA"), IsNull("deleted_at")).
		OrderBy("position", "team_name").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT team_name, points FROM team_standings WHERE division = $1 AND deleted_at IS NULL ORDER BY position, team_name", query)
	assert.Equal(t, []any{"GERMAN_BUNDESLIGA"}, args)
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("team_standings").
		SetExpr("deleted_at", "NOW()").
		Set("updated_by", "sync").
		Where(Eq("division", "FRENCH_LIGUE1"), IsNull("deleted_at")).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE team_standings SET deleted_at = NOW(), updated_by = $1 WHERE division = $2 AND deleted_at IS NULL", query)
	assert.Equal(t, []any{"sync", "FRENCH_LIGUE1"}, args)
}

func TestInsertModels(t *testing.T) {
	type row struct {
		Division string `db:"division"`
		Name     string `db:"team_name"`
		Points   int    `db:"points,omitempty"`
		Ignored  string `db:"-"`
		internal string
	}

	query, args, err := InsertModels("team_standings", []row{
		{Division: "SPANISH_PRIMERA", Name: "Girona", Points: 30, internal: "x"},
		{Division: "SPANISH_PRIMERA", Name: "Sevilla", Points: 12},
	}, "ON CONFLICT DO NOTHING")
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO team_standings (division, team_name, points) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT DO NOTHING", query)
	assert.Equal(t, []any{"SPANISH_PRIMERA", "Girona", 30, "SPANISH_PRIMERA", "Sevilla", 12}, args)
}

func TestBuilders_RejectIncompleteInput(t *testing.T) {
	_, _, err := Select().From("t").ToSQL()
	assert.Error(t, err)

	_, _, err = Select("a").ToSQL()
	assert.Error(t, err)

	_, _, err = Update("t").ToSQL()
	assert.Error(t, err)

	_, _, err = InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	assert.Error(t, err)

	_, _, err = InsertModels[struct{ A int }]("t", nil, "")
	assert.Error(t, err)

	_, _, err = InsertModels("t", []struct{ A int }{{A: 1}}, "")
	assert.Error(t, err, "struct without db tags")
}

func TestNotIn(t *testing.T) {
	query, args, err := Update("team_standings").
		SetExpr("deleted_at", "NOW()").
		Where(Eq("division", "FRENCH_LIGUE1"), NotIn("team_name", "Lens", "Lyon")).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE team_standings SET deleted_at = NOW() WHERE division = $1 AND team_name NOT IN ($2, $3)", query)
	assert.Equal(t, []any{"FRENCH_LIGUE1", "Lens", "Lyon"}, args)

	query, args, err = Update("team_standings").
		SetExpr("deleted_at", "NOW()").
		Where(Eq("division", "FRENCH_LIGUE1"), NotIn("team_name")).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE team_standings SET deleted_at = NOW() WHERE division = $1 AND TRUE", query)
	assert.Equal(t, []any{"FRENCH_LIGUE1"}, args)
}
