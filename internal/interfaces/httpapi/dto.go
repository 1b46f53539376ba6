package httpapi

import (
	"strconv"

	"github.com/riskibarqy/football-standings/internal/domain/standing"
)

// teamDTO is the wire form of a standing row. Every value is a string.
type teamDTO struct {
	Name     string `json:"name"`
	Played   string `json:"played"`
	GoalDiff string `json:"goalDiff"`
	Points   string `json:"points"`
	Form     string `json:"form"`
}

func newTeamDTO(t standing.Team) teamDTO {
	return teamDTO{
		Name:     t.Name,
		Played:   strconv.Itoa(t.Played),
		GoalDiff: formatGoalDifference(t.GoalDifference),
		Points:   strconv.Itoa(t.Points),
		Form:     t.Form,
	}
}

func newTeamDTOs(items []standing.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, newTeamDTO(item))
	}
	return out
}

func formatGoalDifference(v int) string {
	if v > 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
