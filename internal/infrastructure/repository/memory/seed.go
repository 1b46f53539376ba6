package memory

import (
	"github.com/riskibarqy/football-standings/internal/domain/division"
	"github.com/riskibarqy/football-standings/internal/domain/standing"
)

// SeedStandings returns a small fixed table used when no database is configured.
func SeedStandings() []standing.Team {
	return []standing.Team{
		{Division: division.EnglishPremiership, Name: "Arsenal", Position: 1, Played: 12, GoalDifference: 17, Points: 28, Form: "9-1-2"},
		{Division: division.EnglishPremiership, Name: "Liverpool", Position: 2, Played: 12, GoalDifference: 12, Points: 25, Form: "8-1-3"},
		{Division: division.EnglishPremiership, Name: "West Ham", Position: 7, Played: 12, GoalDifference: 4, Points: 18, Form: "3-2-1"},
		{Division: division.ScottishPremiership, Name: "Celtic", Position: 1, Played: 12, GoalDifference: 25, Points: 31, Form: "10-1-1"},
		{Division: division.ScottishPremiership, Name: "Rangers", Position: 2, Played: 12, GoalDifference: 14, Points: 24, Form: "7-3-2"},
		{Division: division.GermanBundesliga, Name: "Bayern Munich", Position: 1, Played: 11, GoalDifference: 24, Points: 29, Form: "9-2-0"},
		{Division: division.GermanBundesliga, Name: "Bayer Leverkusen", Position: 2, Played: 11, GoalDifference: 13, Points: 23, Form: "7-2-2"},
		{Division: division.FrenchLigue1, Name: "Paris Saint-Germain", Position: 1, Played: 12, GoalDifference: 21, Points: 29, Form: "9-2-1"},
		{Division: division.SpanishPrimera, Name: "Real Madrid", Position: 1, Played: 13, GoalDifference: 19, Points: 31, Form: "10-1-2"},
		{Division: division.SpanishPrimera, Name: "Barcelona", Position: 2, Played: 13, GoalDifference: 22, Points: 30, Form: "10-0-3"},
		{Division: division.DutchEredivise, Name: "PSV", Position: 1, Played: 12, GoalDifference: 26, Points: 30, Form: "10-0-2"},
		{Division: division.PortugueseLiga, Name: "Benfica", Position: 1, Played: 11, GoalDifference: 18, Points: 27, Form: "9-0-2"},
	}
}
