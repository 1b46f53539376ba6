package sportmonks

import "github.com/riskibarqy/football-standings/internal/usecase"

// Standings rows are decoded loosely: the provider nests relations under
// "data" and reports most metrics as typed detail entries.
type standingsEnvelope struct {
	Data    []map[string]any `json:"data"`
	Message string           `json:"message"`
}

type tableRow struct {
	participantID int64
	usecase.ExternalStanding
}
