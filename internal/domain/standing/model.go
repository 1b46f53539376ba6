package standing

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-standings/internal/domain/division"
)

// Team is one club's row in a division table.
type Team struct {
	Division        division.Division
	Name            string
	Position        int
	Played          int
	GoalDifference  int
	Points          int
	Form            string
	SourceUpdatedAt *time.Time
}

func (t Team) Validate() error {
	if !t.Division.Valid() {
		return fmt.Errorf("team division is invalid")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Played < 0 {
		return fmt.Errorf("team played count must be >= 0")
	}

	return nil
}

// FormFromRecord renders a won-drawn-lost record, e.g. "3-2-1".
func FormFromRecord(won, drawn, lost int) string {
	return fmt.Sprintf("%d-%d-%d", won, drawn, lost)
}
