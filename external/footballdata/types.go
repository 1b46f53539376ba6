package footballdata

type standingsEnvelope struct {
	Competition competition     `json:"competition"`
	Season      season          `json:"season"`
	Standings   []standingGroup `json:"standings"`
}

type competition struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	LastUpdated string `json:"lastUpdated"`
}

type season struct {
	ID              int64  `json:"id"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	CurrentMatchday int    `json:"currentMatchday"`
}

type standingGroup struct {
	Stage string     `json:"stage"`
	Type  string     `json:"type"`
	Group *string    `json:"group"`
	Table []tableRow `json:"table"`
}

type tableRow struct {
	Position       int    `json:"position"`
	Team           team   `json:"team"`
	PlayedGames    int    `json:"playedGames"`
	Form           string `json:"form"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	Points         int    `json:"points"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
}

type team struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
}

type errorEnvelope struct {
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode"`
}
