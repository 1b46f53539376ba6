package sportmonks

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
)

const (
	metricPlayed         = "played"
	metricWon            = "won"
	metricDraw           = "draw"
	metricLost           = "lost"
	metricGoalsFor       = "goals_for"
	metricGoalsAgainst   = "goals_against"
	metricGoalDifference = "goal_difference"
	metricPoints         = "points"
)

// Home and away type ids rank below the overall ones.
var standingMetricTypeByID = map[int64]string{
	117: metricGoalsFor,
	118: metricGoalsAgainst,
	119: metricPlayed,
	120: metricPlayed,
	121: metricWon,
	122: metricWon,
	123: metricDraw,
	124: metricDraw,
	125: metricLost,
	126: metricLost,
	127: metricPoints,
	128: metricPoints,
	129: metricPlayed,
	130: metricWon,
	131: metricDraw,
	132: metricLost,
	133: metricGoalsFor,
	134: metricGoalsAgainst,
	179: metricGoalDifference,
	187: metricPoints,
}

// parseStandingsPayload falls back to walking the raw document when the
// top-level data array does not hold table rows directly.
func parseStandingsPayload(raw []byte, direct []map[string]any) []tableRow {
	parsed := parseStandings(direct)
	if len(parsed) > 0 {
		return parsed
	}

	var envelope map[string]any
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return parsed
	}
	rows := collectStandingRows(envelope["data"])
	if len(rows) == 0 {
		return parsed
	}
	return parseStandings(rows)
}

func parseStandings(items []map[string]any) []tableRow {
	out := make([]tableRow, 0, len(items))
	for _, item := range items {
		participant := relationDataMap(item["participant"])

		var row tableRow
		row.participantID = participantIDOf(item)
		row.TeamName = strings.TrimSpace(getString(participant, "name"))
		row.Position = positionOf(item)
		row.Played = getIntAny(item, "played", "matches_played", "games_played")
		row.Won = getIntAny(item, "won", "wins")
		row.Draw = getIntAny(item, "draw", "draws", "drawn")
		row.Lost = getIntAny(item, "lost", "losses", "defeats")
		row.GoalsFor = getIntAny(item, "goals_for", "goals_scored")
		row.GoalsAgainst = getIntAny(item, "goals_against", "goals_conceded")
		row.Points = getInt(item, "points")
		row.GoalDifference = getInt(item, "goal_difference")
		row.SourceUpdatedAt = parseProviderDateTime(getString(item, "updated_at"))

		priorities := make(map[string]int, 8)
		for _, detail := range extractStandingDetails(item["details"]) {
			applyStandingDetail(&row, priorities, detail)
		}

		total := row.Won + row.Draw + row.Lost
		if total > 0 && row.Played != total {
			// Detail lists mix home and away aggregates; trust the result split.
			row.Played = total
		}
		if row.GoalDifference == 0 && (row.GoalsFor != 0 || row.GoalsAgainst != 0) {
			row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		}
		if row.Position <= 0 || row.participantID <= 0 {
			continue
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].participantID < out[j].participantID
	})
	return out
}

func participantIDOf(item map[string]any) int64 {
	for _, key := range []string{"participant_id", "team_id", "participant"} {
		if id := getInt64(item, key); id > 0 {
			return id
		}
	}
	return getInt64(relationDataMap(item["participant"]), "id")
}

func positionOf(item map[string]any) int {
	if position := getInt(item, "position"); position > 0 {
		return position
	}
	return getInt(item, "rank")
}

func collectStandingRows(node any) []map[string]any {
	out := make([]map[string]any, 0, 32)
	seen := make(map[string]struct{}, 64)

	var walk func(any, int)
	walk = func(current any, depth int) {
		if depth > 10 || current == nil {
			return
		}

		switch typed := current.(type) {
		case []any:
			for _, child := range typed {
				walk(child, depth+1)
			}
		case map[string]any:
			if positionOf(typed) > 0 && participantIDOf(typed) > 0 {
				key := fmt.Sprintf("%d:%d:%d", participantIDOf(typed), positionOf(typed), getInt(typed, "points"))
				if _, ok := seen[key]; !ok {
					seen[key] = struct{}{}
					out = append(out, typed)
				}
				return
			}
			for _, key := range []string{"data", "standings", "table", "rows", "items"} {
				if child, ok := typed[key]; ok {
					walk(child, depth+1)
				}
			}
		}
	}

	walk(node, 0)
	return out
}

func extractStandingDetails(raw any) []map[string]any {
	switch typed := raw.(type) {
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for _, item := range typed {
			if row, ok := item.(map[string]any); ok {
				out = append(out, row)
			}
		}
		return out
	case map[string]any:
		if nested, ok := typed["data"]; ok {
			return extractStandingDetails(nested)
		}
		return []map[string]any{typed}
	default:
		return nil
	}
}

func applyStandingDetail(row *tableRow, priorities map[string]int, detail map[string]any) {
	typeInfo := relationDataMap(detail["type"])
	candidate := normalizeDetailType(firstNonEmpty(
		getString(typeInfo, "developer_name"),
		getString(typeInfo, "code"),
		getString(typeInfo, "name"),
		getString(detail, "type"),
	))
	if strings.Contains(candidate, "percent") || strings.Contains(candidate, "rate") {
		return
	}

	typeID := getInt64(detail, "type_id")
	if typeID <= 0 {
		typeID = getInt64(typeInfo, "id")
	}

	value := detail["value"]
	if value == nil {
		value = detail["total"]
	}
	numeric := extractStandingValue(value)
	if numeric == 0 {
		return
	}

	metric, ok := standingMetricFromType(typeID, candidate)
	if !ok {
		return
	}
	setStandingMetric(row, priorities, metric, numeric, standingMetricPriority(typeID, candidate))
}

func normalizeDetailType(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.NewReplacer("_", " ", "-", " ").Replace(raw)
	return strings.Join(strings.Fields(raw), " ")
}

func standingMetricFromType(typeID int64, candidate string) (string, bool) {
	if metric, ok := standingMetricTypeByID[typeID]; ok {
		return metric, true
	}

	switch {
	case candidate == "":
		return "", false
	case strings.Contains(candidate, "goal difference"):
		return metricGoalDifference, true
	case strings.Contains(candidate, "goals against"), strings.Contains(candidate, "conceded"):
		return metricGoalsAgainst, true
	case strings.Contains(candidate, "goals for"), strings.Contains(candidate, "goals scored"):
		return metricGoalsFor, true
	case strings.Contains(candidate, "matches played"), strings.Contains(candidate, "games played"), candidate == "played":
		return metricPlayed, true
	case strings.HasSuffix(candidate, "won"), candidate == "wins":
		return metricWon, true
	case strings.HasSuffix(candidate, "draw"), strings.HasSuffix(candidate, "drawn"), candidate == "draws":
		return metricDraw, true
	case strings.HasSuffix(candidate, "lost"), candidate == "losses", candidate == "defeats":
		return metricLost, true
	case candidate == "points", strings.HasSuffix(candidate, " points"):
		return metricPoints, true
	default:
		return "", false
	}
}

func standingMetricPriority(typeID int64, candidate string) int {
	switch {
	case typeID >= 129 && typeID <= 134, typeID == 179, typeID == 187:
		return 3
	case typeID >= 117 && typeID <= 128:
		return 1
	case strings.Contains(candidate, "overall"), strings.Contains(candidate, "total"):
		return 3
	case strings.Contains(candidate, "home"), strings.Contains(candidate, "away"):
		return 1
	default:
		return 2
	}
}

// setStandingMetric keeps the highest-priority value per metric; on a tie
// the larger magnitude wins.
func setStandingMetric(row *tableRow, priorities map[string]int, metric string, value, priority int) {
	field := metricField(row, metric)
	if field == nil {
		return
	}

	current, seen := priorities[metric]
	switch {
	case !seen, priority > current:
		priorities[metric] = priority
		*field = value
	case priority == current && absInt(value) > absInt(*field):
		*field = value
	}
}

func metricField(row *tableRow, metric string) *int {
	switch metric {
	case metricPlayed:
		return &row.Played
	case metricWon:
		return &row.Won
	case metricDraw:
		return &row.Draw
	case metricLost:
		return &row.Lost
	case metricGoalsFor:
		return &row.GoalsFor
	case metricGoalsAgainst:
		return &row.GoalsAgainst
	case metricGoalDifference:
		return &row.GoalDifference
	case metricPoints:
		return &row.Points
	default:
		return nil
	}
}

func extractStandingValue(value any) int {
	switch typed := value.(type) {
	case float64:
		return int(typed)
	case int:
		return typed
	case int64:
		return int(typed)
	case string:
		v, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0
		}
		return v
	case map[string]any:
		for _, key := range []string{"total", "all", "overall", "value"} {
			if v := extractStandingValue(typed[key]); v != 0 {
				return v
			}
		}
		return extractStandingValue(typed["home"]) + extractStandingValue(typed["away"])
	default:
		return 0
	}
}

func parseProviderDateTime(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}
	return nil
}

func getString(src map[string]any, key string) string {
	value, _ := src[key].(string)
	return strings.TrimSpace(value)
}

func getInt(src map[string]any, key string) int {
	return int(getInt64(src, key))
}

func getIntAny(src map[string]any, keys ...string) int {
	for _, key := range keys {
		if value := getInt(src, key); value != 0 {
			return value
		}
	}
	return 0
}

func getInt64(src map[string]any, key string) int64 {
	switch typed := src[key].(type) {
	case float64:
		return int64(typed)
	case int:
		return int64(typed)
	case int64:
		return typed
	case string:
		v, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

func relationDataMap(raw any) map[string]any {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	return obj
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
