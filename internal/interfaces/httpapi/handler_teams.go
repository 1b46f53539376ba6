package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/codes"

	"github.com/riskibarqy/football-standings/internal/domain/division"
)

type teamsMode int

const (
	teamsModeInvalid teamsMode = iota
	teamsModeAll
	teamsModeHelp
	teamsModeDivision
)

type teamsRoute struct {
	mode     teamsMode
	division division.Division
}

// StatusError is raised next to a 400 /teams response. Message carries the
// help document so callers can recover the correct usage.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

type teamsResult struct {
	status int
	body   []byte
	signal *StatusError
}

// Teams serves the path left after the /teams prefix is stripped.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Teams")
	defer span.End()

	result, err := h.resolveTeams(ctx, r.URL.Path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve teams failed")
		h.logger.ErrorContext(ctx, "resolve teams failed", "path", r.URL.Path, "error", err)
		writeError(w, err)
		return
	}

	if result.signal != nil {
		span.RecordError(result.signal)
		span.SetStatus(codes.Error, "invalid teams path")
		h.logger.WarnContext(ctx, "invalid teams request", "path", r.URL.Path, "code", result.signal.Code)
	}
	writeLine(w, result.status, result.body)
}

func (h *Handler) resolveTeams(ctx context.Context, path string) (teamsResult, error) {
	route := classifyTeamsPath(path)

	switch route.mode {
	case teamsModeHelp:
		return teamsResult{status: http.StatusOK, body: h.help}, nil

	case teamsModeAll:
		byDivision, err := h.teams.AllTeamsByDivision(ctx)
		if err != nil {
			return teamsResult{}, fmt.Errorf("fetch all teams: %w", err)
		}
		if len(byDivision) == 0 {
			return teamsResult{status: http.StatusNoContent, body: []byte("{}")}, nil
		}

		payload := make(map[string][]teamDTO, len(byDivision))
		for name, items := range byDivision {
			payload[name] = newTeamDTOs(items)
		}
		return h.encodeTeams(payload)

	case teamsModeDivision:
		items, err := h.teams.TeamsForDivision(ctx, route.division)
		if err != nil {
			return teamsResult{}, fmt.Errorf("fetch teams division=%s: %w", route.division, err)
		}

		// A single key with an empty list still counts as a result: 200, not 204.
		return h.encodeTeams(map[string][]teamDTO{
			route.division.String(): newTeamDTOs(items),
		})

	default:
		return teamsResult{
			status: http.StatusBadRequest,
			body:   h.help,
			signal: &StatusError{Code: http.StatusBadRequest, Message: string(h.help)},
		}, nil
	}
}

func (h *Handler) encodeTeams(payload map[string][]teamDTO) (teamsResult, error) {
	body, err := jsonAPI.Marshal(payload)
	if err != nil {
		return teamsResult{}, fmt.Errorf("encode teams: %w", err)
	}
	return teamsResult{status: http.StatusOK, body: body}, nil
}

func classifyTeamsPath(path string) teamsRoute {
	segments := splitTeamsPath(path)

	switch {
	case len(segments) == 1 && segments[0] == "all":
		return teamsRoute{mode: teamsModeAll}
	case len(segments) == 1 && segments[0] == "help":
		return teamsRoute{mode: teamsModeHelp}
	case len(segments) == 2 && segments[0] == "division":
		div, ok := division.Parse(segments[1])
		if !ok {
			return teamsRoute{mode: teamsModeInvalid}
		}
		return teamsRoute{mode: teamsModeDivision, division: div}
	default:
		return teamsRoute{mode: teamsModeInvalid}
	}
}

// splitTeamsPath drops one leading slash and any trailing empty segments.
// An empty path yields a single empty segment.
func splitTeamsPath(path string) []string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for len(segments) > 1 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	return segments
}
