package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/football-standings/internal/domain/division"
	"github.com/riskibarqy/football-standings/internal/domain/standing"
	"github.com/riskibarqy/football-standings/internal/platform/logging"
)

// TeamsProvider supplies standings to the /teams endpoint.
type TeamsProvider interface {
	AllTeamsByDivision(ctx context.Context) (map[string][]standing.Team, error)
	TeamsForDivision(ctx context.Context, div division.Division) ([]standing.Team, error)
}

// Handler holds only values fixed at construction, so one instance serves
// concurrent requests.
type Handler struct {
	teams  TeamsProvider
	logger *logging.Logger
	help   []byte
}

func NewHandler(teams TeamsProvider, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teams:  teams,
		logger: logger,
		help:   []byte(buildHelpDocument(division.Names())),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
