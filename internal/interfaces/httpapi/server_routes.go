package httpapi

import (
	"net/http"
	"strings"
)

const teamsPrefix = "/teams"

var methodNotAllowedError = mappedError{HTTPStatus: http.StatusMethodNotAllowed, Reason: "methodNotAllowed", Status: "METHOD_NOT_ALLOWED"}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

// withTeamsRoutes sends the /teams subtree to the handler ahead of the mux.
// ServeMux would clean paths such as /teams//all and answer with an HTML
// redirect; the teams classifier must see the raw path instead.
func withTeamsRoutes(mux http.Handler, handler *Handler) http.Handler {
	teams := http.StripPrefix(teamsPrefix, http.HandlerFunc(handler.Teams))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isTeamsPath(r.URL.Path) {
			mux.ServeHTTP(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeJSON(w, http.StatusMethodNotAllowed, errorEnvelope(methodNotAllowedError, "method not allowed"))
			return
		}
		teams.ServeHTTP(w, r)
	})
}

func isTeamsPath(path string) bool {
	return path == teamsPrefix || strings.HasPrefix(path, teamsPrefix+"/")
}
