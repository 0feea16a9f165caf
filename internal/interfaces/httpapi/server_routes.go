package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/tournaments", handler.ListTournamentsByLeague)
	mux.HandleFunc("GET /v1/player-game-data", handler.ListPlayerGameData)
}

// registerInternalRoutes mounts the operator surface behind one token check.
func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	internal := http.NewServeMux()
	internal.HandleFunc("GET /v1/internal/jobs", handler.ListJobs)
	internal.HandleFunc("POST /v1/internal/jobs/{jobID}/trigger", handler.TriggerJob)
	internal.HandleFunc("PUT /v1/internal/leagues/{leagueID}/fantasy-available", handler.SetLeagueFantasyAvailable)

	mux.Handle("/v1/internal/", RequireInternalJobToken(internalJobToken, internal))
}
