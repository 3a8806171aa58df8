package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Index)
	mux.HandleFunc("GET /results", handler.ListResults)
	mux.HandleFunc("GET /competitions/results/flat", handler.ListResults)
	mux.HandleFunc("GET /competitions/{name}", handler.GetCompetitionStandings)
	mux.HandleFunc("GET /series/{name}", handler.GetSeriesLeaderboard)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, admin AdminVerifier, bodyMaxBytes int64) {
	guard := func(h http.HandlerFunc) http.Handler {
		return RequireAdmin(admin, LimitBody(bodyMaxBytes, h))
	}

	mux.Handle("POST /variants", guard(handler.CreateVariants))
	mux.Handle("POST /competitions", guard(handler.CreateCompetitions))
	mux.Handle("POST /games", guard(handler.IngestGames))
	mux.Handle("POST /series", guard(handler.CreateSeries))
}
