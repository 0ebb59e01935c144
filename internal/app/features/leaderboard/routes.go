// internal/app/features/leaderboard/routes.go
package leaderboard

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /leaderboard.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeTop)
	r.Get("/rank/{id}", h.ServeRank)
	return r
}
