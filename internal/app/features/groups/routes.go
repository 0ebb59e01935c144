// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /groups.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)
	r.Post("/{id}/join", h.ServeJoin)
	r.Get("/{id}/members", h.ServeMembers)
	r.Patch("/{id}/members/{userID}", h.ServeUpdateRole)
	r.Get("/{id}/activity", h.ServeActivity)
	r.Get("/{id}/feed", h.ServeFeed)

	return r
}
