// internal/app/features/recommendations/routes.go
package recommendations

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /recommendations.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}/friends", h.ServeFriends)
	r.Get("/{id}/groups", h.ServeGroups)
	r.Get("/common-groups/{a}/{b}", h.ServeCommonGroups)

	return r
}
