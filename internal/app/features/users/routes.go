// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.ServeCreate)
	r.Get("/by-email", h.ServeViewByEmail)
	r.Get("/{id}", h.ServeView)
	r.Get("/{id}/profile", h.ServeProfile)
	r.Get("/{id}/groups", h.ServeGroups)
	r.Get("/{id}/posts", h.ServePosts)
	r.Get("/{id}/friends", h.ServeFriends)
	r.Post("/{id}/friends", h.ServeAddFriend)

	return r
}
