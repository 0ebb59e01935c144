// internal/app/features/posts/routes.go
package posts

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /posts.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.ServeCreate)
	r.Get("/hot", h.ServeHot)
	r.Get("/search", h.ServeSearch)
	r.Get("/{id}", h.ServeView)
	r.Patch("/{id}", h.ServeUpdate)
	r.Post("/{id}/comments", h.ServeCreateComment)
	r.Get("/{id}/comments", h.ServeComments)

	return r
}
