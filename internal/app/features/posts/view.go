// internal/app/features/posts/view.go
package posts

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/MirzaKrupic/CampusConnect/internal/app/features/errors"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
)

// ServeView handles GET /posts/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Posts.GetPost(ctx, chi.URLParam(r, "id"))
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, p)
}

// ServeHot handles GET /posts/hot: the recency-ranked view out of the
// cache store's sorted set.
func (h *Handler) ServeHot(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20, 100)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	hot, err := h.Posts.HotPosts(ctx, int(limit))
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, hot)
}

// ServeSearch handles GET /posts/search?tags=a,b.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("tags")
	if strings.TrimSpace(raw) == "" {
		apierrors.BadRequest(w, "tags query parameter is required")
		return
	}
	limit := queryInt(r, "limit", 20, 100)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Posts.SearchByTags(ctx, strings.Split(raw, ","), limit)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, posts)
}
