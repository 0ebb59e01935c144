// internal/app/features/users/view.go
package users

import (
	"context"
	"net/http"
	"strconv"

	apierrors "github.com/MirzaKrupic/CampusConnect/internal/app/features/errors"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
)

// ServeView handles GET /users/{id}. The read is cache-aside: a cache hit
// skips PostgreSQL entirely, a miss or cache outage falls through to it.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid user id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetUser(ctx, id)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, u)
}

// ServeViewByEmail handles GET /users/by-email?email=... . The lookup is
// relational only; emails are normalized before the query so the match is
// case-insensitive.
func (h *Handler) ServeViewByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		apierrors.BadRequest(w, "email query parameter is required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetUserByEmail(ctx, email)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, u)
}

// ServeProfile handles GET /users/{id}/profile: the user row enriched
// with friend count and group memberships.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid user id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Users.Profile(ctx, id)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, p)
}

// ServeGroups handles GET /users/{id}/groups.
func (h *Handler) ServeGroups(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid user id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := h.Users.Groups(ctx, id)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, groups)
}

// ServePosts handles GET /users/{id}/posts.
func (h *Handler) ServePosts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid user id")
		return
	}
	limit := int64(20)
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Posts.PostsByAuthor(ctx, id, limit)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, posts)
}
