// internal/app/features/posts/update.go
package posts

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/MirzaKrupic/CampusConnect/internal/app/features/errors"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/postsvc"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
)

type updateRequest struct {
	AuthorID int64    `json:"author_id"`
	Title    *string  `json:"title,omitempty"`
	Body     *string  `json:"body,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// ServeUpdate handles PATCH /posts/{id}. Only the original author may
// edit; anyone else sees the same 404 as a missing post.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AuthorID <= 0 {
		apierrors.BadRequest(w, "author_id is required")
		return
	}
	if req.Title == nil && req.Body == nil && req.Tags == nil {
		apierrors.BadRequest(w, "nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Posts.UpdatePost(ctx, chi.URLParam(r, "id"), req.AuthorID, postsvc.UpdateInput{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	})
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, p)
}
