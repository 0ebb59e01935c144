// internal/app/features/posts/comments.go
package posts

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/MirzaKrupic/CampusConnect/internal/app/features/errors"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

type commentRequest struct {
	AuthorID int64  `json:"author_id"`
	Body     string `json:"body"`
}

type commentResponse struct {
	Comment models.Comment `json:"comment"`
	Partial bool           `json:"partial"`
	Pending []string       `json:"pending,omitempty"`
}

// ServeCreateComment handles POST /posts/{id}/comments. Comment points
// are awarded best-effort after the insert.
func (h *Handler) ServeCreateComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AuthorID <= 0 {
		apierrors.BadRequest(w, "author_id is required")
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		apierrors.BadRequest(w, "body is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	c, fo, err := h.Posts.CreateComment(ctx, chi.URLParam(r, "id"), req.AuthorID, req.Body)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusCreated, commentResponse{
		Comment: c,
		Partial: fo.Partial(),
		Pending: fo.Pending(),
	})
}

// ServeComments handles GET /posts/{id}/comments, oldest first.
func (h *Handler) ServeComments(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50, 200)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comments, err := h.Posts.Comments(ctx, chi.URLParam(r, "id"), limit)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, comments)
}
