// internal/app/features/posts/create.go
package posts

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/MirzaKrupic/CampusConnect/internal/app/features/errors"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/postsvc"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

type createRequest struct {
	AuthorID    int64               `json:"author_id"`
	GroupID     int64               `json:"group_id"`
	Type        string              `json:"type"`
	Title       string              `json:"title"`
	Body        string              `json:"body"`
	Tags        []string            `json:"tags,omitempty"`
	Attachments []models.Attachment `json:"attachments,omitempty"`
}

type createResponse struct {
	Post    models.Post `json:"post"`
	Partial bool        `json:"partial"`
	Pending []string    `json:"pending,omitempty"`
}

// ServeCreate handles POST /posts.
//
// Membership is checked against PostgreSQL before the document insert;
// only a member may post. The hot-posts entry, activity event, post
// points, and summary invalidation follow best-effort.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "invalid JSON body")
		return
	}
	if req.AuthorID <= 0 || req.GroupID <= 0 {
		apierrors.BadRequest(w, "author_id and group_id are required")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		apierrors.BadRequest(w, "title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	p, fo, err := h.Posts.CreatePost(ctx, postsvc.CreateInput{
		AuthorID:    req.AuthorID,
		GroupID:     req.GroupID,
		Type:        req.Type,
		Title:       req.Title,
		Body:        req.Body,
		Tags:        req.Tags,
		Attachments: req.Attachments,
	})
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusCreated, createResponse{
		Post:    p,
		Partial: fo.Partial(),
		Pending: fo.Pending(),
	})
}
