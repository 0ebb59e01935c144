// internal/app/features/users/create.go
package users

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/MirzaKrupic/CampusConnect/internal/app/features/errors"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

type createRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type createResponse struct {
	User    models.User `json:"user"`
	Partial bool        `json:"partial"`
	Pending []string    `json:"pending,omitempty"`
}

// ServeCreate handles POST /users.
//
// The relational insert is authoritative; the graph node and cache entry
// are written best-effort afterward, and any miss is reported in the
// "pending" list rather than failing the request.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.FullName) == "" {
		apierrors.BadRequest(w, "email and full_name are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	u, fo, err := h.Users.CreateUser(ctx, req.Email, req.FullName)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}

	apierrors.WriteJSON(w, http.StatusCreated, createResponse{
		User:    u,
		Partial: fo.Partial(),
		Pending: fo.Pending(),
	})
}
