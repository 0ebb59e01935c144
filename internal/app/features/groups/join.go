// internal/app/features/groups/join.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/MirzaKrupic/CampusConnect/internal/app/features/errors"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

type joinRequest struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

type joinResponse struct {
	Membership models.GroupMembership `json:"membership"`
	Partial    bool                   `json:"partial"`
	Pending    []string               `json:"pending,omitempty"`
}

// ServeJoin handles POST /groups/{id}/join.
//
// The membership row is the authoritative write; a duplicate row is a
// conflict, not an upsert. The graph edge, activity event, summary
// invalidation, and join points all follow best-effort.
func (h *Handler) ServeJoin(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid group id")
		return
	}
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
		apierrors.BadRequest(w, "user_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	m, fo, err := h.Groups.JoinGroup(ctx, req.UserID, groupID, req.Role)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusCreated, joinResponse{
		Membership: m,
		Partial:    fo.Partial(),
		Pending:    fo.Pending(),
	})
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

type updateRoleResponse struct {
	Role    string   `json:"role"`
	Partial bool     `json:"partial"`
	Pending []string `json:"pending,omitempty"`
}

// ServeUpdateRole handles PATCH /groups/{id}/members/{userID}. Role is the
// only membership field that may change after join; a missing membership
// row is a 404.
func (h *Handler) ServeUpdateRole(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid group id")
		return
	}
	userID, ok := pathID(r, "userID")
	if !ok {
		apierrors.BadRequest(w, "invalid user id")
		return
	}
	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Role) == "" {
		apierrors.BadRequest(w, "role is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	fo, err := h.Groups.UpdateMemberRole(ctx, userID, groupID, req.Role)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, updateRoleResponse{
		Role:    req.Role,
		Partial: fo.Partial(),
		Pending: fo.Pending(),
	})
}
