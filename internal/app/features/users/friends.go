// internal/app/features/users/friends.go
package users

import (
	"context"
	"encoding/json"
	"net/http"

	apierrors "github.com/MirzaKrupic/CampusConnect/internal/app/features/errors"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
)

type addFriendRequest struct {
	FriendID int64 `json:"friend_id"`
}

type addFriendResponse struct {
	Status  string   `json:"status"`
	Partial bool     `json:"partial"`
	Pending []string `json:"pending,omitempty"`
}

// ServeFriends handles GET /users/{id}/friends. Friendship lives only in
// the graph store, so a graph outage fails this read.
func (h *Handler) ServeFriends(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid user id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ids, err := h.Users.Friends(ctx, id)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]any{"friend_ids": ids})
}

// ServeAddFriend handles POST /users/{id}/friends.
//
// The forward edge is the authoritative write. The reverse edge and the
// two cache invalidations run best-effort; a lost reverse edge leaves the
// friendship visibly asymmetric and shows up in "pending".
func (h *Handler) ServeAddFriend(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid user id")
		return
	}
	var req addFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FriendID <= 0 {
		apierrors.BadRequest(w, "friend_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	fo, err := h.Users.AddFriend(ctx, id, req.FriendID)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusCreated, addFriendResponse{
		Status:  "friends",
		Partial: fo.Partial(),
		Pending: fo.Pending(),
	})
}
