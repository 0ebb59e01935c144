// internal/app/features/recommendations/serve.go
package recommendations

import (
	"context"
	"net/http"

	apierrors "github.com/MirzaKrupic/CampusConnect/internal/app/features/errors"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
)

// ServeFriends handles GET /recommendations/{id}/friends: friend-of-friend
// candidates ranked by mutual friend count, ids ascending on ties.
func (h *Handler) ServeFriends(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid user id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	recs, err := h.Recs.FriendRecommendations(ctx, id, queryLimit(r))
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, recs)
}

// ServeGroups handles GET /recommendations/{id}/groups: groups the user's
// friends belong to, ranked by friend count.
func (h *Handler) ServeGroups(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid user id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	recs, err := h.Recs.GroupRecommendations(ctx, id, queryLimit(r))
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, recs)
}

// ServeCommonGroups handles GET /recommendations/common-groups/{a}/{b}.
func (h *Handler) ServeCommonGroups(w http.ResponseWriter, r *http.Request) {
	a, okA := pathID(r, "a")
	b, okB := pathID(r, "b")
	if !okA || !okB {
		apierrors.BadRequest(w, "invalid user ids")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := h.Recs.CommonGroups(ctx, a, b)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, groups)
}
