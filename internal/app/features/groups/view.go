// internal/app/features/groups/view.go
package groups

import (
	"context"
	"net/http"

	apierrors "github.com/MirzaKrupic/CampusConnect/internal/app/features/errors"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
)

// ServeList handles GET /groups, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50, 200)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := h.Groups.ListGroups(ctx, int(limit))
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, groups)
}

// ServeView handles GET /groups/{id}: the cache-aside summary with member
// and post counts.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid group id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetGroup(ctx, id)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, g)
}

// ServeMembers handles GET /groups/{id}/members from the system of record.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid group id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Groups.Members(ctx, id)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, members)
}

// ServeActivity handles GET /groups/{id}/activity. The stream lives only
// in the cache store; when that store is down this endpoint fails rather
// than inventing an empty history.
func (h *Handler) ServeActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid group id")
		return
	}
	limit := queryInt(r, "limit", 20, 100)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	events, err := h.Groups.RecentActivity(ctx, id, int(limit))
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, events)
}

// ServeFeed handles GET /groups/{id}/feed: the group's posts newest first,
// enriched with author names.
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.BadRequest(w, "invalid group id")
		return
	}
	limit := queryInt(r, "limit", 20, 100)
	skip := queryInt(r, "skip", 0, 10000)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	feed, err := h.Posts.GroupFeed(ctx, id, limit, skip)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, feed)
}
