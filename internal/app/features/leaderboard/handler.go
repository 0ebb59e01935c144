// internal/app/features/leaderboard/handler.go

// Package leaderboard exposes the participation-points ranking. Scores
// live only in the cache store's sorted set; there is no relational copy,
// so a cache flush resets the board.
package leaderboard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apierrors "github.com/MirzaKrupic/CampusConnect/internal/app/features/errors"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/leaderboard"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
)

// Handler is the shared dependency container for the leaderboard feature.
type Handler struct {
	Scores *leaderboard.Service
	Log    *zap.Logger
}

// NewHandler constructs a leaderboard Handler.
func NewHandler(scores *leaderboard.Service, logger *zap.Logger) *Handler {
	return &Handler{Scores: scores, Log: logger}
}

// ServeTop handles GET /leaderboard: the top scorers with display names.
func (h *Handler) ServeTop(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 && n <= 100 {
		limit = n
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, err := h.Scores.TopScoresWithNames(ctx, limit)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, entries)
}

// ServeRank handles GET /leaderboard/rank/{id}: a user's 1-based rank.
func (h *Handler) ServeRank(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		apierrors.BadRequest(w, "invalid user id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rank, present, err := h.Scores.Rank(ctx, id)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	if !present {
		apierrors.NotFound(w, "user has no score")
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"user_id": id,
		"rank":    rank,
	})
}
