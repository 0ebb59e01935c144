// internal/app/features/recommendations/handler.go

// Package recommendations exposes the graph-backed discovery API:
// friend-of-friend suggestions, group suggestions, and common groups.
package recommendations

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/recsvc"
)

// Handler is the shared dependency container for the recommendations
// feature.
type Handler struct {
	Recs *recsvc.Service
	Log  *zap.Logger
}

// NewHandler constructs a recommendations Handler.
func NewHandler(recs *recsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{Recs: recs, Log: logger}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func queryLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 || n > 50 {
		return recsvc.DefaultLimit
	}
	return n
}
