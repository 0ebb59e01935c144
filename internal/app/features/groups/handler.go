// internal/app/features/groups/handler.go

// Package groups exposes the study-group API: creation, listing, joining,
// members, the cached summary view, the activity stream, and the group
// post feed.
package groups

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/groupsvc"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/postsvc"
)

// Handler is the shared dependency container for the groups feature.
type Handler struct {
	Groups *groupsvc.Service
	Posts  *postsvc.Service
	Log    *zap.Logger
}

// NewHandler constructs a groups Handler. It is called from the bootstrap
// BuildHandler function once the services are wired.
func NewHandler(groups *groupsvc.Service, posts *postsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Groups: groups,
		Posts:  posts,
		Log:    logger,
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func queryInt(r *http.Request, name string, def, max int64) int64 {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
