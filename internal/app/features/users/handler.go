// internal/app/features/users/handler.go

// Package users exposes the user API: registration, profile reads,
// friendships, and the user's groups and posts.
package users

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/postsvc"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/usersvc"
)

// Handler is the shared dependency container for the users feature.
type Handler struct {
	Users *usersvc.Service
	Posts *postsvc.Service
	Log   *zap.Logger
}

// NewHandler constructs a users Handler. It is called from the bootstrap
// BuildHandler function once the services are wired.
func NewHandler(users *usersvc.Service, posts *postsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Users: users,
		Posts: posts,
		Log:   logger,
	}
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}
