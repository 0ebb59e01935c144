// internal/app/features/posts/handler.go

// Package posts exposes the content API: post creation and editing, the
// hot-posts view, tag search, and comments.
package posts

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/postsvc"
)

// Handler is the shared dependency container for the posts feature.
type Handler struct {
	Posts *postsvc.Service
	Log   *zap.Logger
}

// NewHandler constructs a posts Handler.
func NewHandler(posts *postsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{Posts: posts, Log: logger}
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
