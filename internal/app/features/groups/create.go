// internal/app/features/groups/create.go
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

type createRequest struct {
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
}

type createResponse struct {
	Group   models.Group `json:"group"`
	Partial bool         `json:"partial"`
	Pending []string     `json:"pending,omitempty"`
}

// ServeCreate handles POST /groups. The relational insert is
// authoritative; the graph node and cached summary follow best-effort.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		apierrors.BadRequest(w, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, fo, err := h.Groups.CreateGroup(ctx, req.Name, req.CourseCode)
	if err != nil {
		apierrors.FromError(w, h.Log, err)
		return
	}
	apierrors.WriteJSON(w, http.StatusCreated, createResponse{
		Group:   g,
		Partial: fo.Partial(),
		Pending: fo.Pending(),
	})
}
