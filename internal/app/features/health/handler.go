// internal/app/features/health/handler.go

// Package health reports per-store connectivity. The platform is built to
// degrade rather than die, so the endpoint pings all four stores and
// reports each one separately instead of collapsing them into a single
// up/down bit.
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
)

// Pinger is one backing store's connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// Handler holds one Pinger per backing store.
type Handler struct {
	Relational Pinger
	Cache      Pinger
	Documents  Pinger
	Graph      Pinger
	Log        *zap.Logger
}

// NewHandler constructs a health Handler over the four store pingers.
func NewHandler(relational, cache, documents, graph Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Relational: relational,
		Cache:      cache,
		Documents:  documents,
		Graph:      graph,
		Log:        logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status string            `json:"status"`
	Stores map[string]string `json:"stores"`
}

// Serve handles GET /health.
//
// 200 when every store answers its ping, 503 when any store does not.
// Each store reports "connected" or "disconnected" independently so an
// operator can see which backend is down.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{Status: "ok", Stores: map[string]string{}}
	checks := map[string]Pinger{
		"postgres": h.Relational,
		"redis":    h.Cache,
		"mongo":    h.Documents,
		"neo4j":    h.Graph,
	}
	for name, p := range checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			h.Log.Error("health check: store ping failed",
				zap.String("store", name), zap.Error(err))
			resp.Status = "degraded"
			resp.Stores[name] = "disconnected"
			continue
		}
		resp.Stores[name] = "connected"
	}

	w.Header().Set("Content-Type", "application/json")
	if resp.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
