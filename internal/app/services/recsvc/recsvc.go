// internal/app/services/recsvc/recsvc.go

// Package recsvc serves social recommendations out of the graph store.
// Every operation here traverses Neo4j directly; there is no cache layer
// and no relational fallback, so graph unavailability fails the request.
package recsvc

import (
	"context"
	"errors"

	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

// DefaultLimit caps recommendation lists when the caller does not ask
// for a specific size.
const DefaultLimit = 10

// ErrNotFound is returned when the subject user has no graph node.
var ErrNotFound = errors.New("user not found")

// Graph is the traversal surface recommendations need.
type Graph interface {
	HasUserNode(ctx context.Context, id int64) (bool, error)
	FriendCandidates(ctx context.Context, userID int64, limit int) ([]models.FriendRecommendation, error)
	GroupCandidates(ctx context.Context, userID int64, limit int) ([]models.GroupRecommendation, error)
	CommonGroups(ctx context.Context, a, b int64) ([]models.GroupRef, error)
}

type Service struct {
	graph Graph
}

func New(graph Graph) *Service {
	return &Service{graph: graph}
}

// FriendRecommendations returns friend-of-friend candidates for a user,
// ranked by mutual friend count descending with id ascending as the
// tie-break. Candidates are exactly two hops out; direct friends and the
// user are excluded. A user with no friends gets an empty list, not an
// error.
func (s *Service) FriendRecommendations(ctx context.Context, userID int64, limit int) ([]models.FriendRecommendation, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	ok, err := s.graph.HasUserNode(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.graph.FriendCandidates(ctx, userID, limit)
}

// GroupRecommendations returns groups the user's direct friends belong to
// that the user does not, ranked by friend-member count descending then
// group id ascending.
func (s *Service) GroupRecommendations(ctx context.Context, userID int64, limit int) ([]models.GroupRecommendation, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	ok, err := s.graph.HasUserNode(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.graph.GroupCandidates(ctx, userID, limit)
}

// CommonGroups returns the groups two users share, ordered by group id.
func (s *Service) CommonGroups(ctx context.Context, a, b int64) ([]models.GroupRef, error) {
	for _, id := range []int64{a, b} {
		ok, err := s.graph.HasUserNode(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotFound
		}
	}
	return s.graph.CommonGroups(ctx, a, b)
}
