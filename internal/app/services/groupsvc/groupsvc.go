// internal/app/services/groupsvc/groupsvc.go

// Package groupsvc coordinates group operations across all four stores:
// PostgreSQL holds the authoritative group and membership rows, Neo4j
// mirrors nodes and MEMBER_OF edges, MongoDB supplies post counts for the
// cached summary, and Redis holds the summary cache, the per-group
// activity stream, and the participation scores.
package groupsvc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/cacheaside"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/fanout"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/leaderboard"
	cachestore "github.com/MirzaKrupic/CampusConnect/internal/app/store/cache"
	groupstore "github.com/MirzaKrupic/CampusConnect/internal/app/store/groups"
	membershipstore "github.com/MirzaKrupic/CampusConnect/internal/app/store/memberships"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

// ActivityMaxLen caps each group's recent-activity list in the cache store.
const ActivityMaxLen = 100

var (
	// ErrNotFound is returned when a referenced group or user does not exist.
	ErrNotFound = errors.New("group or user not found")

	// ErrAlreadyMember is returned when the membership row already exists.
	ErrAlreadyMember = errors.New("user is already a member of this group")
)

// GroupStore is the authoritative relational store for groups.
type GroupStore interface {
	Create(ctx context.Context, name, courseCode string) (models.Group, error)
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	List(ctx context.Context, limit int) ([]models.Group, error)
}

// MembershipStore is the authoritative relational store for memberships.
type MembershipStore interface {
	Add(ctx context.Context, userID, groupID int64, role string) (models.GroupMembership, error)
	UpdateRole(ctx context.Context, userID, groupID int64, role string) error
	CountByGroup(ctx context.Context, groupID int64) (int64, error)
	ListByGroup(ctx context.Context, groupID int64) ([]models.GroupMember, error)
}

// PostCounter supplies the document-store post count for group summaries.
type PostCounter interface {
	CountByGroup(ctx context.Context, groupID int64) (int64, error)
}

// Graph is the slice of the graph store group coordination needs.
type Graph interface {
	UpsertGroupNode(ctx context.Context, g models.Group) error
	UpsertMembershipEdge(ctx context.Context, userID, groupID int64, role string) error
}

// Cache is the slice of the cache store group coordination needs.
type Cache interface {
	cacheaside.Cache
	Invalidate(ctx context.Context, key string) error
	AppendBounded(ctx context.Context, list string, entry []byte, maxLen int64) error
	RecentRange(ctx context.Context, list string, limit int64) ([][]byte, error)
}

// Scores awards participation points. Only the increment is needed here.
type Scores interface {
	IncrementScore(ctx context.Context, userID int64, delta float64) (float64, error)
}

type Service struct {
	groups      GroupStore
	memberships MembershipStore
	posts       PostCounter
	graph       Graph
	cache       Cache
	scores      Scores
	ttl         time.Duration
	log         *zap.Logger
}

func New(groups GroupStore, memberships MembershipStore, posts PostCounter, graph Graph, cache Cache, scores Scores, ttl time.Duration, log *zap.Logger) *Service {
	return &Service{
		groups:      groups,
		memberships: memberships,
		posts:       posts,
		graph:       graph,
		cache:       cache,
		scores:      scores,
		ttl:         ttl,
		log:         log,
	}
}

// CreateGroup inserts the authoritative row, then mirrors the graph node
// and caches an empty summary. Same shape as user creation: only the
// relational insert can fail the operation.
func (s *Service) CreateGroup(ctx context.Context, name, courseCode string) (models.Group, *fanout.Result, error) {
	g, err := s.groups.Create(ctx, name, courseCode)
	if err != nil {
		return models.Group{}, nil, err
	}

	fo := fanout.New(s.log, "create group")
	fo.Do("graph group node", func() error {
		return s.graph.UpsertGroupNode(ctx, g)
	})
	fo.Do("cache group summary", func() error {
		data, err := json.Marshal(models.GroupSummary{Group: g})
		if err != nil {
			return err
		}
		return s.cache.SetWithTTL(ctx, cachestore.GroupKey(g.ID), data, s.ttl)
	})
	return g, fo, nil
}

// GetGroup serves the group summary through the cache-aside path. A miss
// rebuilds the summary from the authoritative row plus the derived counts
// (members from PostgreSQL, posts from MongoDB) and caches it.
func (s *Service) GetGroup(ctx context.Context, id int64) (models.GroupSummary, error) {
	sum, _, err := cacheaside.Get(ctx, s.cache, s.log, cachestore.GroupKey(id), s.ttl,
		func(ctx context.Context) (models.GroupSummary, error) {
			g, err := s.groups.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, groupstore.ErrNotFound) {
					return models.GroupSummary{}, ErrNotFound
				}
				return models.GroupSummary{}, err
			}
			members, err := s.memberships.CountByGroup(ctx, id)
			if err != nil {
				return models.GroupSummary{}, err
			}
			posts, err := s.posts.CountByGroup(ctx, id)
			if err != nil {
				return models.GroupSummary{}, err
			}
			return models.GroupSummary{Group: *g, MemberCount: members, PostCount: posts}, nil
		})
	return sum, err
}

// ListGroups returns groups newest first from the authoritative store.
func (s *Service) ListGroups(ctx context.Context, limit int) ([]models.Group, error) {
	return s.groups.List(ctx, limit)
}

// JoinGroup adds a user to a group. Step 1, the relational membership row,
// is the only step that can fail the operation: a composite-key conflict
// maps to ErrAlreadyMember and a foreign-key rejection to ErrNotFound.
// Steps 2-5 (graph edge, activity append, summary invalidation, score
// award) are best-effort fan-out reported through the result.
func (s *Service) JoinGroup(ctx context.Context, userID, groupID int64, role string) (models.GroupMembership, *fanout.Result, error) {
	m, err := s.memberships.Add(ctx, userID, groupID, role)
	if err != nil {
		switch {
		case errors.Is(err, membershipstore.ErrDuplicateMembership):
			return models.GroupMembership{}, nil, ErrAlreadyMember
		case errors.Is(err, membershipstore.ErrMissingRow):
			return models.GroupMembership{}, nil, ErrNotFound
		}
		return models.GroupMembership{}, nil, err
	}

	fo := fanout.New(s.log, "join group")
	fo.Do("graph membership edge", func() error {
		return s.graph.UpsertMembershipEdge(ctx, userID, groupID, m.Role)
	})
	fo.Do("activity event", func() error {
		return s.appendActivity(ctx, groupID, models.ActivityEvent{
			ID:      uuid.NewString(),
			Type:    models.ActivityJoin,
			UserID:  userID,
			GroupID: groupID,
			At:      time.Now().UTC(),
		})
	})
	// Member count changed; the cached summary is stale.
	fo.Do("invalidate group summary", func() error {
		return s.cache.Invalidate(ctx, cachestore.GroupKey(groupID))
	})
	fo.Do("award join points", func() error {
		_, err := s.scores.IncrementScore(ctx, userID, leaderboard.JoinPoints)
		return err
	})
	return m, fo, nil
}

// UpdateMemberRole changes a member's role. Role is the only membership
// field that may change after join. The relational update is
// authoritative; the graph edge carries a role property too, so it is
// refreshed best-effort.
func (s *Service) UpdateMemberRole(ctx context.Context, userID, groupID int64, role string) (*fanout.Result, error) {
	if err := s.memberships.UpdateRole(ctx, userID, groupID, role); err != nil {
		if errors.Is(err, membershipstore.ErrMissingRow) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fo := fanout.New(s.log, "update member role")
	fo.Do("graph membership edge", func() error {
		return s.graph.UpsertMembershipEdge(ctx, userID, groupID, role)
	})
	return fo, nil
}

// Members lists a group's members from the authoritative store.
func (s *Service) Members(ctx context.Context, groupID int64) ([]models.GroupMember, error) {
	return s.memberships.ListByGroup(ctx, groupID)
}

// RecentActivity returns up to limit recent events for a group, newest
// first. The cache store is the sole source for activity, so its
// unavailability fails the read.
func (s *Service) RecentActivity(ctx context.Context, groupID int64, limit int) ([]models.ActivityEvent, error) {
	raw, err := s.cache.RecentRange(ctx, cachestore.ActivityKey(groupID), int64(limit))
	if err != nil {
		return nil, err
	}
	events := make([]models.ActivityEvent, 0, len(raw))
	for _, entry := range raw {
		var ev models.ActivityEvent
		if err := json.Unmarshal(entry, &ev); err != nil {
			s.log.Warn("skipping undecodable activity entry",
				zap.Int64("group_id", groupID), zap.Error(err))
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// AppendActivity records an event on a group's capped stream. Exposed so
// the post service can log post events through the same path.
func (s *Service) AppendActivity(ctx context.Context, groupID int64, ev models.ActivityEvent) error {
	return s.appendActivity(ctx, groupID, ev)
}

func (s *Service) appendActivity(ctx context.Context, groupID int64, ev models.ActivityEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.cache.AppendBounded(ctx, cachestore.ActivityKey(groupID), data, ActivityMaxLen)
}
