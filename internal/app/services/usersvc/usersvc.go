// internal/app/services/usersvc/usersvc.go

// Package usersvc coordinates user operations across PostgreSQL (system of
// record), Neo4j (graph mirror), and Redis (cached profiles). The write
// path always lands the relational row first; the node mirror and cache
// entry are best-effort fan-out that never unwinds it.
package usersvc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/cacheaside"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/fanout"
	cachestore "github.com/MirzaKrupic/CampusConnect/internal/app/store/cache"
	userstore "github.com/MirzaKrupic/CampusConnect/internal/app/store/users"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

var (
	// ErrDuplicateEmail mirrors the authoritative store's uniqueness
	// violation for callers of this package.
	ErrDuplicateEmail = userstore.ErrDuplicateEmail

	// ErrNotFound is returned when a referenced user does not exist,
	// whether the check hit the relational store or the graph mirror.
	ErrNotFound = errors.New("user not found")

	// ErrSelfFriend is returned when a user tries to befriend themselves.
	ErrSelfFriend = errors.New("cannot befriend yourself")

	// ErrAlreadyFriends is returned when the friendship already exists.
	ErrAlreadyFriends = errors.New("users are already friends")
)

// UserStore is the authoritative relational store for users.
type UserStore interface {
	Create(ctx context.Context, email, fullName string) (models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// MembershipStore supplies the relational membership listing for profiles.
type MembershipStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.UserGroup, error)
}

// Graph is the slice of the graph store user coordination needs.
type Graph interface {
	UpsertUserNode(ctx context.Context, u models.User) error
	UpsertFriendEdge(ctx context.Context, fromID, toID int64) error
	HasUserNode(ctx context.Context, id int64) (bool, error)
	AreFriends(ctx context.Context, a, b int64) (bool, error)
	FriendIDs(ctx context.Context, id int64) ([]int64, error)
	Degree(ctx context.Context, id int64) (int64, error)
}

// Cache is the slice of the cache store user coordination needs.
type Cache interface {
	cacheaside.Cache
	Invalidate(ctx context.Context, key string) error
}

type Service struct {
	users       UserStore
	memberships MembershipStore
	graph       Graph
	cache       Cache
	ttl         time.Duration
	log         *zap.Logger
}

func New(users UserStore, memberships MembershipStore, graph Graph, cache Cache, ttl time.Duration, log *zap.Logger) *Service {
	return &Service{
		users:       users,
		memberships: memberships,
		graph:       graph,
		cache:       cache,
		ttl:         ttl,
		log:         log,
	}
}

// CreateUser inserts the authoritative row, then mirrors the graph node and
// populates the cache. A duplicate email aborts before any write reaches a
// derived store. Mirror or cache failures leave the user durably created
// and are reported through the fan-out result, never as an error.
func (s *Service) CreateUser(ctx context.Context, email, fullName string) (models.User, *fanout.Result, error) {
	u, err := s.users.Create(ctx, email, fullName)
	if err != nil {
		return models.User{}, nil, err
	}

	fo := fanout.New(s.log, "create user")
	fo.Do("graph user node", func() error {
		return s.graph.UpsertUserNode(ctx, u)
	})
	fo.Do("cache user", func() error {
		data, err := json.Marshal(u)
		if err != nil {
			return err
		}
		return s.cache.SetWithTTL(ctx, cachestore.UserKey(u.ID), data, s.ttl)
	})
	return u, fo, nil
}

// GetUser serves a user read through the cache-aside path.
func (s *Service) GetUser(ctx context.Context, id int64) (models.User, error) {
	u, _, err := cacheaside.Get(ctx, s.cache, s.log, cachestore.UserKey(id), s.ttl,
		func(ctx context.Context) (models.User, error) {
			found, err := s.users.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, userstore.ErrNotFound) {
					return models.User{}, ErrNotFound
				}
				return models.User{}, err
			}
			return *found, nil
		})
	return u, err
}

// GetUserByEmail reads straight from the authoritative store; email is not
// a cache key.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return *u, nil
}

// Profile returns the user enriched with friend count (graph degree) and
// group memberships (relational join). The graph store is the sole source
// for the friend count, so its unavailability fails the read.
func (s *Service) Profile(ctx context.Context, id int64) (models.Profile, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return models.Profile{}, err
	}
	degree, err := s.graph.Degree(ctx, id)
	if err != nil {
		return models.Profile{}, err
	}
	groups, err := s.memberships.ListByUser(ctx, id)
	if err != nil {
		return models.Profile{}, err
	}
	return models.Profile{
		User:        u,
		FriendCount: degree,
		GroupCount:  len(groups),
		Groups:      groups,
	}, nil
}

// Groups lists the groups a user belongs to, from the authoritative store.
func (s *Service) Groups(ctx context.Context, userID int64) ([]models.UserGroup, error) {
	return s.memberships.ListByUser(ctx, userID)
}

// Friends lists a user's direct friends from the graph store.
func (s *Service) Friends(ctx context.Context, userID int64) ([]int64, error) {
	return s.graph.FriendIDs(ctx, userID)
}

// AddFriend creates the symmetric FRIEND relation. Both ids must have graph
// nodes, and the pair must not already be friends; those checks abort with
// no writes. The forward edge is the authoritative write here (the graph is
// the sole store for friendships) so its failure fails the operation. The
// reverse edge and the cache invalidations are fan-out: losing the reverse
// edge leaves a detectable asymmetry rather than triggering a retry.
func (s *Service) AddFriend(ctx context.Context, userID, friendID int64) (*fanout.Result, error) {
	if userID == friendID {
		return nil, ErrSelfFriend
	}
	for _, id := range []int64{userID, friendID} {
		present, err := s.graph.HasUserNode(ctx, id)
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, ErrNotFound
		}
	}
	already, err := s.graph.AreFriends(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, ErrAlreadyFriends
	}

	if err := s.graph.UpsertFriendEdge(ctx, userID, friendID); err != nil {
		return nil, err
	}

	fo := fanout.New(s.log, "add friend")
	fo.Do("reverse friend edge", func() error {
		return s.graph.UpsertFriendEdge(ctx, friendID, userID)
	})
	// Friend counts changed; the cached profiles are stale.
	fo.Do("invalidate user caches", func() error {
		if err := s.cache.Invalidate(ctx, cachestore.UserKey(userID)); err != nil {
			return err
		}
		return s.cache.Invalidate(ctx, cachestore.UserKey(friendID))
	})
	return fo, nil
}
