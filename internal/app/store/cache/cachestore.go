// internal/app/store/cache/cachestore.go
package cachestore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Well-known keys and key builders. The member of the leaderboard set and
// the hot-posts set is the entity id rendered as a decimal / hex string.
const (
	LeaderboardSet = "leaderboard:points"
	HotPostsSet    = "hot:posts"
)

func UserKey(id int64) string      { return "user:" + strconv.FormatInt(id, 10) }
func GroupKey(id int64) string     { return "group:" + strconv.FormatInt(id, 10) }
func ActivityKey(gid int64) string { return "recent:group:" + strconv.FormatInt(gid, 10) }
func RateLimitKey(key string) string { return "ratelimit:" + key }

// ScoredMember is one entry of a sorted-set range result.
type ScoredMember struct {
	Member string
	Score  float64
}

// Store wraps the Redis client with the narrow operation set the
// coordinator needs: TTL'd entries, one sorted-set mutation, ranked
// ranges, and capped list appends. Every returned error other than a
// decoded miss means the cache store is unavailable; callers decide
// whether that is fatal (leaderboard, activity) or degradable (entity
// cache).
type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get fetches a cached value. The second return distinguishes a miss
// (false, nil error) from store unavailability (error set).
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return val, true, nil
}

// SetWithTTL stores a value with a bounded time-to-live.
func (s *Store) SetWithTTL(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate deletes a cached entry. Deleting a missing key is not an error.
func (s *Store) Invalidate(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", key, err)
	}
	return nil
}

// IncrScore atomically adds delta to member's score in the sorted set and
// returns the new score. Redis guarantees the increment is atomic; callers
// never compose it with other mutations.
func (s *Store) IncrScore(ctx context.Context, set, member string, delta float64) (float64, error) {
	score, err := s.rdb.ZIncrBy(ctx, set, delta, member).Result()
	if err != nil {
		return 0, fmt.Errorf("zincrby %s: %w", set, err)
	}
	return score, nil
}

// SetScore sets member's score in the sorted set, replacing any prior score.
// Used for recency-scored sets where the score is a timestamp.
func (s *Store) SetScore(ctx context.Context, set, member string, score float64) error {
	if err := s.rdb.ZAdd(ctx, set, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return fmt.Errorf("zadd %s: %w", set, err)
	}
	return nil
}

// TopRange returns the top count members of a sorted set, highest score
// first. Ties follow Redis's lexicographic member ordering.
func (s *Store) TopRange(ctx context.Context, set string, count int64) ([]ScoredMember, error) {
	zs, err := s.rdb.ZRevRangeWithScores(ctx, set, 0, count-1).Result()
	if err != nil {
		return nil, fmt.Errorf("zrevrange %s: %w", set, err)
	}
	out := make([]ScoredMember, 0, len(zs))
	for _, z := range zs {
		m, _ := z.Member.(string)
		out = append(out, ScoredMember{Member: m, Score: z.Score})
	}
	return out, nil
}

// Rank returns member's 0-based descending rank in the sorted set.
// The second return is false if the member is not in the set.
func (s *Store) Rank(ctx context.Context, set, member string) (int64, bool, error) {
	rank, err := s.rdb.ZRevRank(ctx, set, member).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("zrevrank %s: %w", set, err)
	}
	return rank, true, nil
}

// AppendBounded pushes entry onto the front of the list and trims it to
// maxLen. Both commands ride one pipeline so the cap holds even under
// concurrent appends.
func (s *Store) AppendBounded(ctx context.Context, list string, entry []byte, maxLen int64) error {
	pipe := s.rdb.Pipeline()
	pipe.LPush(ctx, list, entry)
	pipe.LTrim(ctx, list, 0, maxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append %s: %w", list, err)
	}
	return nil
}

// RecentRange returns up to limit entries from the front of the list,
// newest first.
func (s *Store) RecentRange(ctx context.Context, list string, limit int64) ([][]byte, error) {
	vals, err := s.rdb.LRange(ctx, list, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", list, err)
	}
	out := make([][]byte, 0, len(vals))
	for _, v := range vals {
		out = append(out, []byte(v))
	}
	return out, nil
}

// CountWindow increments the counter at key and stamps the window TTL on
// first use. Returns the count within the current window.
func (s *Store) CountWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.rdb.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("count window %s: %w", key, err)
	}
	return incr.Val(), nil
}

// Ping verifies connectivity for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
