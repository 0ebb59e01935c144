// internal/app/services/leaderboard/leaderboard.go

// Package leaderboard maintains the live participation score ranking in
// the cache store's sorted set. Scores have no history and no relational
// backup: a cache flush resets the board, which is accepted.
package leaderboard

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	cachestore "github.com/MirzaKrupic/CampusConnect/internal/app/store/cache"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

// Participation points per action.
const (
	JoinPoints    = 5
	PostPoints    = 10
	CommentPoints = 2
)

// Scores is the slice of the cache store the leaderboard needs.
type Scores interface {
	IncrScore(ctx context.Context, set, member string, delta float64) (float64, error)
	TopRange(ctx context.Context, set string, count int64) ([]cachestore.ScoredMember, error)
	Rank(ctx context.Context, set, member string) (int64, bool, error)
}

// Users resolves user ids to display names for enriched listings.
type Users interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
}

type Service struct {
	scores Scores
	users  Users
	log    *zap.Logger
}

func New(scores Scores, users Users, log *zap.Logger) *Service {
	return &Service{scores: scores, users: users, log: log}
}

// IncrementScore atomically adds delta to the user's score and returns the
// new value. It fails only when the cache store is unavailable.
func (s *Service) IncrementScore(ctx context.Context, userID int64, delta float64) (float64, error) {
	return s.scores.IncrScore(ctx, cachestore.LeaderboardSet, member(userID), delta)
}

// TopScores returns up to limit entries, highest score first. Equal scores
// follow the store's member ordering; the board is loosely meaningful, not
// an audited ledger.
func (s *Service) TopScores(ctx context.Context, limit int) ([]models.ScoreEntry, error) {
	top, err := s.scores.TopRange(ctx, cachestore.LeaderboardSet, int64(limit))
	if err != nil {
		return nil, err
	}
	entries := make([]models.ScoreEntry, 0, len(top))
	for _, m := range top {
		id, err := strconv.ParseInt(m.Member, 10, 64)
		if err != nil {
			s.log.Warn("leaderboard member is not a user id", zap.String("member", m.Member))
			continue
		}
		entries = append(entries, models.ScoreEntry{UserID: id, Points: m.Score})
	}
	return entries, nil
}

// TopScoresWithNames returns the ranked board enriched with user names via
// the cache-aside read path. A user missing from the authoritative store
// (for example created before a board flush, then deleted) is listed as
// "Unknown" rather than dropped, so ranks stay contiguous.
func (s *Service) TopScoresWithNames(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	entries, err := s.TopScores(ctx, limit)
	if err != nil {
		return nil, err
	}
	board := make([]models.LeaderboardEntry, 0, len(entries))
	for i, e := range entries {
		name := "Unknown"
		if u, err := s.users.GetUser(ctx, e.UserID); err == nil {
			name = u.FullName
		}
		board = append(board, models.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   e.UserID,
			FullName: name,
			Points:   e.Points,
		})
	}
	return board, nil
}

// Rank returns the user's 1-based position on the board. The bool is false
// when the user has no score yet.
func (s *Service) Rank(ctx context.Context, userID int64) (int64, bool, error) {
	rank, ok, err := s.scores.Rank(ctx, cachestore.LeaderboardSet, member(userID))
	if err != nil {
		return 0, false, fmt.Errorf("leaderboard rank: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	return rank + 1, true, nil
}

func member(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
