// internal/domain/models/score.go
package models

// ScoreEntry is one leaderboard row: a user id and its live score.
// Scores exist only in the Redis sorted set; there is no history.
type ScoreEntry struct {
	UserID int64   `json:"user_id"`
	Points float64 `json:"points"`
}

// LeaderboardEntry is a score entry enriched with rank and display name.
type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	UserID   int64   `json:"user_id"`
	FullName string  `json:"full_name"`
	Points   float64 `json:"points"`
}
