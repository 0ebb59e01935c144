// internal/domain/models/activity.go
package models

import "time"

// Activity event types.
const (
	ActivityJoin = "join"
	ActivityPost = "post"
)

// ActivityEvent is one entry in a group's recent-activity stream. The stream
// lives only in Redis as a capped list; entries vanish on trim or flush.
type ActivityEvent struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	UserID  int64     `json:"user_id"`
	GroupID int64     `json:"group_id"`
	PostID  string    `json:"post_id,omitempty"`
	Title   string    `json:"title,omitempty"`
	At      time.Time `json:"at"`
}
