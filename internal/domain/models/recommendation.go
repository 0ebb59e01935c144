// internal/domain/models/recommendation.go
package models

// FriendRecommendation is a friend-of-friend candidate ranked by the number
// of distinct mutual-friend paths.
type FriendRecommendation struct {
	UserID        int64  `json:"user_id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	MutualFriends int64  `json:"mutual_friends"`
}

// GroupRecommendation is a group candidate ranked by the number of distinct
// direct friends who are members.
type GroupRecommendation struct {
	GroupID     int64  `json:"group_id"`
	Name        string `json:"name"`
	CourseCode  string `json:"course_code"`
	FriendCount int64  `json:"friend_count"`
}

// GroupRef identifies a group in graph query results.
type GroupRef struct {
	GroupID    int64  `json:"group_id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
}
