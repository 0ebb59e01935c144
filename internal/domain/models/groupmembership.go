// internal/domain/models/groupmembership.go
package models

import "time"

// GroupMembership is the authoritative join between users and groups.
// Exactly one row per (user_id, group_id). The MEMBER_OF edge in the graph
// store is a mirror and must never exist without this row.
type GroupMembership struct {
	UserID   int64     `gorm:"primaryKey" json:"user_id"`
	GroupID  int64     `gorm:"primaryKey" json:"group_id"`
	Role     string    `gorm:"not null;default:member" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// TableName pins the relational table name.
func (GroupMembership) TableName() string { return "group_memberships" }

// GroupMember is a member row joined with user identity, for group listings.
type GroupMember struct {
	UserID   int64     `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// UserGroup is a membership joined with group fields, for user listings.
type UserGroup struct {
	GroupID    int64     `json:"group_id"`
	Name       string    `json:"name"`
	CourseCode string    `json:"course_code"`
	Role       string    `json:"role"`
	JoinedAt   time.Time `json:"joined_at"`
}
