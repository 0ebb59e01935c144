// internal/domain/models/group.go
package models

import "time"

// Group is a study group tied to a course. PostgreSQL is the system of
// record; the graph store mirrors each group as a node with the same id.
type Group struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	CourseCode string    `gorm:"not null" json:"course_code"`
	CreatedAt  time.Time `json:"created_at"`

	// Declared so migration puts a foreign key on group_memberships;
	// memberships are never loaded through this field.
	Memberships []GroupMembership `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName pins the relational table name.
func (Group) TableName() string { return "groups" }

// GroupSummary is the cached view of a group. Member and post counts are
// derived (relational join count, Mongo document count) and advisory only.
type GroupSummary struct {
	Group
	MemberCount int64 `json:"member_count"`
	PostCount   int64 `json:"post_count"`
}
