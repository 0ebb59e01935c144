// internal/domain/models/user.go
package models

import "time"

// User is the account record. PostgreSQL is the system of record; the same
// id keys the Neo4j node and the Redis cache entry.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"not null" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`

	// Declared so migration puts a foreign key on group_memberships;
	// memberships are never loaded through this field.
	Memberships []GroupMembership `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName pins the relational table name.
func (User) TableName() string { return "users" }

// Profile is a user enriched with graph and membership data.
type Profile struct {
	User
	FriendCount int64       `json:"friend_count"`
	GroupCount  int         `json:"group_count"`
	Groups      []UserGroup `json:"groups"`
}
