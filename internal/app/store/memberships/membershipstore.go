// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

var (
	// ErrDuplicateMembership is returned when the (user_id, group_id)
	// composite key already exists.
	ErrDuplicateMembership = errors.New("user is already a member of this group")

	// ErrMissingRow is returned when a foreign-key constraint rejects the
	// insert, meaning the user or group row does not exist.
	ErrMissingRow = errors.New("user or group does not exist")
)

// Store reads and writes membership rows in PostgreSQL. This table is the
// authoritative record for membership; the MEMBER_OF graph edge is derived.
// Authorization-shaped checks (may this user post here?) must use Exists,
// never the cached group summary.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Add inserts a membership row. The composite primary key enforces one row
// per (user, group); a conflict maps to ErrDuplicateMembership.
func (s *Store) Add(ctx context.Context, userID, groupID int64, role string) (models.GroupMembership, error) {
	if role == "" {
		role = "member"
	}
	m := models.GroupMembership{UserID: userID, GroupID: groupID, Role: role}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.GroupMembership{}, ErrDuplicateMembership
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return models.GroupMembership{}, ErrMissingRow
		}
		return models.GroupMembership{}, fmt.Errorf("insert membership: %w", err)
	}
	return m, nil
}

// UpdateRole changes the role on an existing membership row.
func (s *Store) UpdateRole(ctx context.Context, userID, groupID int64, role string) error {
	res := s.db.WithContext(ctx).
		Model(&models.GroupMembership{}).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("update role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMissingRow
	}
	return nil
}

// Exists reports whether a membership row exists for (userID, groupID).
// This is the authoritative check used before post creation.
func (s *Store) Exists(ctx context.Context, userID, groupID int64) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.GroupMembership{}).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("membership exists: %w", err)
	}
	return n > 0, nil
}

// CountByGroup returns the number of members in a group.
func (s *Store) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.GroupMembership{}).
		Where("group_id = ?", groupID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return n, nil
}

// ListByGroup returns members of a group joined with user identity,
// earliest join first.
func (s *Store) ListByGroup(ctx context.Context, groupID int64) ([]models.GroupMember, error) {
	var members []models.GroupMember
	err := s.db.WithContext(ctx).
		Table("group_memberships AS gm").
		Select("u.id AS user_id, u.email, u.full_name, gm.role, gm.joined_at").
		Joins("JOIN users u ON u.id = gm.user_id").
		Where("gm.group_id = ?", groupID).
		Order("gm.joined_at ASC").
		Scan(&members).Error
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	return members, nil
}

// ListByUser returns the groups a user belongs to, most recent join first.
func (s *Store) ListByUser(ctx context.Context, userID int64) ([]models.UserGroup, error) {
	var groups []models.UserGroup
	err := s.db.WithContext(ctx).
		Table("group_memberships AS gm").
		Select("g.id AS group_id, g.name, g.course_code, gm.role, gm.joined_at").
		Joins("JOIN groups g ON g.id = gm.group_id").
		Where("gm.user_id = ?", userID).
		Order("gm.joined_at DESC").
		Scan(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("list user groups: %w", err)
	}
	return groups, nil
}
