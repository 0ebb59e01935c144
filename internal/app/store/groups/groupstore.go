// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

// ErrNotFound is returned when no group row matches the lookup.
var ErrNotFound = errors.New("group not found")

// Store reads and writes group rows in PostgreSQL.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new group and returns it with the generated id.
func (s *Store) Create(ctx context.Context, name, courseCode string) (models.Group, error) {
	g := models.Group{Name: name, CourseCode: courseCode}
	if err := s.db.WithContext(ctx).Create(&g).Error; err != nil {
		return models.Group{}, fmt.Errorf("insert group: %w", err)
	}
	return g, nil
}

// GetByID loads a group by id. Returns ErrNotFound if no row exists.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	var g models.Group
	if err := s.db.WithContext(ctx).First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get group %d: %w", id, err)
	}
	return &g, nil
}

// List returns groups newest first, capped at limit.
func (s *Store) List(ctx context.Context, limit int) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}
