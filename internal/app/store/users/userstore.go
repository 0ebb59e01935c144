// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/MirzaKrupic/CampusConnect/internal/app/system/normalize"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

var (
	// ErrDuplicateEmail is returned when the unique email constraint is violated.
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// ErrNotFound is returned when no user row matches the lookup.
	ErrNotFound = errors.New("user not found")
)

// Store reads and writes user rows in PostgreSQL, the system of record
// for user identity. The generated id is reused as the graph node id and
// the cache key, so every derived-store write starts here.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new user and returns it with the generated id.
// Email is normalized to lowercase before insert.
func (s *Store) Create(ctx context.Context, email, fullName string) (models.User, error) {
	u := models.User{
		Email:    normalize.Email(email),
		FullName: normalize.Name(fullName),
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetByID loads a user by id. Returns ErrNotFound if no row exists.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

// GetByEmail loads a user by normalized email. Returns ErrNotFound if no row exists.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalize.Email(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}
