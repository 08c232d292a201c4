// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"linkup/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users and profiles.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns (nil, nil) when no account exists for the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// Search matches name case-insensitively by substring, excluding
	// excludeID, bounded by limit.
	Search(ctx context.Context, query, excludeID string, limit int) ([]models.User, error)
	// UpdateLocation writes coordinates and last_seen together. Nil
	// coordinates clear the stored position.
	UpdateLocation(ctx context.Context, userID string, lat, lng *float64, lastSeen time.Time) error
	// GetNearby returns non-ghost users with known coordinates seen after
	// `since`, excluding the viewer.
	GetNearby(ctx context.Context, viewerID string, since time.Time) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Search(ctx context.Context, query, excludeID string, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	var users []models.User
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? AND id != ?", pattern, excludeID).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) UpdateLocation(ctx context.Context, userID string, lat, lng *float64, lastSeen time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"latitude":  lat,
			"longitude": lng,
			"last_seen": lastSeen,
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}

func (r *userRepository) GetNearby(ctx context.Context, viewerID string, since time.Time) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("is_ghost = ?", false).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("last_seen >= ?", since).
		Where("id != ?", viewerID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
