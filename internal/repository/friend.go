package repository

import (
	"context"
	"errors"

	"linkup/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository defines persistence operations for the friendship graph.
type FriendRepository interface {
	// CreateIfAbsent inserts a pending request. A row already holding the
	// same ordered pair leaves the store untouched and reports created=false;
	// duplicate requests are idempotent, not errors.
	CreateIfAbsent(ctx context.Context, friendship *models.Friendship) (created bool, err error)
	GetByID(ctx context.Context, id string) (*models.Friendship, error)
	// GetBetween returns the row joining the two users in either direction,
	// or (nil, nil) when none exists.
	GetBetween(ctx context.Context, userA, userB string) (*models.Friendship, error)
	GetPendingForReceiver(ctx context.Context, receiverID string) ([]models.Friendship, error)
	// ResolveIfPending flips a pending request addressed to receiverID to the
	// given status in one conditional update. Returns false when zero rows
	// matched: already resolved, or the caller is not the receiver.
	ResolveIfPending(ctx context.Context, friendshipID, receiverID string, status models.FriendshipStatus) (bool, error)
	// GetFriends returns the counterpart users of every accepted friendship.
	GetFriends(ctx context.Context, userID string) ([]models.User, error)
	// GetStatuses batch-resolves the friendship status between userID and
	// each candidate, avoiding N+1 lookups on search result lists.
	GetStatuses(ctx context.Context, userID string, candidateIDs []string) (map[string]models.FriendshipStatus, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository returns a new FriendRepository implementation.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) CreateIfAbsent(ctx context.Context, friendship *models.Friendship) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "requester_id"}, {Name: "receiver_id"}},
			DoNothing: true,
		}).
		Create(friendship)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *friendRepository) GetByID(ctx context.Context, id string) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Receiver").
		First(&friendship, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friendship", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

func (r *friendRepository) GetBetween(ctx context.Context, userA, userB string) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

func (r *friendRepository) GetPendingForReceiver(ctx context.Context, receiverID string) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", receiverID, models.FriendshipStatusPending).
		Preload("Requester").
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return friendships, nil
}

func (r *friendRepository) ResolveIfPending(ctx context.Context, friendshipID, receiverID string, status models.FriendshipStatus) (bool, error) {
	// Receiver check and pending check ride in the same conditional update,
	// so concurrent accept/decline calls have exactly one winner.
	res := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("id = ? AND receiver_id = ? AND status = ?",
			friendshipID, receiverID, models.FriendshipStatusPending).
		Update("status", status)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *friendRepository) GetFriends(ctx context.Context, userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON (users.id = f.requester_id OR users.id = f.receiver_id)").
		Where("f.status = ? AND (f.requester_id = ? OR f.receiver_id = ?) AND users.id != ?",
			models.FriendshipStatusAccepted, userID, userID, userID).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *friendRepository) GetStatuses(ctx context.Context, userID string, candidateIDs []string) (map[string]models.FriendshipStatus, error) {
	statuses := make(map[string]models.FriendshipStatus, len(candidateIDs))
	if len(candidateIDs) == 0 {
		return statuses, nil
	}

	var friendships []models.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND receiver_id IN ?) OR (receiver_id = ? AND requester_id IN ?)",
			userID, candidateIDs, userID, candidateIDs).
		Find(&friendships).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, f := range friendships {
		statuses[f.OtherParty(userID)] = f.Status
	}
	return statuses, nil
}
