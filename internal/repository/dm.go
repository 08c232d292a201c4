package repository

import (
	"context"
	"errors"
	"time"

	"linkup/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DMRepository defines persistence operations for direct-message chats. A
// chat record is viewer-relative: each side of a conversation keeps its own
// (owner, peer) row.
type DMRepository interface {
	// UpsertChat creates the chat or refreshes the denormalized peer display
	// fields on the existing one.
	UpsertChat(ctx context.Context, chat *models.DMChat) error
	// GetChat returns (nil, nil) when the owner has no chat with the peer.
	GetChat(ctx context.Context, ownerID, peerID string) (*models.DMChat, error)
	ListChats(ctx context.Context, ownerID string) ([]models.DMChat, error)
	CreateMessage(ctx context.Context, msg *models.DMMessage) error
	// ListMessages returns the chat's messages ascending by created_at.
	ListMessages(ctx context.Context, ownerID, peerID string) ([]models.DMMessage, error)
	// UpdatePreview sets the chat's last-message preview and timestamp.
	UpdatePreview(ctx context.Context, ownerID, peerID, preview string, at time.Time) error
}

type dmRepository struct {
	db *gorm.DB
}

// NewDMRepository returns a new DMRepository implementation.
func NewDMRepository(db *gorm.DB) DMRepository {
	return &dmRepository{db: db}
}

func (r *dmRepository) UpsertChat(ctx context.Context, chat *models.DMChat) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}, {Name: "peer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"peer_name", "peer_avatar", "peer_vibe", "updated_at",
			}),
		}).
		Create(chat).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *dmRepository) GetChat(ctx context.Context, ownerID, peerID string) (*models.DMChat, error) {
	var chat models.DMChat
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND peer_id = ?", ownerID, peerID).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &chat, nil
}

func (r *dmRepository) ListChats(ctx context.Context, ownerID string) ([]models.DMChat, error) {
	var chats []models.DMChat
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("last_message_at DESC NULLS LAST").
		Find(&chats).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return chats, nil
}

func (r *dmRepository) CreateMessage(ctx context.Context, msg *models.DMMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *dmRepository) ListMessages(ctx context.Context, ownerID, peerID string) ([]models.DMMessage, error) {
	var messages []models.DMMessage
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND peer_id = ?", ownerID, peerID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *dmRepository) UpdatePreview(ctx context.Context, ownerID, peerID, preview string, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.DMChat{}).
		Where("owner_id = ? AND peer_id = ?", ownerID, peerID).
		Updates(map[string]any{
			"last_message":    preview,
			"last_message_at": at,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
