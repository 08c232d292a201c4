package repository

import (
	"context"
	"errors"

	"linkup/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for event chat.
type MessageRepository interface {
	// Create inserts the message and reloads it with the sender's current
	// profile attached.
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	// ListByEvent returns messages ascending by created_at.
	ListByEvent(ctx context.Context, eventID string) ([]models.Message, error)
	Delete(ctx context.Context, id string) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	// Author comes from the current profile, not a cached snapshot.
	if err := r.db.WithContext(ctx).Preload("User").First(msg, "id = ?", msg.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	var msg models.Message
	if err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

func (r *messageRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Preload("User").
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Message{}, "id = ?", id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
