package service

import (
	"context"
	"strings"

	"linkup/internal/models"
	"linkup/internal/repository"
)

// ChatService provides event-scoped chat. Any authenticated user may read or
// write any event's chat (public social chat model); deletion is restricted
// to the message sender or the event creator.
type ChatService struct {
	messageRepo repository.MessageRepository
	eventRepo   repository.EventRepository
}

// NewChatService returns a new ChatService.
func NewChatService(messageRepo repository.MessageRepository, eventRepo repository.EventRepository) *ChatService {
	return &ChatService{messageRepo: messageRepo, eventRepo: eventRepo}
}

// AddMessage appends a message to the event's chat and returns it joined
// with the sender's current profile.
func (s *ChatService) AddMessage(ctx context.Context, eventID, senderID, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, models.NewValidationError("Message body cannot be empty")
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		EventID: eventID,
		UserID:  senderID,
		Content: body,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// GetMessages returns the event's messages ascending by created_at.
func (s *ChatService) GetMessages(ctx context.Context, eventID string) ([]models.Message, error) {
	return s.messageRepo.ListByEvent(ctx, eventID)
}

// DeleteMessage removes a message. The sender may always delete their own
// message; the event creator may delete any message in their own event.
func (s *ChatService) DeleteMessage(ctx context.Context, callerID, messageID string) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if msg.UserID != callerID {
		event, err := s.eventRepo.GetByID(ctx, msg.EventID)
		if err != nil {
			return err
		}
		if event.CreatorID != callerID {
			return models.NewUnauthorizedError("Only the sender or the event creator can delete this message")
		}
	}

	return s.messageRepo.Delete(ctx, messageID)
}
