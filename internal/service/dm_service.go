package service

import (
	"context"
	"time"

	"linkup/internal/middleware"
	"linkup/internal/models"
	"linkup/internal/notifications"
	"linkup/internal/reply"
	"linkup/internal/repository"
)

// previewLimit is the DM chat preview length in runes.
const previewLimit = 50

// DMService provides direct-message chat. Chats are addressed by the
// counterpart's user ID relative to the viewer; each side keeps its own
// local chat record.
type DMService struct {
	dmRepo   repository.DMRepository
	userRepo repository.UserRepository
	strategy reply.Strategy
	notifier *notifications.Notifier
	now      func() time.Time
}

// NewDMService returns a new DMService. strategy decides whether a sent
// message earns a simulated counterpart reply; notifier may be nil.
func NewDMService(dmRepo repository.DMRepository, userRepo repository.UserRepository, strategy reply.Strategy, notifier *notifications.Notifier) *DMService {
	if strategy == nil {
		strategy = reply.Disabled{}
	}
	return &DMService{
		dmRepo:   dmRepo,
		userRepo: userRepo,
		strategy: strategy,
		notifier: notifier,
		now:      time.Now,
	}
}

// GetOrCreateChat returns the owner's chat with the peer, creating it with
// an empty last-message when absent and refreshing the denormalized peer
// display fields otherwise. The denormalization is eventually consistent by
// design, not a live join.
func (s *DMService) GetOrCreateChat(ctx context.Context, ownerID, peerID string) (*models.DMChat, error) {
	if ownerID == peerID {
		return nil, models.NewValidationError("Cannot open a chat with yourself")
	}

	chat := &models.DMChat{OwnerID: ownerID, PeerID: peerID}

	peer, err := s.userRepo.GetByID(ctx, peerID)
	switch {
	case err == nil:
		chat.PeerName = peer.Name
		chat.PeerAvatar = peer.AvatarURL
		chat.PeerVibe = peer.Vibe
	case models.IsNotFound(err):
		// Peer profile unknown; keep whatever display fields the chat holds.
	default:
		return nil, err
	}

	if err := s.dmRepo.UpsertChat(ctx, chat); err != nil {
		return nil, err
	}
	return s.dmRepo.GetChat(ctx, ownerID, peerID)
}

// ListChats returns the owner's chats, most recently active first.
func (s *DMService) ListChats(ctx context.Context, ownerID string) ([]models.DMChat, error) {
	return s.dmRepo.ListChats(ctx, ownerID)
}

// GetChatMessages returns the chat's messages ascending by created_at.
func (s *DMService) GetChatMessages(ctx context.Context, ownerID, peerID string) ([]models.DMMessage, error) {
	return s.dmRepo.ListMessages(ctx, ownerID, peerID)
}

// SendMessage appends the owner's message, refreshes the chat preview and
// timestamp, and hands the send to the reply strategy. A simulated reply, if
// any, is fire-and-forget: it is not awaited and may land after the caller
// has torn down.
func (s *DMService) SendMessage(ctx context.Context, ownerID, peerID, body string) (*models.DMMessage, error) {
	if body == "" {
		return nil, models.NewValidationError("Message body cannot be empty")
	}

	if _, err := s.GetOrCreateChat(ctx, ownerID, peerID); err != nil {
		return nil, err
	}

	sender, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	msg := &models.DMMessage{
		OwnerID:      ownerID,
		PeerID:       peerID,
		SenderID:     ownerID,
		Content:      body,
		SenderName:   sender.Name,
		SenderAvatar: sender.AvatarURL,
		SenderVibe:   sender.Vibe,
	}
	if err := s.dmRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.dmRepo.UpdatePreview(ctx, ownerID, peerID, truncatePreview(body), s.now()); err != nil {
		return nil, err
	}

	if r, ok := s.strategy.For(peerID, body); ok {
		s.scheduleReply(ownerID, peerID, r)
	}

	return msg, nil
}

func (s *DMService) scheduleReply(ownerID, peerID string, r reply.Reply) {
	middleware.SimulatedRepliesScheduled.WithLabelValues(peerID).Inc()

	time.AfterFunc(r.Delay, func() {
		// The sender's request is long gone; the write lands on its own.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		msg := &models.DMMessage{
			OwnerID:  ownerID,
			PeerID:   peerID,
			SenderID: peerID,
			Content:  r.Body,
		}
		if peer, err := s.userRepo.GetByID(ctx, peerID); err == nil {
			msg.SenderName = peer.Name
			msg.SenderAvatar = peer.AvatarURL
			msg.SenderVibe = peer.Vibe
		}

		if err := s.dmRepo.CreateMessage(ctx, msg); err != nil {
			middleware.Logger.Warn("simulated reply write failed", "peer", peerID, "error", err)
			return
		}
		if err := s.dmRepo.UpdatePreview(ctx, ownerID, peerID, truncatePreview(r.Body), s.now()); err != nil {
			middleware.Logger.Warn("simulated reply preview update failed", "peer", peerID, "error", err)
		}

		middleware.SimulatedRepliesDelivered.WithLabelValues(peerID).Inc()

		if s.notifier != nil {
			_ = s.notifier.PublishUser(ctx, ownerID, notifications.EventDMMessage, map[string]any{
				"peer_id":    peerID,
				"message_id": msg.ID,
			})
		}
	})
}

// truncatePreview shortens body to the preview limit, appending an ellipsis
// when it was cut.
func truncatePreview(body string) string {
	runes := []rune(body)
	if len(runes) <= previewLimit {
		return body
	}
	return string(runes[:previewLimit]) + "…"
}
