package server

import (
	"linkup/internal/models"
	"linkup/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// GetChats handles GET /api/chats
func (s *Server) GetChats(c *fiber.Ctx) error {
	chats, err := s.dmService.ListChats(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"chats": chats})
}

// GetOrCreateChat handles GET /api/chats/:peerId
func (s *Server) GetOrCreateChat(c *fiber.Ctx) error {
	chat, err := s.dmService.GetOrCreateChat(c.Context(), currentUserID(c), c.Params("peerId"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(chat)
}

// GetChatMessages handles GET /api/chats/:peerId/messages
func (s *Server) GetChatMessages(c *fiber.Ctx) error {
	messages, err := s.dmService.GetChatMessages(c.Context(), currentUserID(c), c.Params("peerId"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// SendChatMessage handles POST /api/chats/:peerId/messages
func (s *Server) SendChatMessage(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	callerID := currentUserID(c)
	peerID := c.Params("peerId")

	msg, err := s.dmService.SendMessage(c.Context(), callerID, peerID, req.Content)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if s.notifier != nil {
		_ = s.notifier.PublishUser(c.Context(), peerID, notifications.EventDMMessage, map[string]any{
			"peer_id":    callerID,
			"message_id": msg.ID,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}
