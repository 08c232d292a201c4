package server

import (
	"linkup/internal/models"
	"linkup/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// GetEventMessages handles GET /api/events/:id/messages
func (s *Server) GetEventMessages(c *fiber.Ctx) error {
	messages, err := s.chatService.GetMessages(c.Context(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// SendEventMessage handles POST /api/events/:id/messages
func (s *Server) SendEventMessage(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	eventID := c.Params("id")
	msg, err := s.chatService.AddMessage(c.Context(), eventID, currentUserID(c), req.Content)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if s.notifier != nil {
		_ = s.notifier.PublishEventChat(c.Context(), eventID, notifications.EventChatMessage, map[string]any{
			"message_id": msg.ID,
			"user_id":    msg.UserID,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

// DeleteEventMessage handles DELETE /api/events/:id/messages/:messageId
func (s *Server) DeleteEventMessage(c *fiber.Ctx) error {
	err := s.chatService.DeleteMessage(c.Context(), currentUserID(c), c.Params("messageId"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Message deleted"})
}
