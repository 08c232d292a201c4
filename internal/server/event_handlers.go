package server

import (
	"strconv"

	"linkup/internal/models"
	"linkup/internal/notifications"
	"linkup/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateEvent handles POST /api/events
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	var input service.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	event, err := s.eventService.CreateEvent(c.Context(), currentUserID(c), input)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// GetEvents handles GET /api/events?limit=&offset=
func (s *Server) GetEvents(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	events, err := s.eventService.ListEvents(c.Context(), limit, offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"events": events})
}

// GetEvent handles GET /api/events/:id
func (s *Server) GetEvent(c *fiber.Ctx) error {
	event, err := s.eventService.GetEvent(c.Context(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(event)
}

// UpdateEvent handles PUT /api/events/:id
func (s *Server) UpdateEvent(c *fiber.Ctx) error {
	var input service.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	event, err := s.eventService.UpdateEvent(c.Context(), currentUserID(c), c.Params("id"), input)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(event)
}

// DeleteEvent handles DELETE /api/events/:id
func (s *Server) DeleteEvent(c *fiber.Ctx) error {
	if err := s.eventService.DeleteEvent(c.Context(), currentUserID(c), c.Params("id")); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Event deleted"})
}

// JoinEvent handles POST /api/events/:id/join and returns the resulting
// participation status: approved for auto-accept events, pending otherwise.
func (s *Server) JoinEvent(c *fiber.Ctx) error {
	callerID := currentUserID(c)
	eventID := c.Params("id")

	status, err := s.eventService.JoinEvent(c.Context(), eventID, callerID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if s.notifier != nil && status == models.ParticipantStatusPending {
		if event, gerr := s.eventService.GetEvent(c.Context(), eventID); gerr == nil {
			_ = s.notifier.PublishUser(c.Context(), event.CreatorID, notifications.EventJoinRequest, map[string]any{
				"event_id": eventID,
				"user_id":  callerID,
			})
		}
	}

	return c.JSON(fiber.Map{"status": status})
}

// LeaveEvent handles POST /api/events/:id/leave
func (s *Server) LeaveEvent(c *fiber.Ctx) error {
	if err := s.eventService.LeaveEvent(c.Context(), c.Params("id"), currentUserID(c)); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Left event"})
}

// GetParticipants handles GET /api/events/:id/participants and partitions the
// roster into approved attendees and pending join requests.
func (s *Server) GetParticipants(c *fiber.Ctx) error {
	participants, err := s.eventService.GetParticipants(c.Context(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	going := make([]models.ParticipantWithUser, 0, len(participants))
	requests := make([]models.ParticipantWithUser, 0)
	for _, p := range participants {
		switch p.Status {
		case models.ParticipantStatusApproved:
			going = append(going, p)
		case models.ParticipantStatusPending:
			requests = append(requests, p)
		}
	}

	return c.JSON(fiber.Map{
		"going":    going,
		"requests": requests,
	})
}

// UpdateParticipantStatus handles PUT /api/events/:id/participants/:userId
func (s *Server) UpdateParticipantStatus(c *fiber.Ctx) error {
	var req struct {
		Status models.ParticipantStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	eventID := c.Params("id")
	participantID := c.Params("userId")

	err := s.eventService.UpdateParticipantStatus(c.Context(), currentUserID(c), eventID, participantID, req.Status)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if s.notifier != nil {
		_ = s.notifier.PublishUser(c.Context(), participantID, notifications.EventParticipantStatus, map[string]any{
			"event_id": eventID,
			"status":   req.Status,
		})
	}

	return c.JSON(fiber.Map{"status": req.Status})
}
