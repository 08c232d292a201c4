package server

import (
	"strings"

	"linkup/internal/models"
	"linkup/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/friends/requests/:userId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	callerID := currentUserID(c)
	receiverID := c.Params("userId")

	friendship, err := s.friendService.SendFriendRequest(c.Context(), callerID, receiverID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if s.notifier != nil && friendship.Status == models.FriendshipStatusPending {
		_ = s.notifier.PublishUser(c.Context(), receiverID, notifications.EventFriendRequest, map[string]any{
			"friendship_id": friendship.ID,
			"requester_id":  callerID,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(friendship)
}

// GetPendingRequests handles GET /api/friends/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.GetFriendRequests(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// AcceptFriendRequest handles POST /api/friends/requests/:requestId/accept.
// Accepting a request that was already resolved, or that is not addressed to
// the caller, reports changed=false rather than failing.
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	callerID := currentUserID(c)
	requestID := c.Params("requestId")

	changed, err := s.friendService.AcceptRequest(c.Context(), callerID, requestID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if changed && s.notifier != nil {
		if friendship, ferr := s.friendRepo.GetByID(c.Context(), requestID); ferr == nil {
			_ = s.notifier.PublishUser(c.Context(), friendship.RequesterID, notifications.EventFriendAccepted, map[string]any{
				"friendship_id": friendship.ID,
				"receiver_id":   callerID,
			})
		}
	}

	return c.JSON(fiber.Map{"changed": changed})
}

// DeclineFriendRequest handles POST /api/friends/requests/:requestId/decline
func (s *Server) DeclineFriendRequest(c *fiber.Ctx) error {
	changed, err := s.friendService.DeclineRequest(c.Context(), currentUserID(c), c.Params("requestId"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"changed": changed})
}

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.GetMyFriends(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"friends": friends})
}

// GetFriendshipStatuses handles GET /api/friends/statuses?ids=a,b,c and
// returns a map of candidate ID to friendship status. Candidates with no
// relationship are absent from the map.
func (s *Server) GetFriendshipStatuses(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("ids"))
	if raw == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Query parameter ids is required"))
	}

	ids := make([]string, 0)
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	statuses, err := s.friendService.GetFriendshipStatuses(c.Context(), currentUserID(c), ids)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"statuses": statuses})
}
