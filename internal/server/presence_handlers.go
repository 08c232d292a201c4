package server

import (
	"linkup/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNearbyUsers handles GET /api/presence/nearby
func (s *Server) GetNearbyUsers(c *fiber.Ctx) error {
	users, err := s.presenceService.GetNearbyUsers(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// UpdateMyLocation handles POST /api/presence/location
func (s *Server) UpdateMyLocation(c *fiber.Ctx) error {
	var req struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.presenceService.UpdateMyLocation(c.Context(), currentUserID(c), req.Lat, req.Lng); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Location updated"})
}

// SetGhostMode handles POST /api/presence/ghost
func (s *Server) SetGhostMode(c *fiber.Ctx) error {
	var req struct {
		Ghost bool `json:"ghost"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.presenceService.GoGhost(c.Context(), currentUserID(c), req.Ghost); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"ghost": req.Ghost})
}
