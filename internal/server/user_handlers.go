package server

import (
	"strings"

	"linkup/internal/models"
	"linkup/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me. Fields absent from the body are
// left untouched; email and password are not editable here.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Name                 *string                 `json:"name"`
		AvatarURL            *string                 `json:"avatar_url"`
		Bio                  *string                 `json:"bio"`
		Age                  *int                    `json:"age"`
		Gender               *string                 `json:"gender"`
		Vibe                 *string                 `json:"vibe"`
		Languages            *models.StringList      `json:"languages"`
		Interests            *models.StringList      `json:"interests"`
		ConversationStarters *models.StringList      `json:"conversation_starters"`
		FavoriteSpots        *models.StringList      `json:"favorite_spots"`
		Privacy              *models.PrivacySettings `json:"privacy"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validation.ValidateName(name); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.Name = name
	}
	if req.Bio != nil {
		if err := validation.ValidateBio(*req.Bio); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.Bio = *req.Bio
	}
	if req.Age != nil {
		if err := validation.ValidateAge(*req.Age); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.Age = *req.Age
	}
	if req.Vibe != nil {
		if err := validation.ValidateVibe(*req.Vibe); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.Vibe = strings.ToLower(*req.Vibe)
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Languages != nil {
		user.Languages = *req.Languages
	}
	if req.Interests != nil {
		user.Interests = *req.Interests
	}
	if req.ConversationStarters != nil {
		user.ConversationStarters = *req.ConversationStarters
	}
	if req.FavoriteSpots != nil {
		user.FavoriteSpots = *req.FavoriteSpots
	}
	if req.Privacy != nil {
		user.Privacy = *req.Privacy
		// Toggling ghost mode through privacy settings clears the stored
		// position, same as the dedicated presence endpoint.
		user.IsGhost = req.Privacy.GhostMode
		if user.IsGhost {
			user.Latitude = nil
			user.Longitude = nil
		}
	}

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id. Other users see the public
// profile; coordinates are omitted unless the target shares exact locations.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	targetID := c.Params("id")

	user, err := s.userRepo.GetByID(c.Context(), targetID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if targetID == currentUserID(c) {
		return c.JSON(user)
	}

	// Strip private fields for other viewers.
	user.Email = ""
	if user.IsGhost || !user.Privacy.ShowExactLocation {
		user.Latitude = nil
		user.Longitude = nil
	}
	return c.JSON(user)
}

// SearchUsers handles GET /api/users/search?q=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Query parameter q is required"))
	}

	results, err := s.friendService.SearchUsers(c.Context(), currentUserID(c), query)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"users": results})
}
