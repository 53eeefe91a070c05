package server

import (
	"savora/internal/models"
	"savora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleFollow handles POST /api/users/:id/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.userService.ToggleFollow(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{"following": following})
}

// GetUserProfile handles GET /api/users/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userService.GetProfile(c.Context(), username)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		FullName     *string `json:"full_name"`
		Bio          *string `json:"bio"`
		Link         *string `json:"link"`
		ProfileImage *string `json:"profile_image"`
		CoverImage   *string `json:"cover_image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), currentUserID(c), service.UpdateProfileInput{
		FullName:     req.FullName,
		Bio:          req.Bio,
		Link:         req.Link,
		ProfileImage: req.ProfileImage,
		CoverImage:   req.CoverImage,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(user)
}
