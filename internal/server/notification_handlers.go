package server

import (
	"savora/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications. Listing the inbox marks
// every notification in it as read.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	notifications, err := s.notificationService.List(c.Context(), currentUserID(c), page.Limit, page.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(notifications)
}

// ClearNotifications handles DELETE /api/notifications
func (s *Server) ClearNotifications(c *fiber.Ctx) error {
	if err := s.notificationService.Clear(c.Context(), currentUserID(c)); err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Notifications cleared"})
}
