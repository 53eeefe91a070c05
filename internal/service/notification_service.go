package service

import (
	"context"

	"savora/internal/models"
	"savora/internal/repository"
)

// NotificationService exposes a user's notification inbox.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the user's notifications, newest first, and marks the whole
// inbox read. The returned snapshot still shows the pre-read flags.
func (s *NotificationService) List(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}
	return notifications, nil
}

// Clear deletes every notification addressed to the user.
func (s *NotificationService) Clear(ctx context.Context, userID uint) error {
	return s.notificationRepo.DeleteForUser(ctx, userID)
}
