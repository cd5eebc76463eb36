package service

import (
	"context"

	"foilctf/internal/models"
	"foilctf/internal/observability"
	"foilctf/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// NotificationService reads the notifications fanned out by the other
// services.
type NotificationService struct {
	store *repository.Store
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(store *repository.Store) *NotificationService {
	return &NotificationService{store: store}
}

// Inbox returns up to limit published notifications for username, newest
// first.
func (s *NotificationService) Inbox(ctx context.Context, username string, limit int) (list []models.Notification, err error) {
	span, ctx := observability.StartSpan(ctx, "NotificationService.Inbox", attribute.String("user.name", username))
	defer span.Finish(&err)

	user, err := s.store.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}
	return s.store.Notifications.ListForUser(ctx, user.ID, limit)
}
