package repository

import (
	"context"

	"foilctf/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification storage
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	AddRecipients(ctx context.Context, notificationID uint, userIDs []uint) error
	MarkPublished(ctx context.Context, notificationID uint) error
	ListForUser(ctx context.Context, userID uint, limit int) ([]models.Notification, error)
	CountUnpublished(ctx context.Context) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) AddRecipients(ctx context.Context, notificationID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]models.NotificationUser, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, models.NotificationUser{NotificationID: notificationID, UserID: id})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) MarkPublished(ctx context.Context, notificationID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_published", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListForUser returns the user's published notifications, newest first.
func (r *notificationRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []models.Notification
	if err := r.db.WithContext(ctx).
		Joins("JOIN notification_users nu ON nu.notification_id = notifications.id").
		Where("nu.user_id = ? AND notifications.is_published = ?", userID, true).
		Order("notifications.id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return out, nil
}

func (r *notificationRepository) CountUnpublished(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("is_published = ?", false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
