package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campuscare-app/CampusCare/app/models"
)

// notificationRepository implements the NotificationRepository interface
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository instance
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) guard() error {
	if r.db == nil {
		return NewStoreError(KindConfig, errors.New("primary store not configured"))
	}
	return nil
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.guard(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return Classify(err)
	}
	return nil
}

// ListByRecipient retrieves notifications for a recipient, newest first.
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipient string) ([]models.Notification, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	var notifications []models.Notification
	if err := r.db.WithContext(ctx).Where("recipient = ?", recipient).Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, Classify(err)
	}
	return notifications, nil
}

// MarkAllRead marks every unread notification of a recipient as read and
// returns the number of rows touched.
func (r *notificationRepository) MarkAllRead(ctx context.Context, recipient string) (int64, error) {
	if err := r.guard(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient = ? AND read = ?", recipient, false).
		Update("read", true)
	if result.Error != nil {
		return 0, Classify(result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteByReport removes all notifications referencing a report (cascade step).
func (r *notificationRepository) DeleteByReport(ctx context.Context, reportID string) error {
	if err := r.guard(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("report_id = ?", reportID).Delete(&models.Notification{}).Error; err != nil {
		return Classify(err)
	}
	return nil
}
