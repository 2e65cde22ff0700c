package repository

import (
	"context"

	"github.com/campuscare-app/CampusCare/app/models"
)

// ReportStore is one persistence backend for reports. Implementations return
// classified *StoreError values so callers never inspect vendor error text.
type ReportStore interface {
	Name() string
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	List(ctx context.Context) ([]models.Report, error)
	ListByReporter(ctx context.Context, userID uint) ([]models.Report, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines the interface for report comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.ReportComment) error
	ListByReport(ctx context.Context, reportID string) ([]models.ReportComment, error)
	DeleteByReport(ctx context.Context, reportID string) error
}

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, recipient string) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, recipient string) (int64, error)
	DeleteByReport(ctx context.Context, reportID string) error
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByResetToken(token string) (*models.User, error)
	Update(user *models.User) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}
