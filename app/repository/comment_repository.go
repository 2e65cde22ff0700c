package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campuscare-app/CampusCare/app/models"
)

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) guard() error {
	if r.db == nil {
		return NewStoreError(KindConfig, errors.New("primary store not configured"))
	}
	return nil
}

// Create inserts a new comment. Comments are immutable afterwards.
func (r *commentRepository) Create(ctx context.Context, comment *models.ReportComment) error {
	if err := r.guard(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return Classify(err)
	}
	return nil
}

// ListByReport retrieves all comments for a report, oldest first.
func (r *commentRepository) ListByReport(ctx context.Context, reportID string) ([]models.ReportComment, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	var comments []models.ReportComment
	if err := r.db.WithContext(ctx).Where("report_id = ?", reportID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, Classify(err)
	}
	return comments, nil
}

// DeleteByReport removes all comments of a report (cascade step of report deletion).
func (r *commentRepository) DeleteByReport(ctx context.Context, reportID string) error {
	if err := r.guard(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("report_id = ?", reportID).Delete(&models.ReportComment{}).Error; err != nil {
		return Classify(err)
	}
	return nil
}
