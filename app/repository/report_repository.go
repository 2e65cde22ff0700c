package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/campuscare-app/CampusCare/app/models"
)

// reportRepository implements ReportStore on the primary relational backend.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a report store backed by the primary database.
func NewReportRepository(db *gorm.DB) ReportStore {
	return &reportRepository{db: db}
}

func (r *reportRepository) Name() string {
	return "postgres"
}

func (r *reportRepository) guard() error {
	if r.db == nil {
		return NewStoreError(KindConfig, errors.New("primary store not configured"))
	}
	return nil
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if err := r.guard(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return Classify(err)
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	var report models.Report
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, Classify(err)
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context) ([]models.Report, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	var reports []models.Report
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, Classify(err)
	}
	return reports, nil
}

func (r *reportRepository) ListByReporter(ctx context.Context, userID uint) ([]models.Report, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	var reports []models.Report
	if err := r.db.WithContext(ctx).Where("reported_by = ?", userID).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, Classify(err)
	}
	return reports, nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if err := r.guard(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.Report{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return NewStoreError(KindNotFound, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	if err := r.guard(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Report{})
	if result.Error != nil {
		return Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return NewStoreError(KindNotFound, gorm.ErrRecordNotFound)
	}
	return nil
}
