package repository

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"

	"github.com/campuscare-app/CampusCare/app/models"
)

// FallbackReportStore tries an explicit ordered list of backends. Reads and
// destructive writes fall through to the next provider on failure; creates go
// to the primary only, so a misconfigured schema surfaces to the operator
// instead of silently landing records in the fallback store.
type FallbackReportStore struct {
	providers []ReportStore
}

// NewFallbackReportStore builds a store trying the given providers in order.
func NewFallbackReportStore(providers ...ReportStore) *FallbackReportStore {
	return &FallbackReportStore{providers: providers}
}

func (f *FallbackReportStore) Name() string {
	return "fallback"
}

func (f *FallbackReportStore) primary() (ReportStore, error) {
	if len(f.providers) == 0 {
		return nil, NewStoreError(KindConfig, errors.New("no report store configured"))
	}
	return f.providers[0], nil
}

// Create writes to the primary backend only.
func (f *FallbackReportStore) Create(ctx context.Context, report *models.Report) error {
	primary, err := f.primary()
	if err != nil {
		return err
	}
	return primary.Create(ctx, report)
}

// GetByID tries each backend in order. A record counts as absent only when
// every backend reported not-found.
func (f *FallbackReportStore) GetByID(ctx context.Context, id string) (*models.Report, error) {
	var firstErr error
	for _, p := range f.providers {
		report, err := p.GetByID(ctx, id)
		if err == nil {
			return report, nil
		}
		if KindOf(err) != KindNotFound && firstErr == nil {
			firstErr = err
		}
		log.Debugf("[ReportStore] %s read failed for %s: %v", p.Name(), id, err)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, NewStoreError(KindNotFound, errors.New("report not found in any backend"))
}

func (f *FallbackReportStore) List(ctx context.Context) ([]models.Report, error) {
	var firstErr error
	for _, p := range f.providers {
		reports, err := p.List(ctx)
		if err == nil {
			return reports, nil
		}
		if firstErr == nil {
			firstErr = err
		}
		log.Warnf("[ReportStore] %s list failed: %v", p.Name(), err)
	}
	if firstErr == nil {
		firstErr = NewStoreError(KindConfig, errors.New("no report store configured"))
	}
	return nil, firstErr
}

func (f *FallbackReportStore) ListByReporter(ctx context.Context, userID uint) ([]models.Report, error) {
	var firstErr error
	for _, p := range f.providers {
		reports, err := p.ListByReporter(ctx, userID)
		if err == nil {
			return reports, nil
		}
		if firstErr == nil {
			firstErr = err
		}
		log.Warnf("[ReportStore] %s list failed for reporter %d: %v", p.Name(), userID, err)
	}
	if firstErr == nil {
		firstErr = NewStoreError(KindConfig, errors.New("no report store configured"))
	}
	return nil, firstErr
}

// UpdateStatus writes to the first backend that accepts it.
func (f *FallbackReportStore) UpdateStatus(ctx context.Context, id string, status string) error {
	return f.writeThrough(ctx, "status update", func(p ReportStore) error {
		return p.UpdateStatus(ctx, id, status)
	})
}

// Delete removes the report from the first backend that accepts it.
func (f *FallbackReportStore) Delete(ctx context.Context, id string) error {
	return f.writeThrough(ctx, "delete", func(p ReportStore) error {
		return p.Delete(ctx, id)
	})
}

func (f *FallbackReportStore) writeThrough(ctx context.Context, op string, write func(ReportStore) error) error {
	var firstErr error
	for _, p := range f.providers {
		err := write(p)
		if err == nil {
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
		log.Warnf("[ReportStore] %s %s failed: %v", p.Name(), op, err)
	}
	if firstErr == nil {
		firstErr = NewStoreError(KindConfig, errors.New("no report store configured"))
	}
	return firstErr
}
