package repository

import (
	"sync"

	"github.com/campuscare-app/CampusCare/internal/pkg/database"
	"github.com/campuscare-app/CampusCare/internal/pkg/docstore"
)

// RepositoryFactory wires repositories to the configured backends.
type RepositoryFactory struct {
	mu sync.Mutex

	reportStore      ReportStore
	commentRepo      CommentRepository
	notificationRepo NotificationRepository
	userRepo         UserRepository
}

var (
	globalFactory *RepositoryFactory
	factoryOnce   sync.Once
)

// GetGlobalFactory returns the process-wide repository factory.
func GetGlobalFactory() *RepositoryFactory {
	factoryOnce.Do(func() {
		globalFactory = &RepositoryFactory{}
	})
	return globalFactory
}

// GetReportStore returns the report store: primary relational backend first,
// document-store fallback second.
func (f *RepositoryFactory) GetReportStore() ReportStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reportStore == nil {
		providers := []ReportStore{NewReportRepository(database.GetDB())}
		if collection := docstore.GetCollection("reports"); collection != nil {
			providers = append(providers, NewReportDocStore(collection))
		}
		f.reportStore = NewFallbackReportStore(providers...)
	}
	return f.reportStore
}

// GetCommentRepository returns the comment repository.
func (f *RepositoryFactory) GetCommentRepository() CommentRepository {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commentRepo == nil {
		f.commentRepo = NewCommentRepository(database.GetDB())
	}
	return f.commentRepo
}

// GetNotificationRepository returns the notification repository.
func (f *RepositoryFactory) GetNotificationRepository() NotificationRepository {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.notificationRepo == nil {
		f.notificationRepo = NewNotificationRepository(database.GetDB())
	}
	return f.notificationRepo
}

// GetUserRepository returns the user repository.
func (f *RepositoryFactory) GetUserRepository() UserRepository {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userRepo == nil {
		f.userRepo = NewUserRepository(database.GetDB())
	}
	return f.userRepo
}
