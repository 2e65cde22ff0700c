package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuscare-app/CampusCare/app/models"
)

// reportDoc mirrors models.Report in the document store's camelCase naming.
type reportDoc struct {
	ID            string    `bson:"_id"`
	Title         string    `bson:"title"`
	Description   string    `bson:"description"`
	Category      string    `bson:"category"`
	Location      string    `bson:"location"`
	Status        string    `bson:"status"`
	ImageURL      string    `bson:"imageUrl,omitempty"`
	ReportedBy    uint      `bson:"reportedBy"`
	ReporterName  string    `bson:"reporterName"`
	ReporterEmail string    `bson:"reporterEmail"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

func toReportDoc(r *models.Report) reportDoc {
	return reportDoc{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Category:      r.Category,
		Location:      r.Location,
		Status:        r.Status,
		ImageURL:      r.ImageURL,
		ReportedBy:    r.ReportedBy,
		ReporterName:  r.ReporterName,
		ReporterEmail: r.ReporterEmail,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (d reportDoc) toModel() models.Report {
	return models.Report{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Category:      d.Category,
		Location:      d.Location,
		Status:        d.Status,
		ImageURL:      d.ImageURL,
		ReportedBy:    d.ReportedBy,
		ReporterName:  d.ReporterName,
		ReporterEmail: d.ReporterEmail,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// reportDocStore implements ReportStore on the secondary document backend.
type reportDocStore struct {
	collection *mongo.Collection
}

// NewReportDocStore creates a report store backed by the document database.
func NewReportDocStore(collection *mongo.Collection) ReportStore {
	return &reportDocStore{collection: collection}
}

func (s *reportDocStore) Name() string {
	return "mongo"
}

func (s *reportDocStore) guard() error {
	if s.collection == nil {
		return NewStoreError(KindConfig, errors.New("fallback store not configured"))
	}
	return nil
}

func (s *reportDocStore) Create(ctx context.Context, report *models.Report) error {
	if err := s.guard(); err != nil {
		return err
	}
	if _, err := s.collection.InsertOne(ctx, toReportDoc(report)); err != nil {
		return Classify(err)
	}
	return nil
}

func (s *reportDocStore) GetByID(ctx context.Context, id string) (*models.Report, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	var doc reportDoc
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, Classify(err)
	}
	report := doc.toModel()
	return &report, nil
}

func (s *reportDocStore) List(ctx context.Context) ([]models.Report, error) {
	return s.find(ctx, bson.M{})
}

func (s *reportDocStore) ListByReporter(ctx context.Context, userID uint) ([]models.Report, error) {
	return s.find(ctx, bson.M{"reportedBy": userID})
}

func (s *reportDocStore) find(ctx context.Context, filter bson.M) ([]models.Report, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, Classify(err)
	}
	defer cursor.Close(ctx)

	var docs []reportDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, Classify(err)
	}

	reports := make([]models.Report, 0, len(docs))
	for _, doc := range docs {
		reports = append(reports, doc.toModel())
	}
	return reports, nil
}

func (s *reportDocStore) UpdateStatus(ctx context.Context, id string, status string) error {
	if err := s.guard(); err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return Classify(err)
	}
	if result.MatchedCount == 0 {
		return NewStoreError(KindNotFound, mongo.ErrNoDocuments)
	}
	return nil
}

func (s *reportDocStore) Delete(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return Classify(err)
	}
	if result.DeletedCount == 0 {
		return NewStoreError(KindNotFound, mongo.ErrNoDocuments)
	}
	return nil
}
