package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusSubmitted  = "submitted"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

const (
	CategoryParking        = "parking"
	CategoryInfrastructure = "infrastructure"
	CategoryElectrical     = "electrical"
	CategorySanitation     = "sanitation"
	CategoryOther          = "other"
)

// Report is a user-filed campus issue. The status lifecycle is owned by
// administrators; reporters only ever create and delete their own reports.
type Report struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title         string    `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	Description   string    `gorm:"type:text;not null" json:"description" validate:"required,max=2000"`
	Category      string    `gorm:"type:varchar(50);not null" json:"category" validate:"required,oneof=parking infrastructure electrical sanitation other"`
	Location      string    `gorm:"type:varchar(200);not null" json:"location" validate:"required,max=200"`
	Status        string    `gorm:"type:varchar(20);default:'submitted';index" json:"status" validate:"omitempty,oneof=submitted in-progress resolved"`
	ImageURL      string    `gorm:"type:varchar(500);default:null" json:"image_url,omitempty"`
	ReportedBy    uint      `gorm:"index;not null" json:"reported_by"`
	ReporterName  string    `gorm:"type:varchar(150)" json:"reporter_name"`
	ReporterEmail string    `gorm:"type:varchar(200)" json:"reporter_email"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Report) Validate() error {
	v := validator.New()

	return v.Struct(r)
}

// BeforeCreate assigns the report identity and the initial status when the
// caller left them empty.
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = StatusSubmitted
	}
	return nil
}

// IsValidStatus reports whether s is one of the three lifecycle statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// IsValidCategory reports whether c is in the enumerated category set.
func IsValidCategory(c string) bool {
	switch c {
	case CategoryParking, CategoryInfrastructure, CategoryElectrical, CategorySanitation, CategoryOther:
		return true
	}
	return false
}

// statusTransitions is the explicit set of admin-triggered transitions:
// the forward path plus reversions for triage mistakes.
var statusTransitions = map[string][]string{
	StatusSubmitted:  {StatusInProgress, StatusResolved},
	StatusInProgress: {StatusResolved, StatusSubmitted},
	StatusResolved:   {StatusInProgress},
}

// CanTransition reports whether a report may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
