package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportComment is a remark attached to a report. Comments are immutable:
// there is no edit or delete, they only disappear when their report does.
type ReportComment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ReportID  string    `gorm:"type:varchar(36);index;not null" json:"report_id"`
	Content   string    `gorm:"type:text;not null" json:"content" validate:"required,min=1"`
	UserID    uint      `gorm:"index" json:"user_id"`
	UserName  string    `gorm:"type:varchar(150)" json:"user_name"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *ReportComment) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

func (c *ReportComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
