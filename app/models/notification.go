package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationNewReport    = "new_report"
	NotificationStatusUpdate = "status_update"
	NotificationResolved     = "resolved"
	NotificationComment      = "comment"
)

// RecipientAdmin is the literal role token addressing the admin inbox.
// Every other recipient value is a reporter user id in decimal form.
const RecipientAdmin = "admin"

// Notification is a best-effort side-channel message. Insert failures are
// logged and swallowed, never surfaced to the user who triggered the event.
type Notification struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Recipient string    `gorm:"type:varchar(50);index;not null" json:"recipient"`
	Type      string    `gorm:"type:varchar(50)" json:"type" validate:"oneof=new_report status_update resolved comment"`
	Title     string    `gorm:"type:varchar(250)" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Read      bool      `gorm:"default:false" json:"read"`
	ReportID  string    `gorm:"type:varchar(36);index" json:"report_id,omitempty"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
