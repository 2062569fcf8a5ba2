package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an audit/messaging record off the billing critical path.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountCode string    `gorm:"index" json:"account_code"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}
