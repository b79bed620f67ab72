package models

import (
	"time"

	"yieldvault/internal/uuid"

	"gorm.io/gorm"
)

// TransactionLog records one handled API request. Rows are append-only and
// leave the table only through the retention purge.
type TransactionLog struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       *string   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Email        *string   `gorm:"size:255;index" json:"email,omitempty"`
	Endpoint     string    `gorm:"size:255;not null;index" json:"endpoint"`
	HTTPMethod   string    `gorm:"column:http_method;size:10;not null" json:"http_method"`
	StatusCode   int       `gorm:"not null;index" json:"status_code"`
	ErrorMessage *string   `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate generates the ID.
func (l *TransactionLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New()
	}
	return nil
}

// IsError reports whether the request ended with a 4xx or 5xx status.
func (l *TransactionLog) IsError() bool {
	return l.StatusCode >= 400
}
