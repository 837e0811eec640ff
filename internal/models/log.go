package models

import "time"

// AuditLog records admin and reviewer actions for later inspection.
type AuditLog struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    *string `gorm:"size:36;index"`
	Method    string  `gorm:"size:10"`
	Path      string  `gorm:"size:255"`
	Action    string  `gorm:"size:2048"`
	IP        string  `gorm:"size:64"`
	UserAgent string  `gorm:"size:255"`
	CreatedAt time.Time
}
