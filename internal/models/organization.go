package models

import "time"

// Organization owns the question catalog, templates and reviewer accounts.
type Organization struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:128;not null"`
	Slug      string `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
