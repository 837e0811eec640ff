package models

import "time"

// QuestionBank is one reusable question in the organization's catalog.
// Sessions never reference these rows directly; the binder copies the
// values it needs so later catalog edits cannot change a running interview.
type QuestionBank struct {
	ID             string `gorm:"primaryKey;size:36"`
	OrganizationID string `gorm:"size:36;index;not null"`
	Text           string `gorm:"size:2048;not null"`
	Category       string `gorm:"size:32;index"`
	MaxDuration    int    `gorm:"not null;default:300"` // seconds
	Difficulty     string `gorm:"size:16"`
	IsActive       bool   `gorm:"index;not null;default:true"`
	CreatedBy      string `gorm:"size:36"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
