package models

import "time"

// Template status values.
const (
	TemplateActive   = "ACTIVE"
	TemplateArchived = "ARCHIVED"
)

// InterviewTemplate is a reusable interview definition. It either carries its
// own ordered question list (TemplateQuestion copies) or just a QuestionCount,
// in which case that many questions are drawn from the catalog at binding time.
type InterviewTemplate struct {
	ID             string `gorm:"primaryKey;size:36"`
	OrganizationID string `gorm:"size:36;index;not null"`
	Title          string `gorm:"size:128;not null"`
	Description    string `gorm:"size:1024"`
	Status         string `gorm:"size:16;index;not null;default:'ACTIVE'"`
	QuestionCount  int    `gorm:"not null;default:0"`
	CreatedBy      string `gorm:"size:36"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TemplateQuestion is a value copy of a catalog question owned by a template.
type TemplateQuestion struct {
	ID          string `gorm:"primaryKey;size:36"`
	TemplateID  string `gorm:"size:36;index;not null"`
	Text        string `gorm:"size:2048;not null"`
	MaxDuration int    `gorm:"not null;default:0"`
	OrderIndex  int    `gorm:"not null"`
	CreatedAt   time.Time
}
