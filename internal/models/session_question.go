package models

import "time"

// SessionQuestion status values. Status is the only field that ever changes
// after creation, and it flips exactly once.
const (
	QuestionPending  = "PENDING"
	QuestionAnswered = "ANSWERED"
)

// SessionQuestion binds one question to one ordinal position in one session.
// Exactly one of TemplateQuestionID / QuestionCopyID is set; which one is the
// dispatch key for content resolution.
type SessionQuestion struct {
	ID         string `gorm:"primaryKey;size:36"`
	SessionID  string `gorm:"size:36;index;not null"`
	OrderIndex int    `gorm:"not null"`
	Status     string `gorm:"size:16;index;not null;default:'PENDING'"`

	TemplateQuestionID *string `gorm:"size:36"`
	QuestionCopyID     *string `gorm:"size:36"`

	CreatedAt time.Time
}

// QuestionCopy is a session-owned value copy of a catalog question,
// materialized at binding time for random and personalized sessions.
type QuestionCopy struct {
	ID               string `gorm:"primaryKey;size:36"`
	SessionID        string `gorm:"size:36;index;not null"`
	SourceQuestionID string `gorm:"size:36"`
	Text             string `gorm:"size:2048;not null"`
	Category         string `gorm:"size:32"`
	MaxDuration      int    `gorm:"not null;default:0"`
	CreatedAt        time.Time
}
