package models

import "time"

// Response processing status values. PENDING and PROCESSING are transient;
// the evaluation pipeline guarantees every response ends at DONE or FAILED.
const (
	ResponsePending    = "PENDING"
	ResponseProcessing = "PROCESSING"
	ResponseDone       = "DONE"
	ResponseFailed     = "FAILED"
)

// InterviewResponse is the single submission for one session question.
// The unique index on SessionQuestionID enforces the one-to-one relation;
// duplicate uploads degrade to reads of the existing row.
//
// AI fields (Transcript, AIScore, AIFeedback, ErrorMessage) are written only
// by the evaluation pipeline; reviewer fields only by a reviewer. The two
// paths never touch each other's columns.
type InterviewResponse struct {
	ID                string `gorm:"primaryKey;size:36"`
	SessionID         string `gorm:"size:36;index;not null"`
	SessionQuestionID string `gorm:"size:36;uniqueIndex;not null"`
	VideoURL          string `gorm:"size:255;not null"`
	Status            string `gorm:"size:16;index;not null;default:'PENDING'"`

	Transcript   string `gorm:"type:text"`
	AIScore      *float64
	AIFeedback   string `gorm:"type:text"`
	ErrorMessage string `gorm:"size:1024"`

	ReviewerScore *float64
	ReviewerNotes string `gorm:"size:2048"`
	ReviewedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
