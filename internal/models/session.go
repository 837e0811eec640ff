package models

import "time"

// InterviewSession is one candidate's attempt. The access token is the only
// identifier the candidate ever sees; the internal id stays server-side.
// Sessions are never deleted, they are retained for audit and export.
type InterviewSession struct {
	ID             string  `gorm:"primaryKey;size:36"`
	OrganizationID string  `gorm:"size:36;index;not null"`
	TemplateID     *string `gorm:"size:36;index"`
	Title          string  `gorm:"size:128"`
	CandidateName  string  `gorm:"size:128"`
	CandidateEmail string  `gorm:"size:128;index;not null"`
	AccessToken    string  `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt      time.Time `gorm:"index;not null"`
	State          string    `gorm:"size:16;index;not null"`

	// Final decision, set once by a reviewer when the session is closed.
	Decision        string     `gorm:"size:16"`
	ReviewerSummary string     `gorm:"size:2048"`
	FinalScore      *float64
	DecidedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
