package models

import "time"

// User roles. Candidates are not users; they only hold a session token.
const (
	RoleOrgAdmin = "ORG_ADMIN"
	RoleReviewer = "REVIEWER"
)

// User represents an admin or reviewer account.
type User struct {
	ID             string `gorm:"primaryKey;size:36"`
	Name           string `gorm:"size:128"`
	Email          string `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash   string `gorm:"size:255;not null"`
	Role           string `gorm:"size:16;not null"`
	OrganizationID string `gorm:"size:36;index;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
