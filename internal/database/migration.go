package database

import (
	"fmt"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.QuestionBank{},
		&models.InterviewTemplate{},
		&models.TemplateQuestion{},
		&models.InterviewSession{},
		&models.QuestionCopy{},
		&models.SessionQuestion{},
		&models.InterviewResponse{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
