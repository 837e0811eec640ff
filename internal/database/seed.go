package database

import (
	"fmt"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/config"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed ensures a default organization and admin account exist so the
// admin API is usable on a fresh database. It is idempotent.
func Seed(db *gorm.DB, cfg config.SeedConfig) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var org models.Organization
	err := db.Where("slug = ?", "default-org").First(&org).Error
	if err == gorm.ErrRecordNotFound {
		org = models.Organization{
			ID:   uuid.NewString(),
			Name: "Default Organization",
			Slug: "default-org",
		}
		if err = db.Create(&org).Error; err != nil {
			return fmt.Errorf("seed organization: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("seed organization: %w", err)
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("email = ?", cfg.AdminEmail).
		Count(&count).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		ID:             uuid.NewString(),
		Name:           "Admin",
		Email:          cfg.AdminEmail,
		PasswordHash:   string(hash),
		Role:           models.RoleOrgAdmin,
		OrganizationID: org.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
