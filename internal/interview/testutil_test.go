package interview

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/config"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a throwaway sqlite database with the full schema migrated.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Organization{},
		&models.QuestionBank{},
		&models.InterviewTemplate{},
		&models.TemplateQuestion{},
		&models.InterviewSession{},
		&models.QuestionCopy{},
		&models.SessionQuestion{},
		&models.InterviewResponse{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func testService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	return NewService(db, config.SessionConfig{
		RandomQuestionCount: 3,
		RandomExpireHours:   24,
		TemplateExpireHours: 48,
	})
}

// seedBank inserts n active catalog questions for the organization and
// returns them in insertion order.
func seedBank(t *testing.T, db *gorm.DB, orgID string, n int) []models.QuestionBank {
	t.Helper()

	questions := make([]models.QuestionBank, 0, n)
	for i := 0; i < n; i++ {
		q := models.QuestionBank{
			ID:             uuid.NewString(),
			OrganizationID: orgID,
			Text:           "Tell me about project number " + uuid.NewString()[:8],
			Category:       "general",
			MaxDuration:    120,
			IsActive:       true,
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("seed question: %v", err)
		}
		questions = append(questions, q)
	}
	return questions
}

// seedTemplate inserts an active template carrying its own ordered questions.
func seedTemplate(t *testing.T, db *gorm.DB, orgID string, questionTexts []string) models.InterviewTemplate {
	t.Helper()

	tmpl := models.InterviewTemplate{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Title:          "Backend Engineer Screen",
		Status:         models.TemplateActive,
	}
	if err := db.Create(&tmpl).Error; err != nil {
		t.Fatalf("seed template: %v", err)
	}
	for i, text := range questionTexts {
		tq := models.TemplateQuestion{
			ID:          uuid.NewString(),
			TemplateID:  tmpl.ID,
			Text:        text,
			MaxDuration: 180,
			OrderIndex:  i,
		}
		if err := db.Create(&tq).Error; err != nil {
			t.Fatalf("seed template question: %v", err)
		}
	}
	return tmpl
}

// sessionQuestions loads a session's question slots ordered by position.
func sessionQuestions(t *testing.T, db *gorm.DB, sessionID string) []models.SessionQuestion {
	t.Helper()

	var sqs []models.SessionQuestion
	if err := db.Where("session_id = ?", sessionID).Order("order_index ASC").Find(&sqs).Error; err != nil {
		t.Fatalf("load session questions: %v", err)
	}
	return sqs
}

func expireSession(t *testing.T, db *gorm.DB, sessionID string) {
	t.Helper()
	err := db.Model(&models.InterviewSession{}).
		Where("id = ?", sessionID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error
	if err != nil {
		t.Fatalf("expire session: %v", err)
	}
}
