package interview

import (
	"fmt"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/config"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

	"gorm.io/gorm"
)

// Service owns the session lifecycle: question binding at creation,
// progression through the bound set, and response recording.
type Service struct {
	DB *gorm.DB

	PublicOrgID string
	RandomCount int
	RandomTTL   time.Duration
	TemplateTTL time.Duration
}

// NewService builds the session service from configuration.
func NewService(db *gorm.DB, cfg config.SessionConfig) *Service {
	count := cfg.RandomQuestionCount
	if count <= 0 {
		count = 5
	}
	randomTTL := time.Duration(cfg.RandomExpireHours) * time.Hour
	if randomTTL <= 0 {
		randomTTL = 24 * time.Hour
	}
	templateTTL := time.Duration(cfg.TemplateExpireHours) * time.Hour
	if templateTTL <= 0 {
		templateTTL = 48 * time.Hour
	}
	return &Service{
		DB:          db,
		PublicOrgID: cfg.PublicOrgID,
		RandomCount: count,
		RandomTTL:   randomTTL,
		TemplateTTL: templateTTL,
	}
}

// SessionByToken loads a session by its candidate-facing access token.
func (s *Service) SessionByToken(token string) (*models.InterviewSession, error) {
	var sess models.InterviewSession
	err := s.DB.Where("access_token = ?", token).First(&sess).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &sess, nil
}

// gate rejects candidate operations on expired or closed sessions.
// Expiry is checked independently of state.
func gate(sess *models.InterviewSession, now time.Time) error {
	if now.After(sess.ExpiresAt) {
		return ErrSessionExpired
	}
	if sess.State == StateSubmitted || sess.State == StateReviewed {
		return ErrAlreadySubmitted
	}
	return nil
}

// Submit closes the session for candidate actions. Submitting is allowed
// even when questions remain unanswered.
func (s *Service) Submit(token string) error {
	sess, err := s.SessionByToken(token)
	if err != nil {
		return err
	}
	if err := gate(sess, time.Now()); err != nil {
		return err
	}

	// A candidate may submit without ever asking for a question; walk the
	// INVITED session through IN_PROGRESS so no state is skipped.
	if sess.State == StateInvited {
		if _, err := transition(s.DB, sess.ID, StateInvited, StateInProgress); err != nil {
			return err
		}
		sess.State = StateInProgress
	}

	moved, err := transition(s.DB, sess.ID, StateInProgress, StateSubmitted)
	if err != nil {
		return err
	}
	if !moved {
		// lost the race to another submit
		return ErrAlreadySubmitted
	}
	return nil
}
