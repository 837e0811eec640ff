package review

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/interview"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrResponseNotFound = errors.New("response not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotSubmitted     = errors.New("session is not awaiting review")
)

// Service covers the reviewer surface: score overrides and final decisions.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Override sets the reviewer's score and notes on a response. AI fields are
// never touched; the override works no matter what state the pipeline left
// the response in.
func (s *Service) Override(responseID string, score *float64, notes string) (*models.InterviewResponse, error) {
	var resp models.InterviewResponse
	err := s.DB.Where("id = ?", responseID).First(&resp).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrResponseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load response: %w", err)
	}

	now := time.Now()
	err = s.DB.Model(&resp).Updates(map[string]interface{}{
		"reviewer_score": score,
		"reviewer_notes": notes,
		"reviewed_at":    now,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("save review: %w", err)
	}

	resp.ReviewerScore = score
	resp.ReviewerNotes = notes
	resp.ReviewedAt = &now
	return &resp, nil
}

// Finalize records the final decision on a SUBMITTED session and moves it to
// REVIEWED. The score is rounded for the decision record.
func (s *Service) Finalize(sessionID, decision, summary string, score *float64) (*models.InterviewSession, error) {
	var sess models.InterviewSession
	err := s.DB.Where("id = ?", sessionID).First(&sess).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess.State != interview.StateSubmitted {
		return nil, ErrNotSubmitted
	}

	var rounded *float64
	if score != nil {
		r := math.Round(*score)
		rounded = &r
	}

	now := time.Now()
	res := s.DB.Model(&models.InterviewSession{}).
		Where("id = ? AND state = ?", sessionID, interview.StateSubmitted).
		Updates(map[string]interface{}{
			"state":            interview.StateReviewed,
			"decision":         decision,
			"reviewer_summary": summary,
			"final_score":      rounded,
			"decided_at":       now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("finalize session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// another reviewer closed it first
		return nil, ErrNotSubmitted
	}

	sess.State = interview.StateReviewed
	sess.Decision = decision
	sess.ReviewerSummary = summary
	sess.FinalScore = rounded
	sess.DecidedAt = &now
	return &sess, nil
}
