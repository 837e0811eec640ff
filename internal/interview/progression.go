package interview

import (
	"fmt"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

	"gorm.io/gorm"
)

// NextQuestion is the candidate-facing view of the next unanswered slot.
// Position counts answered questions, not order indices, so it stays correct
// even if a future change lets candidates skip ahead.
type NextQuestion struct {
	SessionQuestionID string `json:"session_question_id"`
	Text              string `json:"text"`
	MaxDuration       int    `json:"max_duration"`
	Position          int    `json:"position"`
	Total             int    `json:"total"`
}

// Next resolves the first unanswered question for the session behind the
// token. A nil result with nil error means the interview is complete.
//
// Reading the next question while the session is still INVITED moves it to
// IN_PROGRESS first; that auto-transition is part of this contract, not a
// hidden side effect.
func (s *Service) Next(token string) (*NextQuestion, error) {
	sess, err := s.SessionByToken(token)
	if err != nil {
		return nil, err
	}
	if err := gate(sess, time.Now()); err != nil {
		return nil, err
	}

	if sess.State == StateInvited {
		// a concurrent reader may have flipped it already; that is fine
		if _, err := transition(s.DB, sess.ID, StateInvited, StateInProgress); err != nil {
			return nil, err
		}
	}

	var sq models.SessionQuestion
	err = s.DB.Where("session_id = ? AND status = ?", sess.ID, models.QuestionPending).
		Order("order_index ASC").
		First(&sq).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil // interview complete
	}
	if err != nil {
		return nil, fmt.Errorf("load next question: %w", err)
	}

	var total, answered int64
	if err := s.DB.Model(&models.SessionQuestion{}).
		Where("session_id = ?", sess.ID).
		Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	if err := s.DB.Model(&models.SessionQuestion{}).
		Where("session_id = ? AND status = ?", sess.ID, models.QuestionAnswered).
		Count(&answered).Error; err != nil {
		return nil, fmt.Errorf("count answered: %w", err)
	}

	content, err := ResolveContent(s.DB, &sq)
	if err != nil {
		return nil, err
	}

	return &NextQuestion{
		SessionQuestionID: sq.ID,
		Text:              content.Text,
		MaxDuration:       content.MaxDuration,
		Position:          int(answered) + 1,
		Total:             int(total),
	}, nil
}

// Progress returns answered/total counts for the session overview endpoint.
func (s *Service) Progress(sessionID string) (answered, total int64, err error) {
	if err = s.DB.Model(&models.SessionQuestion{}).
		Where("session_id = ?", sessionID).
		Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("count questions: %w", err)
	}
	if err = s.DB.Model(&models.SessionQuestion{}).
		Where("session_id = ? AND status = ?", sessionID, models.QuestionAnswered).
		Count(&answered).Error; err != nil {
		return 0, 0, fmt.Errorf("count answered: %w", err)
	}
	return answered, total, nil
}
