package interview

import (
	"errors"
	"fmt"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errAlreadyAnswered signals a lost race inside the recording transaction.
var errAlreadyAnswered = errors.New("session question already answered")

// Record stores one uploaded artifact reference for a session question.
// Creating the response and flipping the question to ANSWERED happen in one
// transaction: the progression resolver's correctness depends on the flip
// being synchronized with response existence.
//
// Re-uploads are idempotent: once the question is answered, the existing
// response is returned unchanged and created is false, so the caller knows
// not to dispatch evaluation again. A guarded status update serializes
// concurrent duplicates; the loser degrades to the read path.
func (s *Service) Record(token, sessionQuestionID, videoURL string) (resp *models.InterviewResponse, created bool, err error) {
	sess, err := s.SessionByToken(token)
	if err != nil {
		return nil, false, err
	}
	if err := gate(sess, time.Now()); err != nil {
		return nil, false, err
	}

	// cross-session question ids are rejected
	var sq models.SessionQuestion
	err = s.DB.Where("id = ? AND session_id = ?", sessionQuestionID, sess.ID).First(&sq).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, ErrQuestionMismatch
	}
	if err != nil {
		return nil, false, fmt.Errorf("load session question: %w", err)
	}

	if sq.Status == models.QuestionAnswered {
		return s.existingResponse(sq.ID)
	}

	candidate := models.InterviewResponse{
		ID:                uuid.NewString(),
		SessionID:         sess.ID,
		SessionQuestionID: sq.ID,
		VideoURL:          videoURL,
		Status:            models.ResponsePending,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.SessionQuestion{}).
			Where("id = ? AND status = ?", sq.ID, models.QuestionPending).
			Update("status", models.QuestionAnswered)
		if res.Error != nil {
			return fmt.Errorf("flip session question: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errAlreadyAnswered
		}
		if err := tx.Create(&candidate).Error; err != nil {
			return fmt.Errorf("create response: %w", err)
		}
		return nil
	})
	if errors.Is(err, errAlreadyAnswered) {
		return s.existingResponse(sq.ID)
	}
	if err != nil {
		return nil, false, err
	}
	return &candidate, true, nil
}

// existingResponse serves the idempotent path: the one response that the
// unique index on session_question_id guarantees.
func (s *Service) existingResponse(sessionQuestionID string) (*models.InterviewResponse, bool, error) {
	var resp models.InterviewResponse
	err := s.DB.Where("session_question_id = ?", sessionQuestionID).First(&resp).Error
	if err == gorm.ErrRecordNotFound {
		// answered flag without a response row; the atomic write should
		// make this impossible
		return nil, false, fmt.Errorf("session question %s answered but has no response", sessionQuestionID)
	}
	if err != nil {
		return nil, false, fmt.Errorf("load existing response: %w", err)
	}
	return &resp, false, nil
}
