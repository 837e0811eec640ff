package interview

import (
	"fmt"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

	"gorm.io/gorm"
)

// Session lifecycle states. INVITED is initial, REVIEWED terminal.
// No transition skips a state and none goes backward.
const (
	StateInvited    = "INVITED"
	StateInProgress = "IN_PROGRESS"
	StateSubmitted  = "SUBMITTED"
	StateReviewed   = "REVIEWED"
)

// next maps each state to the single legal successor.
var next = map[string]string{
	StateInvited:    StateInProgress,
	StateInProgress: StateSubmitted,
	StateSubmitted:  StateReviewed,
}

// CanTransition reports whether from -> to is a legal step.
func CanTransition(from, to string) bool {
	return next[from] == to
}

// transition performs a guarded state update: the row is only written when it
// is still in the expected state, so concurrent movers cannot double-apply.
// Zero rows affected means someone else moved the session first.
func transition(db *gorm.DB, sessionID, from, to string) (bool, error) {
	if !CanTransition(from, to) {
		return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	res := db.Model(&models.InterviewSession{}).
		Where("id = ? AND state = ?", sessionID, from).
		Update("state", to)
	if res.Error != nil {
		return false, fmt.Errorf("transition %s -> %s: %w", from, to, res.Error)
	}
	return res.RowsAffected == 1, nil
}
