package review

import "github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

// Decision buckets derived from the effective score.
const (
	DecisionStrongPass   = "STRONG_PASS"
	DecisionPass         = "PASS"
	DecisionReview       = "REVIEW"
	DecisionReject       = "REJECT"
	DecisionPending      = "PENDING"
	DecisionManualReview = "MANUAL_REVIEW"
)

// EffectiveScore prefers the reviewer's score over the AI score.
func EffectiveScore(aiScore, reviewerScore *float64) *float64 {
	if reviewerScore != nil {
		return reviewerScore
	}
	return aiScore
}

// Derive buckets a response. A failed pipeline always routes to manual
// review no matter what score is on record.
func Derive(aiScore, reviewerScore *float64, status string) string {
	if status == models.ResponseFailed {
		return DecisionManualReview
	}

	score := EffectiveScore(aiScore, reviewerScore)
	if score == nil {
		return DecisionPending
	}

	switch {
	case *score >= 8:
		return DecisionStrongPass
	case *score >= 6:
		return DecisionPass
	case *score >= 4:
		return DecisionReview
	default:
		return DecisionReject
	}
}
