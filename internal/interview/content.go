package interview

import (
	"fmt"
	"strings"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

	"gorm.io/gorm"
)

// DefaultMaxDuration is applied when a bound question carries no duration.
const DefaultMaxDuration = 300 // seconds

// QuestionContent is the resolved display form of a session question.
type QuestionContent struct {
	Text        string
	MaxDuration int
}

// ResolveContent resolves the text and duration behind a session question,
// dispatching on which reference kind the binding carries. A binding with no
// resolvable text is a data-integrity failure and is reported as such.
func ResolveContent(db *gorm.DB, sq *models.SessionQuestion) (*QuestionContent, error) {
	switch {
	case sq.TemplateQuestionID != nil && sq.QuestionCopyID == nil:
		var q models.TemplateQuestion
		err := db.Where("id = ?", *sq.TemplateQuestionID).First(&q).Error
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: template question %s missing", ErrUnresolvableQuestion, *sq.TemplateQuestionID)
		}
		if err != nil {
			return nil, fmt.Errorf("load template question: %w", err)
		}
		return contentFrom(q.Text, q.MaxDuration)

	case sq.QuestionCopyID != nil && sq.TemplateQuestionID == nil:
		var q models.QuestionCopy
		err := db.Where("id = ?", *sq.QuestionCopyID).First(&q).Error
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: question copy %s missing", ErrUnresolvableQuestion, *sq.QuestionCopyID)
		}
		if err != nil {
			return nil, fmt.Errorf("load question copy: %w", err)
		}
		return contentFrom(q.Text, q.MaxDuration)

	default:
		return nil, fmt.Errorf("%w: session question %s has %s", ErrUnresolvableQuestion, sq.ID, referenceShape(sq))
	}
}

func contentFrom(text string, maxDuration int) (*QuestionContent, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty question text", ErrUnresolvableQuestion)
	}
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}
	return &QuestionContent{Text: text, MaxDuration: maxDuration}, nil
}

func referenceShape(sq *models.SessionQuestion) string {
	if sq.TemplateQuestionID != nil && sq.QuestionCopyID != nil {
		return "both reference kinds set"
	}
	return "no reference set"
}
