package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/interview"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Transcriber turns a stored artifact reference into text.
type Transcriber interface {
	Transcribe(ctx context.Context, videoURL string) (string, error)
}

// Scorer evaluates a transcript against the question it answers.
type Scorer interface {
	Score(ctx context.Context, questionText, transcript string) (*Result, error)
}

// Result is the structured outcome of scoring one answer.
type Result struct {
	Score    float64
	Feedback string
}

// Pipeline runs the background transcribe-then-score job for a response.
// It never propagates an error to its dispatcher: every entry path ends in a
// persisted DONE or FAILED status, so a response cannot stay stuck in
// PROCESSING because of an unhandled fault.
type Pipeline struct {
	db          *gorm.DB
	transcriber Transcriber
	scorer      Scorer
	logger      *zap.Logger
	timeout     time.Duration
}

// NewPipeline wires the pipeline with its collaborators.
func NewPipeline(db *gorm.DB, t Transcriber, s Scorer, logger *zap.Logger, timeout time.Duration) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Pipeline{db: db, transcriber: t, scorer: s, logger: logger, timeout: timeout}
}

// Dispatch schedules processing as a detached background task. The caller
// returns immediately; the task's lifetime is decoupled from the request
// that triggered it, and even a panic ends in a terminal status write.
func (p *Pipeline) Dispatch(responseID string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("evaluation panic",
					zap.String("response_id", responseID),
					zap.Any("panic", r),
				)
				p.fail(responseID, fmt.Errorf("evaluation panic: %v", r))
			}
		}()
		p.Process(context.Background(), responseID)
	}()
}

// Process runs the full pipeline for one response. Safe to call again for the
// same response: a retry overwrites transcript, score and feedback.
func (p *Pipeline) Process(ctx context.Context, responseID string) {
	log := p.logger.With(zap.String("response_id", responseID))
	log.Info("evaluation started")

	if err := p.run(ctx, responseID, log); err != nil {
		log.Error("evaluation failed", zap.Error(err))
		p.fail(responseID, err)
		return
	}
	log.Info("evaluation done")
}

func (p *Pipeline) run(ctx context.Context, responseID string, log *zap.Logger) error {
	res := p.db.Model(&models.InterviewResponse{}).
		Where("id = ?", responseID).
		Update("status", models.ResponseProcessing)
	if res.Error != nil {
		return fmt.Errorf("mark processing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("response %s not found", responseID)
	}

	var resp models.InterviewResponse
	if err := p.db.Where("id = ?", responseID).First(&resp).Error; err != nil {
		return fmt.Errorf("load response: %w", err)
	}

	var sq models.SessionQuestion
	if err := p.db.Where("id = ?", resp.SessionQuestionID).First(&sq).Error; err != nil {
		return fmt.Errorf("load session question: %w", err)
	}
	content, err := interview.ResolveContent(p.db, &sq)
	if err != nil {
		return err
	}

	// collaborator calls are bounded; a stuck transcriber or scorer becomes
	// a terminal failure, not a response parked in PROCESSING
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	transcript, err := p.transcriber.Transcribe(ctx, resp.VideoURL)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	log.Debug("transcription complete", zap.Int("transcript_len", len(transcript)))

	// persist the transcript before scoring so a scoring failure keeps it
	if err := p.db.Model(&models.InterviewResponse{}).
		Where("id = ?", responseID).
		Update("transcript", transcript).Error; err != nil {
		return fmt.Errorf("persist transcript: %w", err)
	}

	result, err := p.scorer.Score(ctx, content.Text, transcript)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	log.Debug("scoring complete", zap.Float64("score", result.Score))

	err = p.db.Model(&models.InterviewResponse{}).
		Where("id = ?", responseID).
		Updates(map[string]interface{}{
			"transcript":    transcript,
			"ai_score":      result.Score,
			"ai_feedback":   result.Feedback,
			"status":        models.ResponseDone,
			"error_message": "",
		}).Error
	if err != nil {
		return fmt.Errorf("persist result: %w", err)
	}
	return nil
}

// fail writes the terminal FAILED status. Best effort: if even this write
// fails there is nothing left to do but log it.
func (p *Pipeline) fail(responseID string, cause error) {
	err := p.db.Model(&models.InterviewResponse{}).
		Where("id = ?", responseID).
		Updates(map[string]interface{}{
			"status":        models.ResponseFailed,
			"error_message": cause.Error(),
		}).Error
	if err != nil {
		p.logger.Error("persist failed status",
			zap.String("response_id", responseID),
			zap.Error(err),
		)
	}
}
