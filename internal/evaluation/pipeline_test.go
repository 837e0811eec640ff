package evaluation

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubTranscriber struct {
	transcript string
	err        error
	panicMsg   string
}

func (s *stubTranscriber) Transcribe(ctx context.Context, videoURL string) (string, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.transcript, s.err
}

type stubScorer struct {
	result *Result
	err    error
}

func (s *stubScorer) Score(ctx context.Context, questionText, transcript string) (*Result, error) {
	return s.result, s.err
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
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

// seedResponse inserts a PENDING response bound to a resolvable question.
func seedResponse(t *testing.T, db *gorm.DB) models.InterviewResponse {
	t.Helper()

	sessionID := uuid.NewString()
	copyID := uuid.NewString()
	if err := db.Create(&models.QuestionCopy{
		ID:        copyID,
		SessionID: sessionID,
		Text:      "Describe a production incident you handled.",
	}).Error; err != nil {
		t.Fatalf("seed question copy: %v", err)
	}

	sq := models.SessionQuestion{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		Status:         models.QuestionAnswered,
		QuestionCopyID: &copyID,
	}
	if err := db.Create(&sq).Error; err != nil {
		t.Fatalf("seed session question: %v", err)
	}

	resp := models.InterviewResponse{
		ID:                uuid.NewString(),
		SessionID:         sessionID,
		SessionQuestionID: sq.ID,
		VideoURL:          "/uploads/answer.webm",
		Status:            models.ResponsePending,
	}
	if err := db.Create(&resp).Error; err != nil {
		t.Fatalf("seed response: %v", err)
	}
	return resp
}

func reload(t *testing.T, db *gorm.DB, id string) models.InterviewResponse {
	t.Helper()
	var resp models.InterviewResponse
	if err := db.First(&resp, "id = ?", id).Error; err != nil {
		t.Fatalf("reload response: %v", err)
	}
	return resp
}

func TestProcess_HappyPath(t *testing.T) {
	db := testDB(t)
	resp := seedResponse(t, db)

	p := NewPipeline(db,
		&stubTranscriber{transcript: "we rolled back the deploy"},
		&stubScorer{result: &Result{Score: 7.5, Feedback: "solid answer"}},
		zaptest.NewLogger(t), time.Second)

	p.Process(context.Background(), resp.ID)

	got := reload(t, db, resp.ID)
	if got.Status != models.ResponseDone {
		t.Errorf("status = %s, want %s", got.Status, models.ResponseDone)
	}
	if got.Transcript != "we rolled back the deploy" {
		t.Errorf("transcript = %q", got.Transcript)
	}
	if got.AIScore == nil || *got.AIScore != 7.5 {
		t.Errorf("ai score = %v, want 7.5", got.AIScore)
	}
	if got.AIFeedback != "solid answer" {
		t.Errorf("ai feedback = %q", got.AIFeedback)
	}
	if got.ErrorMessage != "" {
		t.Errorf("error message = %q, want empty", got.ErrorMessage)
	}
}

func TestProcess_TranscriptionFailure(t *testing.T) {
	db := testDB(t)
	resp := seedResponse(t, db)

	p := NewPipeline(db,
		&stubTranscriber{err: errors.New("ffmpeg exited 1")},
		&stubScorer{result: &Result{Score: 9}},
		zaptest.NewLogger(t), time.Second)

	p.Process(context.Background(), resp.ID)

	got := reload(t, db, resp.ID)
	if got.Status != models.ResponseFailed {
		t.Errorf("status = %s, want %s", got.Status, models.ResponseFailed)
	}
	if got.ErrorMessage == "" {
		t.Error("error message empty, want cause recorded")
	}
	if got.AIScore != nil {
		t.Errorf("ai score = %v, want nil", got.AIScore)
	}
}

func TestProcess_ScoringFailureKeepsTranscript(t *testing.T) {
	db := testDB(t)
	resp := seedResponse(t, db)

	p := NewPipeline(db,
		&stubTranscriber{transcript: "partial progress"},
		&stubScorer{err: errors.New("model unavailable")},
		zaptest.NewLogger(t), time.Second)

	p.Process(context.Background(), resp.ID)

	got := reload(t, db, resp.ID)
	if got.Status != models.ResponseFailed {
		t.Errorf("status = %s, want %s", got.Status, models.ResponseFailed)
	}
	if got.Transcript != "partial progress" {
		t.Errorf("transcript = %q, want kept despite scoring failure", got.Transcript)
	}
}

func TestProcess_UnknownResponse(t *testing.T) {
	db := testDB(t)

	p := NewPipeline(db, &stubTranscriber{}, &stubScorer{}, zaptest.NewLogger(t), time.Second)

	// must not panic or create rows
	p.Process(context.Background(), "no-such-response")

	var count int64
	if err := db.Model(&models.InterviewResponse{}).Count(&count).Error; err != nil {
		t.Fatalf("count responses: %v", err)
	}
	if count != 0 {
		t.Errorf("response rows = %d, want 0", count)
	}
}

func TestProcess_UnresolvableQuestionFails(t *testing.T) {
	db := testDB(t)
	resp := seedResponse(t, db)

	// break the binding: response's question loses its content reference
	err := db.Model(&models.SessionQuestion{}).
		Where("id = ?", resp.SessionQuestionID).
		Update("question_copy_id", nil).Error
	if err != nil {
		t.Fatalf("break binding: %v", err)
	}

	p := NewPipeline(db,
		&stubTranscriber{transcript: "anything"},
		&stubScorer{result: &Result{Score: 5}},
		zaptest.NewLogger(t), time.Second)

	p.Process(context.Background(), resp.ID)

	got := reload(t, db, resp.ID)
	if got.Status != models.ResponseFailed {
		t.Errorf("status = %s, want %s", got.Status, models.ResponseFailed)
	}
}

func TestDispatch_PanicEndsInFailed(t *testing.T) {
	db := testDB(t)
	resp := seedResponse(t, db)

	p := NewPipeline(db,
		&stubTranscriber{panicMsg: "boom"},
		&stubScorer{result: &Result{Score: 5}},
		zaptest.NewLogger(t), time.Second)

	p.Dispatch(resp.ID)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if got := reload(t, db, resp.ID); got.Status == models.ResponseFailed {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("status = %s, want %s after panic", reload(t, db, resp.ID).Status, models.ResponseFailed)
}

func TestProcess_RetryOverwritesFailure(t *testing.T) {
	db := testDB(t)
	resp := seedResponse(t, db)

	failing := NewPipeline(db,
		&stubTranscriber{err: errors.New("whisper missing")},
		&stubScorer{result: &Result{Score: 6}},
		zaptest.NewLogger(t), time.Second)
	failing.Process(context.Background(), resp.ID)

	if got := reload(t, db, resp.ID); got.Status != models.ResponseFailed {
		t.Fatalf("status after failure = %s, want %s", got.Status, models.ResponseFailed)
	}

	working := NewPipeline(db,
		&stubTranscriber{transcript: "second attempt"},
		&stubScorer{result: &Result{Score: 6, Feedback: "ok"}},
		zaptest.NewLogger(t), time.Second)
	working.Process(context.Background(), resp.ID)

	got := reload(t, db, resp.ID)
	if got.Status != models.ResponseDone {
		t.Errorf("status after retry = %s, want %s", got.Status, models.ResponseDone)
	}
	if got.ErrorMessage != "" {
		t.Errorf("error message = %q, want cleared on retry", got.ErrorMessage)
	}
	if got.Transcript != "second attempt" {
		t.Errorf("transcript = %q, want overwritten", got.Transcript)
	}
}
