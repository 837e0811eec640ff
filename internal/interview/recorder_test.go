package interview

import (
	"errors"
	"sync"
	"testing"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"
)

func TestRecord_CreatesResponseAndFlipsQuestion(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	tmpl := seedTemplate(t, db, "org-1", []string{"Q1"})

	sess, err := svc.CreateTemplateSession(tmpl.ID, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("CreateTemplateSession() error = %v", err)
	}
	sq := sessionQuestions(t, db, sess.ID)[0]

	resp, created, err := svc.Record(sess.AccessToken, sq.ID, "/uploads/answer.webm")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !created {
		t.Error("Record() created = false, want true")
	}
	if resp.Status != models.ResponsePending {
		t.Errorf("response status = %s, want %s", resp.Status, models.ResponsePending)
	}
	if resp.VideoURL != "/uploads/answer.webm" {
		t.Errorf("video url = %q", resp.VideoURL)
	}

	var reloaded models.SessionQuestion
	if err := db.First(&reloaded, "id = ?", sq.ID).Error; err != nil {
		t.Fatalf("reload session question: %v", err)
	}
	if reloaded.Status != models.QuestionAnswered {
		t.Errorf("question status = %s, want %s", reloaded.Status, models.QuestionAnswered)
	}
}

func TestRecord_DuplicateUploadIsIdempotent(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	tmpl := seedTemplate(t, db, "org-1", []string{"Q1"})

	sess, err := svc.CreateTemplateSession(tmpl.ID, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("CreateTemplateSession() error = %v", err)
	}
	sq := sessionQuestions(t, db, sess.ID)[0]

	first, created, err := svc.Record(sess.AccessToken, sq.ID, "/uploads/first.webm")
	if err != nil || !created {
		t.Fatalf("first Record() = (created=%v, err=%v)", created, err)
	}

	second, created, err := svc.Record(sess.AccessToken, sq.ID, "/uploads/second.webm")
	if err != nil {
		t.Fatalf("second Record() error = %v", err)
	}
	if created {
		t.Error("second Record() created = true, want false")
	}
	if second.ID != first.ID {
		t.Errorf("second Record() returned response %s, want existing %s", second.ID, first.ID)
	}
	if second.VideoURL != "/uploads/first.webm" {
		t.Errorf("second Record() video url = %q, want the original kept", second.VideoURL)
	}

	var count int64
	if err := db.Model(&models.InterviewResponse{}).
		Where("session_question_id = ?", sq.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count responses: %v", err)
	}
	if count != 1 {
		t.Errorf("response rows = %d, want 1", count)
	}
}

func TestRecord_ConcurrentDuplicatesKeepOneResponse(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	tmpl := seedTemplate(t, db, "org-1", []string{"Q1"})

	sess, err := svc.CreateTemplateSession(tmpl.ID, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("CreateTemplateSession() error = %v", err)
	}
	sq := sessionQuestions(t, db, sess.ID)[0]

	const workers = 4
	var wg sync.WaitGroup
	var mu sync.Mutex
	var createdCount int
	errs := make([]error, 0, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := svc.Record(sess.AccessToken, sq.ID, "/uploads/race.webm")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if created {
				createdCount++
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		t.Errorf("Record() error = %v, want graceful degradation to read", err)
	}
	if createdCount != 1 {
		t.Errorf("created = true for %d callers, want exactly 1", createdCount)
	}

	var count int64
	if err := db.Model(&models.InterviewResponse{}).
		Where("session_question_id = ?", sq.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count responses: %v", err)
	}
	if count != 1 {
		t.Errorf("response rows = %d, want 1", count)
	}
}

func TestRecord_RejectsForeignSessionQuestion(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	tmpl := seedTemplate(t, db, "org-1", []string{"Q1"})

	mine, err := svc.CreateTemplateSession(tmpl.ID, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("CreateTemplateSession() error = %v", err)
	}
	theirs, err := svc.CreateTemplateSession(tmpl.ID, "Bob", "bob@example.com")
	if err != nil {
		t.Fatalf("CreateTemplateSession() error = %v", err)
	}
	theirQuestion := sessionQuestions(t, db, theirs.ID)[0]

	_, _, err = svc.Record(mine.AccessToken, theirQuestion.ID, "/uploads/a.webm")
	if !errors.Is(err, ErrQuestionMismatch) {
		t.Errorf("Record() error = %v, want ErrQuestionMismatch", err)
	}
}

func TestRecord_RejectsExpiredSession(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	tmpl := seedTemplate(t, db, "org-1", []string{"Q1"})

	sess, err := svc.CreateTemplateSession(tmpl.ID, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("CreateTemplateSession() error = %v", err)
	}
	sq := sessionQuestions(t, db, sess.ID)[0]
	expireSession(t, db, sess.ID)

	_, _, err = svc.Record(sess.AccessToken, sq.ID, "/uploads/a.webm")
	if !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Record() error = %v, want ErrSessionExpired", err)
	}
}
