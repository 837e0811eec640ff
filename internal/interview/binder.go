package interview

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// binding is one question slot resolved by the binder, before persistence.
// Exactly one of templateQuestionID / copy is set.
type binding struct {
	templateQuestionID string
	copy               *models.QuestionCopy
	sourceID           string // duplicate detection key
}

// CreateTemplateSession binds a session to a template. Templates carrying
// their own question list bind it in stored order; templates with only a
// question count draw that many active catalog questions instead.
func (s *Service) CreateTemplateSession(templateID, candidateName, candidateEmail string) (*models.InterviewSession, error) {
	candidateEmail = strings.ToLower(strings.TrimSpace(candidateEmail))

	// one active session per email
	var active int64
	if err := s.DB.Model(&models.InterviewSession{}).
		Where("candidate_email = ? AND expires_at > ?", candidateEmail, time.Now()).
		Count(&active).Error; err != nil {
		return nil, fmt.Errorf("check active sessions: %w", err)
	}
	if active > 0 {
		return nil, ErrActiveSession
	}

	var tmpl models.InterviewTemplate
	err := s.DB.Where("id = ? AND status = ?", templateID, models.TemplateActive).First(&tmpl).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	if tmpl.OrganizationID == "" {
		return nil, ErrTemplateNotFound
	}

	var questions []models.TemplateQuestion
	if err := s.DB.Where("template_id = ?", tmpl.ID).
		Order("order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("load template questions: %w", err)
	}

	var bindings []binding
	if len(questions) > 0 {
		for _, q := range questions {
			bindings = append(bindings, binding{templateQuestionID: q.ID, sourceID: q.ID})
		}
	} else if tmpl.QuestionCount > 0 {
		drawn, err := s.drawRandom(tmpl.OrganizationID, nil, tmpl.QuestionCount)
		if err != nil {
			return nil, err
		}
		bindings = copyBindings(drawn)
	} else {
		return nil, ErrNoQuestions
	}

	sess := &models.InterviewSession{
		OrganizationID: tmpl.OrganizationID,
		TemplateID:     &tmpl.ID,
		Title:          tmpl.Title,
		CandidateName:  strings.TrimSpace(candidateName),
		CandidateEmail: candidateEmail,
		ExpiresAt:      time.Now().Add(s.TemplateTTL),
	}
	if err := s.bind(sess, bindings); err != nil {
		return nil, err
	}
	return sess, nil
}

// CreateRandomSession binds a session to a uniform random draw from the
// organization's active catalog. When orgID is empty the configured public
// organization is used, falling back to the first organization that has an
// active question at all.
func (s *Service) CreateRandomSession(orgID, candidateName, candidateEmail string, categories []string) (*models.InterviewSession, error) {
	candidateEmail = strings.ToLower(strings.TrimSpace(candidateEmail))

	if orgID == "" {
		orgID = s.PublicOrgID
	}
	if orgID == "" {
		var q models.QuestionBank
		err := s.DB.Where("is_active = ?", true).First(&q).Error
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoQuestions
		}
		if err != nil {
			return nil, fmt.Errorf("resolve public organization: %w", err)
		}
		orgID = q.OrganizationID
	}

	drawn, err := s.drawRandom(orgID, categories, s.RandomCount)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(candidateName)
	if name == "" {
		name = "Candidate"
	}

	sess := &models.InterviewSession{
		OrganizationID: orgID,
		CandidateName:  name,
		CandidateEmail: candidateEmail,
		ExpiresAt:      time.Now().Add(s.RandomTTL),
	}
	if err := s.bind(sess, copyBindings(drawn)); err != nil {
		return nil, err
	}
	return sess, nil
}

// CreatePersonalizedSession binds an explicit, ordered list of catalog
// questions chosen by an admin. All of them must be active and owned by the
// organization.
func (s *Service) CreatePersonalizedSession(orgID, candidateName, candidateEmail, title string, questionIDs []string, expiresIn time.Duration) (*models.InterviewSession, error) {
	if len(questionIDs) == 0 {
		return nil, ErrNoQuestions
	}
	if expiresIn <= 0 {
		expiresIn = s.TemplateTTL
	}

	var bank []models.QuestionBank
	if err := s.DB.Where("id IN ? AND organization_id = ? AND is_active = ?", questionIDs, orgID, true).
		Find(&bank).Error; err != nil {
		return nil, fmt.Errorf("load catalog questions: %w", err)
	}
	if len(bank) != len(questionIDs) {
		return nil, fmt.Errorf("%w: only %d/%d questions found and active", ErrNoQuestions, len(bank), len(questionIDs))
	}

	// preserve the requested order
	byID := make(map[string]models.QuestionBank, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
	}
	ordered := make([]models.QuestionBank, 0, len(questionIDs))
	for _, id := range questionIDs {
		q, ok := byID[id]
		if !ok {
			return nil, ErrDuplicateQuestion
		}
		ordered = append(ordered, q)
		delete(byID, id)
	}

	sess := &models.InterviewSession{
		OrganizationID: orgID,
		Title:          strings.TrimSpace(title),
		CandidateName:  strings.TrimSpace(candidateName),
		CandidateEmail: strings.ToLower(strings.TrimSpace(candidateEmail)),
		ExpiresAt:      time.Now().Add(expiresIn),
	}
	if err := s.bind(sess, copyBindings(ordered)); err != nil {
		return nil, err
	}
	return sess, nil
}

// drawRandom picks n active catalog questions without replacement.
func (s *Service) drawRandom(orgID string, categories []string, n int) ([]models.QuestionBank, error) {
	q := s.DB.Where("organization_id = ? AND is_active = ?", orgID, true)
	if len(categories) > 0 {
		q = q.Where("category IN ?", categories)
	}

	var all []models.QuestionBank
	if err := q.Find(&all).Error; err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(all) == 0 {
		return nil, ErrNoQuestions
	}

	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if n > len(all) {
		n = len(all)
	}
	return all[:n], nil
}

// copyBindings materializes session-owned value copies of catalog questions.
func copyBindings(drawn []models.QuestionBank) []binding {
	bindings := make([]binding, 0, len(drawn))
	for _, q := range drawn {
		bindings = append(bindings, binding{
			copy: &models.QuestionCopy{
				ID:               uuid.NewString(),
				SourceQuestionID: q.ID,
				Text:             q.Text,
				Category:         q.Category,
				MaxDuration:      q.MaxDuration,
			},
			sourceID: q.ID,
		})
	}
	return bindings
}

// bind persists the session and its question bindings in one transaction.
// Either everything exists afterwards or nothing does.
func (s *Service) bind(sess *models.InterviewSession, bindings []binding) error {
	if len(bindings) == 0 {
		return ErrNoQuestions
	}

	// no question reference may appear twice in one session
	seen := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		if _, dup := seen[b.sourceID]; dup {
			return ErrDuplicateQuestion
		}
		seen[b.sourceID] = struct{}{}
	}

	token, err := util.AccessToken()
	if err != nil {
		return err
	}
	sess.ID = uuid.NewString()
	sess.AccessToken = token
	sess.State = StateInvited

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sess).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		for i, b := range bindings {
			sq := models.SessionQuestion{
				ID:         uuid.NewString(),
				SessionID:  sess.ID,
				OrderIndex: i,
				Status:     models.QuestionPending,
			}
			if b.copy != nil {
				b.copy.SessionID = sess.ID
				if err := tx.Create(b.copy).Error; err != nil {
					return fmt.Errorf("create question copy: %w", err)
				}
				sq.QuestionCopyID = &b.copy.ID
			} else {
				id := b.templateQuestionID
				sq.TemplateQuestionID = &id
			}
			if err := tx.Create(&sq).Error; err != nil {
				return fmt.Errorf("create session question: %w", err)
			}
		}

		// defensive verification; the transaction is the real guarantee
		var count int64
		if err := tx.Model(&models.SessionQuestion{}).
			Where("session_id = ?", sess.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if int(count) != len(bindings) {
			return fmt.Errorf("bound %d of %d questions", count, len(bindings))
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}
