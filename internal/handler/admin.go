package handler

import (
	"net/http"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/evaluation"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/interview"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/middleware"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/review"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminHandler serves the organization-scoped admin and reviewer API.
type AdminHandler struct {
	DB         *gorm.DB
	Interviews *interview.Service
	Reviews    *review.Service
	Pipeline   *evaluation.Pipeline
}

func NewAdminHandler(db *gorm.DB, svc *interview.Service, reviews *review.Service, pipeline *evaluation.Pipeline) *AdminHandler {
	return &AdminHandler{
		DB:         db,
		Interviews: svc,
		Reviews:    reviews,
		Pipeline:   pipeline,
	}
}

// ---------- question bank ----------

type createQuestionReq struct {
	Text        string `json:"text" binding:"required"`
	Category    string `json:"category" binding:"max=32"`
	MaxDuration int    `json:"max_duration"`
	Difficulty  string `json:"difficulty" binding:"max=16"`
}

func (h *AdminHandler) CreateQuestion(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "text is required")
		return
	}
	if err := util.ValidateQuestionText(req.Text); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if req.MaxDuration <= 0 {
		req.MaxDuration = interview.DefaultMaxDuration
	}

	q := models.QuestionBank{
		ID:             uuid.NewString(),
		OrganizationID: user.OrganizationID,
		Text:           req.Text,
		Category:       req.Category,
		MaxDuration:    req.MaxDuration,
		Difficulty:     req.Difficulty,
		IsActive:       true,
		CreatedBy:      user.ID,
	}
	if err := h.DB.Create(&q).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create question")
		return
	}

	util.Success(c, util.Response{"question": q})
}

func (h *AdminHandler) ListQuestions(c *gin.Context) {
	user := middleware.CurrentUser(c)

	query := h.DB.Where("organization_id = ?", user.OrganizationID)
	if cat := c.Query("category"); cat != "" {
		query = query.Where("category = ?", cat)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var questions []models.QuestionBank
	if err := query.Order("created_at DESC").Find(&questions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load questions")
		return
	}

	util.Success(c, util.Response{"questions": questions})
}

type toggleQuestionReq struct {
	IsActive bool `json:"is_active"`
}

func (h *AdminHandler) ToggleQuestion(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req toggleQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	res := h.DB.Model(&models.QuestionBank{}).
		Where("id = ? AND organization_id = ?", c.Param("id"), user.OrganizationID).
		Update("is_active", req.IsActive)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update question")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "question not found")
		return
	}

	util.Success(c, util.Response{"message": "question updated"})
}

// ---------- templates ----------

type createTemplateReq struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	QuestionIDs   []string `json:"question_ids"`
	QuestionCount int      `json:"question_count"`
}

// CreateTemplate copies the chosen catalog questions into template-owned
// records so the template is immune to later catalog edits.
func (h *AdminHandler) CreateTemplate(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "title is required")
		return
	}

	var bank []models.QuestionBank
	if len(req.QuestionIDs) > 0 {
		if err := h.DB.Where("id IN ? AND organization_id = ? AND is_active = ?",
			req.QuestionIDs, user.OrganizationID, true).
			Find(&bank).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load questions")
			return
		}
		if len(bank) != len(req.QuestionIDs) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "one or more questions are invalid, inactive, or not in this organization")
			return
		}
	}

	tmpl := models.InterviewTemplate{
		ID:             uuid.NewString(),
		OrganizationID: user.OrganizationID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.TemplateActive,
		QuestionCount:  req.QuestionCount,
		CreatedBy:      user.ID,
	}

	byID := make(map[string]models.QuestionBank, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tmpl).Error; err != nil {
			return err
		}
		for i, id := range req.QuestionIDs {
			q := byID[id]
			tq := models.TemplateQuestion{
				ID:          uuid.NewString(),
				TemplateID:  tmpl.ID,
				Text:        q.Text,
				MaxDuration: q.MaxDuration,
				OrderIndex:  i,
			}
			if err := tx.Create(&tq).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create template")
		return
	}

	util.Success(c, util.Response{"template": tmpl})
}

func (h *AdminHandler) ListTemplates(c *gin.Context) {
	user := middleware.CurrentUser(c)

	query := h.DB.Where("organization_id = ?", user.OrganizationID)
	if c.Query("include_archived") != "true" {
		query = query.Where("status = ?", models.TemplateActive)
	}

	var templates []models.InterviewTemplate
	if err := query.Order("created_at DESC").Find(&templates).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load templates")
		return
	}

	util.Success(c, util.Response{"templates": templates})
}

func (h *AdminHandler) ArchiveTemplate(c *gin.Context) {
	h.setTemplateStatus(c, models.TemplateArchived)
}

func (h *AdminHandler) RestoreTemplate(c *gin.Context) {
	h.setTemplateStatus(c, models.TemplateActive)
}

func (h *AdminHandler) setTemplateStatus(c *gin.Context, status string) {
	user := middleware.CurrentUser(c)

	res := h.DB.Model(&models.InterviewTemplate{}).
		Where("id = ? AND organization_id = ?", c.Param("id"), user.OrganizationID).
		Update("status", status)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update template")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "template not found")
		return
	}

	util.Success(c, util.Response{"message": "template updated"})
}

// ---------- sessions ----------

type createPersonalizedSessionReq struct {
	CandidateName  string   `json:"candidate_name" binding:"required"`
	CandidateEmail string   `json:"candidate_email" binding:"required"`
	Title          string   `json:"title" binding:"required"`
	QuestionIDs    []string `json:"question_ids" binding:"required"`
	ExpiresInHours int      `json:"expires_in_hours"`
}

func (h *AdminHandler) CreatePersonalizedSession(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createPersonalizedSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "candidate_name, candidate_email, title and question_ids are required")
		return
	}
	if err := util.ValidateEmail(req.CandidateEmail); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	sess, err := h.Interviews.CreatePersonalizedSession(
		user.OrganizationID,
		req.CandidateName,
		req.CandidateEmail,
		req.Title,
		req.QuestionIDs,
		time.Duration(req.ExpiresInHours)*time.Hour,
	)
	if err != nil {
		rejectInterviewErr(c, err)
		return
	}

	util.Success(c, util.Response{
		"session_id":   sess.ID,
		"access_token": sess.AccessToken,
		"expires_at":   sess.ExpiresAt,
	})
}

func (h *AdminHandler) ListSessions(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var sessions []models.InterviewSession
	if err := h.DB.Where("organization_id = ?", user.OrganizationID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load sessions")
		return
	}

	util.Success(c, util.Response{"sessions": sessions})
}

// SessionResponses is the reviewer view: every response of one session with
// resolved question text, derived decision and effective score.
func (h *AdminHandler) SessionResponses(c *gin.Context) {
	user := middleware.CurrentUser(c)

	rows, err := h.sessionRows(user.OrganizationID, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load responses")
		return
	}

	items := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		items = append(items, gin.H{
			"id":             r.resp.ID,
			"session_id":     r.resp.SessionID,
			"video_url":      r.resp.VideoURL,
			"question_text":  r.questionText,
			"order_index":    r.orderIndex,
			"transcript":     r.resp.Transcript,
			"ai_score":       r.resp.AIScore,
			"ai_feedback":    r.resp.AIFeedback,
			"reviewer_score": r.resp.ReviewerScore,
			"reviewer_notes": r.resp.ReviewerNotes,
			"reviewed_at":    r.resp.ReviewedAt,
			"final_score":    review.EffectiveScore(r.resp.AIScore, r.resp.ReviewerScore),
			"decision":       review.Derive(r.resp.AIScore, r.resp.ReviewerScore, r.resp.Status),
			"status":         r.resp.Status,
			"created_at":     r.resp.CreatedAt,
		})
	}

	util.Success(c, util.Response{"responses": items})
}

func (h *AdminHandler) ListResponses(c *gin.Context) {
	user := middleware.CurrentUser(c)

	query := h.DB.Model(&models.InterviewResponse{}).
		Joins("JOIN interview_sessions ON interview_sessions.id = interview_responses.session_id").
		Where("interview_sessions.organization_id = ?", user.OrganizationID)

	if status := c.Query("status"); status != "" {
		query = query.Where("interview_responses.status = ?", status)
	}
	if c.Query("reviewed") == "true" {
		query = query.Where("interview_responses.reviewed_at IS NOT NULL")
	}

	var responses []models.InterviewResponse
	if err := query.Order("interview_responses.created_at DESC").Find(&responses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load responses")
		return
	}

	util.Success(c, util.Response{"responses": responses})
}

// ---------- review ----------

type reviewResponseReq struct {
	ReviewerScore *float64 `json:"reviewer_score"`
	ReviewerNotes string   `json:"reviewer_notes"`
}

func (h *AdminHandler) ReviewResponse(c *gin.Context) {
	var req reviewResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.ReviewerScore != nil {
		if err := util.ValidateScore(*req.ReviewerScore); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
	}

	resp, err := h.Reviews.Override(c.Param("id"), req.ReviewerScore, req.ReviewerNotes)
	if err != nil {
		if err == review.ErrResponseNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save review")
		}
		return
	}

	util.Success(c, util.Response{"response": resp})
}

type finalizeSessionReq struct {
	Decision string   `json:"decision" binding:"required"`
	Summary  string   `json:"summary"`
	Score    *float64 `json:"score"`
}

func (h *AdminHandler) FinalizeSession(c *gin.Context) {
	var req finalizeSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "decision is required")
		return
	}
	if req.Score != nil {
		if err := util.ValidateScore(*req.Score); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
	}

	sess, err := h.Reviews.Finalize(c.Param("id"), req.Decision, req.Summary, req.Score)
	if err != nil {
		switch err {
		case review.ErrSessionNotFound:
			util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
		case review.ErrNotSubmitted:
			util.Error(c, http.StatusConflict, util.CodeConflict, err.Error())
		default:
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to finalize session")
		}
		return
	}

	util.Success(c, util.Response{"session": sess})
}

// ReprocessResponse re-triggers the evaluation pipeline for a response,
// typically after a collaborator failure. The retry overwrites prior results.
func (h *AdminHandler) ReprocessResponse(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var resp models.InterviewResponse
	err := h.DB.Model(&models.InterviewResponse{}).
		Joins("JOIN interview_sessions ON interview_sessions.id = interview_responses.session_id").
		Where("interview_responses.id = ? AND interview_sessions.organization_id = ?",
			c.Param("id"), user.OrganizationID).
		First(&resp).Error
	if err == gorm.ErrRecordNotFound {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "response not found")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load response")
		return
	}

	h.Pipeline.Dispatch(resp.ID)

	util.Success(c, util.Response{"message": "processing started"})
}

// ---------- shared reviewer-view row loading ----------

type sessionRow struct {
	resp         models.InterviewResponse
	questionText string
	orderIndex   int
}

// sessionRows loads a session's responses in question order with resolved
// question text, verifying organization ownership.
func (h *AdminHandler) sessionRows(organizationID, sessionID string) ([]sessionRow, error) {
	var sess models.InterviewSession
	if err := h.DB.Where("id = ? AND organization_id = ?", sessionID, organizationID).
		First(&sess).Error; err != nil {
		return nil, err
	}

	var questions []models.SessionQuestion
	if err := h.DB.Where("session_id = ?", sessionID).
		Order("order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}

	var responses []models.InterviewResponse
	if err := h.DB.Where("session_id = ?", sessionID).Find(&responses).Error; err != nil {
		return nil, err
	}
	byQuestion := make(map[string]models.InterviewResponse, len(responses))
	for _, r := range responses {
		byQuestion[r.SessionQuestionID] = r
	}

	rows := make([]sessionRow, 0, len(responses))
	for _, sq := range questions {
		resp, ok := byQuestion[sq.ID]
		if !ok {
			continue
		}
		text := ""
		if content, err := interview.ResolveContent(h.DB, &sq); err == nil {
			text = content.Text
		}
		rows = append(rows, sessionRow{
			resp:         resp,
			questionText: text,
			orderIndex:   sq.OrderIndex,
		})
	}
	return rows, nil
}
