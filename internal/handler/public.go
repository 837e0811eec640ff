package handler

import (
	"net/http"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/evaluation"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/interview"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/storage"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PublicHandler serves the candidate-facing, token-scoped API.
type PublicHandler struct {
	DB         *gorm.DB
	Interviews *interview.Service
	Store      *storage.Local
	Pipeline   *evaluation.Pipeline
}

func NewPublicHandler(db *gorm.DB, svc *interview.Service, store *storage.Local, pipeline *evaluation.Pipeline) *PublicHandler {
	return &PublicHandler{
		DB:         db,
		Interviews: svc,
		Store:      store,
		Pipeline:   pipeline,
	}
}

// ListTemplates returns active templates open for public registration.
func (h *PublicHandler) ListTemplates(c *gin.Context) {
	var templates []models.InterviewTemplate
	if err := h.DB.Where("status = ?", models.TemplateActive).
		Order("created_at DESC").
		Find(&templates).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load templates")
		return
	}

	items := make([]gin.H, 0, len(templates))
	for _, t := range templates {
		items = append(items, gin.H{
			"id":          t.ID,
			"title":       t.Title,
			"description": t.Description,
			"created_at":  t.CreatedAt,
		})
	}

	util.Success(c, util.Response{"templates": items})
}

type startTemplateSessionReq struct {
	TemplateID     string `json:"template_id" binding:"required"`
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email" binding:"required"`
}

// StartTemplateSession registers a candidate for a template interview.
func (h *PublicHandler) StartTemplateSession(c *gin.Context) {
	var req startTemplateSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "template_id and candidate_email are required")
		return
	}
	if err := util.ValidateEmail(req.CandidateEmail); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	sess, err := h.Interviews.CreateTemplateSession(req.TemplateID, req.CandidateName, req.CandidateEmail)
	if err != nil {
		rejectInterviewErr(c, err)
		return
	}

	util.Success(c, util.Response{
		"access_token": sess.AccessToken,
		"expires_at":   sess.ExpiresAt,
	})
}

type startRandomSessionReq struct {
	Email      string   `json:"email" binding:"required"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// StartRandomSession creates an ad-hoc session with random catalog questions.
func (h *PublicHandler) StartRandomSession(c *gin.Context) {
	var req startRandomSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email is required")
		return
	}
	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	sess, err := h.Interviews.CreateRandomSession("", req.Name, req.Email, req.Categories)
	if err != nil {
		rejectInterviewErr(c, err)
		return
	}

	util.Success(c, util.Response{
		"access_token": sess.AccessToken,
		"expires_at":   sess.ExpiresAt,
	})
}

// GetSession returns a candidate-safe session overview.
func (h *PublicHandler) GetSession(c *gin.Context) {
	sess, err := h.Interviews.SessionByToken(c.Param("token"))
	if err != nil {
		rejectInterviewErr(c, err)
		return
	}

	answered, total, err := h.Interviews.Progress(sess.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load progress")
		return
	}

	util.Success(c, util.Response{
		"session": gin.H{
			"candidate_name": sess.CandidateName,
			"title":          sess.Title,
			"state":          sess.State,
			"expires_at":     sess.ExpiresAt,
			"answered":       answered,
			"total":          total,
		},
	})
}

// NextQuestion returns the next unanswered question, or completed=true once
// every bound question has a response.
func (h *PublicHandler) NextQuestion(c *gin.Context) {
	next, err := h.Interviews.Next(c.Param("token"))
	if err != nil {
		rejectInterviewErr(c, err)
		return
	}

	if next == nil {
		util.Success(c, util.Response{"completed": true})
		return
	}

	util.Success(c, util.Response{
		"completed":           false,
		"session_question_id": next.SessionQuestionID,
		"question": gin.H{
			"text":         next.Text,
			"max_duration": next.MaxDuration,
		},
		"position": next.Position,
		"total":    next.Total,
	})
}

// UploadResponse stores the video artifact and records the response, then
// kicks off evaluation in the background. The candidate gets an answer as
// soon as the response row is durable; processing status is polled separately.
func (h *PublicHandler) UploadResponse(c *gin.Context) {
	sessionQuestionID := c.PostForm("session_question_id")
	if sessionQuestionID == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "session_question_id is required")
		return
	}

	file, header, err := c.Request.FormFile("video")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "video file is required")
		return
	}
	defer file.Close()

	videoURL, err := h.Store.Save(file, header.Filename)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	resp, created, err := h.Interviews.Record(c.Param("token"), sessionQuestionID, videoURL)
	if err != nil {
		rejectInterviewErr(c, err)
		return
	}

	// evaluation runs detached; duplicates must not re-trigger it
	if created {
		h.Pipeline.Dispatch(resp.ID)
	}

	util.Success(c, util.Response{
		"response_id": resp.ID,
		"duplicate":   !created,
	})
}

// Submit closes the interview for further candidate actions.
func (h *PublicHandler) Submit(c *gin.Context) {
	if err := h.Interviews.Submit(c.Param("token")); err != nil {
		rejectInterviewErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "interview submitted"})
}

// ResponseStatus reports processing progress for one response.
func (h *PublicHandler) ResponseStatus(c *gin.Context) {
	var resp models.InterviewResponse
	err := h.DB.Where("id = ?", c.Param("id")).First(&resp).Error
	if err == gorm.ErrRecordNotFound {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "response not found")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load response")
		return
	}

	util.Success(c, util.Response{
		"status":        resp.Status,
		"transcript":    resp.Transcript,
		"ai_score":      resp.AIScore,
		"ai_feedback":   resp.AIFeedback,
		"error_message": resp.ErrorMessage,
	})
}
