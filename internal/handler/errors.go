package handler

import (
	"errors"
	"net/http"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/interview"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// rejectInterviewErr maps interview sentinel errors onto the JSON envelope.
// Unexpected errors become a generic 500 without leaking internals.
func rejectInterviewErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, interview.ErrSessionNotFound),
		errors.Is(err, interview.ErrTemplateNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	case errors.Is(err, interview.ErrQuestionMismatch):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, interview.ErrSessionExpired),
		errors.Is(err, interview.ErrAlreadySubmitted),
		errors.Is(err, interview.ErrActiveSession),
		errors.Is(err, interview.ErrNoQuestions),
		errors.Is(err, interview.ErrDuplicateQuestion),
		errors.Is(err, interview.ErrInvalidTransition):
		util.Error(c, http.StatusConflict, util.CodeConflict, err.Error())
	case errors.Is(err, interview.ErrUnresolvableQuestion):
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}
