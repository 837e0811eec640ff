package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves admin/reviewer login.
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		DB:        db,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid credentials")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid credentials")
		return
	}

	// reviewer accounts must be linked to an organization
	if user.OrganizationID == "" {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user is not linked to an organization")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, user.Role, user.OrganizationID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to issue token")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user": gin.H{
			"id":              user.ID,
			"name":            user.Name,
			"email":           user.Email,
			"role":            user.Role,
			"organization_id": user.OrganizationID,
		},
	})
}

// GetMe returns the authenticated user.
func GetMe(c *gin.Context) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":              user.ID,
			"name":            user.Name,
			"email":           user.Email,
			"role":            user.Role,
			"organization_id": user.OrganizationID,
		},
	})
}
