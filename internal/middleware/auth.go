package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware validates the JWT and puts the current user in the context.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) query parameter ?token=xxx (for export downloads where custom
		// headers are awkward)
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user not found")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
			}
			c.Abort()
			return
		}

		c.Set("currentUser", &user)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after
// AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "insufficient role")
		c.Abort()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
