package middleware

import (
	"bytes"
	"io"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware records admin and reviewer requests so score overrides and
// final decisions leave a trail. Only authenticated requests are logged.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		user := CurrentUser(c)
		if user == nil {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			action += " " + string(bodyBytes)
		}

		log := models.AuditLog{
			UserID:    &user.ID,
			Method:    c.Request.Method,
			Path:      path,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		_ = db.Create(&log).Error
	}
}
