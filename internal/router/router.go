package router

import (
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/config"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/evaluation"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/handler"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/interview"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/middleware"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/models"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/review"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries the wired collaborators the route handlers need.
type Deps struct {
	Interviews *interview.Service
	Reviews    *review.Service
	Pipeline   *evaluation.Pipeline
	Store      *storage.Local
}

// SetupRouter configures the Gin engine, static uploads and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, deps Deps) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// recorded videos are served straight from the upload directory, under
	// the same mount prefix the artifact store stamps on its references
	r.Static(storage.PublicMount, cfg.Upload.Dir)

	api := r.Group("/api")

	// ====== candidate-facing routes, access token only ======
	publicHandler := handler.NewPublicHandler(db, deps.Interviews, deps.Store, deps.Pipeline)
	public := api.Group("/public")
	public.GET("/templates", publicHandler.ListTemplates)
	public.POST("/sessions", publicHandler.StartTemplateSession)
	public.POST("/sessions/random", publicHandler.StartRandomSession)
	public.GET("/sessions/:token", publicHandler.GetSession)
	public.GET("/sessions/:token/next", publicHandler.NextQuestion)
	public.POST("/sessions/:token/responses", publicHandler.UploadResponse)
	public.POST("/sessions/:token/submit", publicHandler.Submit)
	public.GET("/responses/:id/status", publicHandler.ResponseStatus)

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours)
	api.POST("/auth/login", authHandler.Login)

	// ====== organization admin and reviewer routes ======
	protected := api.Group("/admin")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.RequireRole(models.RoleOrgAdmin, models.RoleReviewer),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)

	adminHandler := handler.NewAdminHandler(db, deps.Interviews, deps.Reviews, deps.Pipeline)
	protected.POST("/questions", adminHandler.CreateQuestion)
	protected.GET("/questions", adminHandler.ListQuestions)
	protected.PATCH("/questions/:id", adminHandler.ToggleQuestion)

	protected.POST("/templates", adminHandler.CreateTemplate)
	protected.GET("/templates", adminHandler.ListTemplates)
	protected.POST("/templates/:id/archive", adminHandler.ArchiveTemplate)
	protected.POST("/templates/:id/restore", adminHandler.RestoreTemplate)

	protected.POST("/sessions", adminHandler.CreatePersonalizedSession)
	protected.GET("/sessions", adminHandler.ListSessions)
	protected.GET("/sessions/:id/responses", adminHandler.SessionResponses)
	protected.POST("/sessions/:id/finalize", adminHandler.FinalizeSession)
	protected.GET("/sessions/:id/export/csv", adminHandler.ExportSessionCSV)
	protected.GET("/sessions/:id/export/xlsx", adminHandler.ExportSessionXLSX)

	protected.GET("/responses", adminHandler.ListResponses)
	protected.POST("/responses/:id/review", adminHandler.ReviewResponse)
	protected.POST("/responses/:id/reprocess", adminHandler.ReprocessResponse)

	return r
}
