package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/ai/gemini"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/config"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/database"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/evaluation"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/interview"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/logger"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/review"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/router"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/storage"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/transcribe"

	"go.uber.org/zap"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		zl.Fatal("create data dir", zap.Error(err))
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		zl.Fatal("init database", zap.Error(err))
	}

	// run migrations and seed the default organization and admin
	if err := database.AutoMigrate(db); err != nil {
		zl.Fatal("migrate database", zap.Error(err))
	}
	if err := database.Seed(db, cfg.Seed); err != nil {
		zl.Fatal("seed database", zap.Error(err))
	}

	store, err := storage.NewLocal(cfg.Upload.Dir, cfg.Upload.MaxSizeMB)
	if err != nil {
		zl.Fatal("init upload storage", zap.Error(err))
	}

	client, err := gemini.NewClient(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	if err != nil {
		zl.Fatal("init gemini client", zap.Error(err))
	}
	scorer := gemini.NewScorer(client, zl)
	transcriber := transcribe.New(cfg.AI.FFmpegPath, cfg.AI.WhisperPath, cfg.AI.WhisperModel, cfg.Upload.Dir)

	pipeline := evaluation.NewPipeline(db, transcriber, scorer, zl,
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second)

	deps := router.Deps{
		Interviews: interview.NewService(db, cfg.Session),
		Reviews:    review.NewService(db),
		Pipeline:   pipeline,
		Store:      store,
	}

	r := router.SetupRouter(cfg, db, deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	zl.Info("server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zl.Fatal("run server", zap.Error(err))
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
