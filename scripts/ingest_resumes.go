package main

import (
	"context"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/config"
	"alfredoptarigan/resume-radar/internal/logger"
	"alfredoptarigan/resume-radar/internal/repositories"
	"alfredoptarigan/resume-radar/internal/services"
)

// Bulk-ingests every PDF and DOCX in a directory straight into the database.
// Usage: go run scripts/ingest_resumes.go [dir]
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	dir := "./resumes"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	repo := repositories.NewResumeRepository(db)

	pipeline, err := services.NewPipeline(ctx, services.PipelineConfig{
		GeminiAPIKey: cfg.Gemini.APIKey,
		GeminiModel:  cfg.Gemini.Model,
		OCREngine:    cfg.OCR.Engine,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize analysis pipeline", zap.Error(err))
	}

	storage := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storage.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	intake := pipeline.Intake(services.NewRepositorySaver(repo, log), storage, log)

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatal("failed to read resume directory", zap.String("dir", dir), zap.Error(err))
	}

	log.Info("starting resume ingestion", zap.String("dir", dir), zap.Int("entries", len(entries)))

	successCount := 0
	failCount := 0
	skipCount := 0

	for _, entry := range entries {
		if ctx.Err() != nil {
			log.Warn("ingestion interrupted")
			break
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".pdf" && ext != ".docx") {
			skipCount++
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error("failed to read file", zap.String(logger.FieldFileName, path), zap.Error(err))
			failCount++
			continue
		}

		state, err := intake.Process(ctx, services.Upload{
			FileName:     entry.Name(),
			DeclaredType: mime.TypeByExtension(ext),
			Data:         data,
		}, nil)
		if err != nil {
			log.Error("failed to ingest resume",
				zap.String(logger.FieldFileName, entry.Name()),
				zap.String(logger.FieldStage, state.Stage),
				zap.Error(err),
			)
			failCount++
			continue
		}

		log.Info("resume ingested",
			zap.String(logger.FieldFileName, entry.Name()),
			zap.String("id", state.Resume.ID.String()),
			zap.Any("ats_score", state.Resume.ATSScore),
		)
		successCount++
	}

	log.Info("ingestion summary",
		zap.Int("successful", successCount),
		zap.Int("failed", failCount),
		zap.Int("skipped", skipCount),
	)

	if failCount > 0 {
		os.Exit(1)
	}
}
