package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/config"
	"alfredoptarigan/resume-radar/internal/handlers"
	"alfredoptarigan/resume-radar/internal/logger"
	"alfredoptarigan/resume-radar/internal/repositories"
	"alfredoptarigan/resume-radar/internal/services"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("config loaded", zap.String("env", cfg.Server.Env), zap.String("ocr_engine", cfg.OCR.Engine))

	resumeRepo, err := newResumeRepository(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize resume store", zap.Error(err))
	}

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resumeHandler := handlers.NewResumeHandler(resumeRepo, log)

	var uploadHandler *handlers.UploadHandler
	pipeline, err := services.NewPipeline(ctx, services.PipelineConfig{
		GeminiAPIKey: cfg.Gemini.APIKey,
		GeminiModel:  cfg.Gemini.Model,
		OCREngine:    cfg.OCR.Engine,
	}, log)
	if err != nil {
		log.Warn("upload endpoint disabled", zap.Error(err))
	} else {
		intake := pipeline.Intake(services.NewRepositorySaver(resumeRepo, log), storageService, log)
		uploadHandler = handlers.NewUploadHandler(intake, cfg.Storage.MaxFileSize, log)
		log.Info("upload pipeline initialized", zap.String(logger.FieldModel, cfg.Gemini.Model))
	}

	app := fiber.New(fiber.Config{
		AppName:      "Resume Radar API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.FrontendURL,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(app, resumeHandler, uploadHandler)

	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// newResumeRepository uses Postgres when DB_URL is set. Development runs without it keep records in memory.
func newResumeRepository(cfg *config.Config, log *zap.Logger) (repositories.ResumeRepository, error) {
	if cfg.Database.URL == "" && cfg.IsDevelopment() {
		log.Warn("DB_URL is empty, using in-memory resume store")
		return repositories.NewMemoryResumeRepository(), nil
	}

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	return repositories.NewResumeRepository(db), nil
}
