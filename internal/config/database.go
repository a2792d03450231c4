package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-radar/internal/models"
)

func InitDatabase(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DB_URL is empty")
	}

	logLevel := logger.Silent
	if cfg.IsDevelopment() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("database connected")

	if err := db.AutoMigrate(&models.Resume{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database migration completed")

	return db, nil
}
