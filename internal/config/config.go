package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	OCR      OCRConfig
	Storage  StorageConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	FrontendURL string
}

type DatabaseConfig struct {
	// URL is a Postgres DSN. When empty in development the in-memory store is used.
	URL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OCRConfig struct {
	Engine string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

const (
	OCREngineGemini    = "gemini"
	OCREngineTesseract = "tesseract"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			Env:         getEnv("ENV", "development"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DB_URL", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OCR: OCRConfig{
			Engine: normalizeOCREngine(getEnv("OCR_ENGINE", OCREngineGemini)),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
	}
}

// IsDevelopment reports whether missing infrastructure may be replaced by in-process fakes.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Server.Env) {
	case "development", "dev", "local", "test":
		return true
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func normalizeOCREngine(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case OCREngineTesseract:
		return OCREngineTesseract
	default:
		return OCREngineGemini
	}
}
