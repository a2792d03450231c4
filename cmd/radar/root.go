package main

import (
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/config"
	"alfredoptarigan/resume-radar/internal/logger"
)

const (
	app       = "radar"
	envPrefix = "RADAR"
)

type Config struct {
	BackendURL   string `mapstructure:"backend-url"`
	GeminiAPIKey string `mapstructure:"gemini-api-key"`
	GeminiModel  string `mapstructure:"gemini-model"`
	OCREngine    string `mapstructure:"ocr-engine"`
	Debug        bool   `mapstructure:"debug"`
	JSON         bool   `mapstructure:"json"`
}

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "radar uploads resumes for analysis and browses the analysed records",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("backend-url", "http://localhost:3000")
	viper.SetDefault("gemini-model", "gemini-2.5-flash")
	viper.SetDefault("ocr-engine", config.OCREngineGemini)

	flags := rootCmd.PersistentFlags()
	flags.String("backend-url", "", "resume API base url (env RADAR_BACKEND_URL)")
	flags.String("gemini-api-key", "", "Gemini API key (env RADAR_GEMINI_API_KEY)")
	flags.String("gemini-model", "", "Gemini model name (env RADAR_GEMINI_MODEL)")
	flags.String("ocr-engine", "", "OCR engine for scanned PDFs: gemini or tesseract (env RADAR_OCR_ENGINE)")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")

	for _, key := range []string{"backend-url", "gemini-api-key", "gemini-model", "ocr-engine", "debug", "json"} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			log.Fatalf("binding flag %s: %v", key, err)
		}
	}
}

func getConfig() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setup reads the configuration and builds the logger shared by every subcommand.
func setup() (*Config, *zap.Logger, error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, nil, err
	}

	l, err := logger.New(cfg.JSON, cfg.Debug)
	if err != nil {
		return nil, nil, err
	}

	return cfg, l, nil
}
