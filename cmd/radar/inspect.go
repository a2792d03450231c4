package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/config"
	"alfredoptarigan/resume-radar/internal/services"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Extract text and print an offline, keyword based reading of the resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		upload, err := readUpload(args[0])
		if err != nil {
			return err
		}

		var ocr services.OCREngine
		if cfg.GeminiAPIKey != "" || cfg.OCREngine == config.OCREngineTesseract {
			var gemini services.GeminiService
			if cfg.GeminiAPIKey != "" {
				gemini, err = services.NewGeminiService(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiModel, log)
				if err != nil {
					return err
				}
			}
			if ocr, err = services.NewOCREngine(cfg.OCREngine, gemini, log); err != nil {
				log.Warn("ocr disabled", zap.Error(err))
			}
		}

		extractor := services.NewTextExtractor(services.NewPDFParserService(), services.NewDOCXParserService(), ocr, log)
		text, err := extractor.Extract(cmd.Context(), upload.Data, upload.DeclaredType, upload.FileName)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), services.ExtractHeuristics(text))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
