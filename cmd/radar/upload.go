package main

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/client"
	"alfredoptarigan/resume-radar/internal/services"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Extract, analyse and save one PDF or DOCX resume",
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

		pipeline, err := services.NewPipeline(cmd.Context(), services.PipelineConfig{
			GeminiAPIKey: cfg.GeminiAPIKey,
			GeminiModel:  cfg.GeminiModel,
			OCREngine:    cfg.OCREngine,
		}, log)
		if err != nil {
			return fmt.Errorf("initializing analysis pipeline: %w", err)
		}

		api := client.New(cfg.BackendURL, nil, log)
		intake := pipeline.Intake(api, nil, log)

		out := cmd.OutOrStdout()
		state, err := intake.Process(cmd.Context(), upload, progressPrinter(out))
		if err != nil {
			log.Debug("upload failed", zap.String("stage", state.Stage), zap.Error(err))
			return err
		}

		return printJSON(out, state.Resume)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func readUpload(path string) (services.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return services.Upload{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return services.Upload{
		FileName:     filepath.Base(path),
		DeclaredType: mime.TypeByExtension(filepath.Ext(path)),
		Data:         data,
	}, nil
}

// progressPrinter renders every pipeline transition as one line of feedback.
func progressPrinter(w io.Writer) func(services.UploadState) {
	return func(s services.UploadState) {
		switch s.Phase {
		case services.PhaseFailed:
			fmt.Fprintf(w, "%s: failed during %s: %v\n", s.FileName, s.Stage, s.Err)
		case services.PhaseDone:
			fmt.Fprintf(w, "%s: Resume saved successfully!\n", s.FileName)
		default:
			suffix := ""
			if s.Loading() {
				suffix = "..."
			}
			fmt.Fprintf(w, "%s: %s%s\n", s.FileName, s.Phase, suffix)
		}
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
