package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// PipelineConfig names the model and OCR engine used for analysis.
type PipelineConfig struct {
	GeminiAPIKey string
	GeminiModel  string
	OCREngine    string
}

// Pipeline holds the collaborators that turn a document into a merged record.
type Pipeline struct {
	Extractor TextExtractor
	Analyzer  ResumeAnalyzer
}

func NewPipeline(ctx context.Context, cfg PipelineConfig, log *zap.Logger) (*Pipeline, error) {
	gemini, err := NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	if err != nil {
		return nil, err
	}

	ocr, err := NewOCREngine(cfg.OCREngine, gemini, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ocr engine: %w", err)
	}

	return &Pipeline{
		Extractor: NewTextExtractor(NewPDFParserService(), NewDOCXParserService(), ocr, log),
		Analyzer:  NewResumeAnalyzer(gemini, log),
	}, nil
}

// Intake binds the pipeline to a saver and an optional archive.
func (p *Pipeline) Intake(saver ResumeSaver, storage StorageService, log *zap.Logger) *IntakeService {
	return NewIntakeService(p.Extractor, p.Analyzer, saver, storage, log)
}
