package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/config"
	"alfredoptarigan/resume-radar/internal/logger"
)

// OCREngine recognises text in a scanned document or image.
type OCREngine interface {
	Recognize(ctx context.Context, data []byte, mimeType string) (string, error)
}

type geminiOCR struct {
	gemini  GeminiService
	prompts *PromptBuilder
	log     *zap.Logger
}

// NewGeminiOCR uses the hosted model's document understanding as the OCR engine.
func NewGeminiOCR(gemini GeminiService, log *zap.Logger) OCREngine {
	return &geminiOCR{
		gemini:  gemini,
		prompts: NewPromptBuilder(),
		log:     logger.OrNop(log),
	}
}

// Recognize implements OCREngine.
func (o *geminiOCR) Recognize(ctx context.Context, data []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = mimePDF
	}

	text, err := o.gemini.GenerateFromDocument(ctx, data, mimeType, o.prompts.BuildOCRPrompt())
	if err != nil {
		return "", fmt.Errorf("gemini ocr: %w", err)
	}

	text = strings.TrimSpace(text)
	o.log.Debug("ocr completed", zap.Int("chars", len(text)))
	return text, nil
}

// NewOCREngine builds the engine named by cfg. Tesseract needs the tesseract build tag.
func NewOCREngine(engine string, gemini GeminiService, log *zap.Logger) (OCREngine, error) {
	switch engine {
	case config.OCREngineTesseract:
		return NewTesseractOCR("eng")
	case config.OCREngineGemini, "":
		if gemini == nil {
			return nil, fmt.Errorf("gemini ocr needs a configured gemini client")
		}
		return NewGeminiOCR(gemini, log), nil
	default:
		return nil, fmt.Errorf("unknown ocr engine %q", engine)
	}
}
