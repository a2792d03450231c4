//go:build tesseract

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

type tesseractOCR struct {
	language string
}

func NewTesseractOCR(language string) (OCREngine, error) {
	return &tesseractOCR{language: language}, nil
}

// Recognize implements OCREngine. Tesseract reads raster images; PDFs must be rasterised first.
func (t *tesseractOCR) Recognize(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("tesseract language %s: %w", t.language, err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("tesseract load %s: %w", mimeType, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognise: %w", err)
	}

	return strings.TrimSpace(text), nil
}
