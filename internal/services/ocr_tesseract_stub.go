//go:build !tesseract

package services

import "errors"

var ErrTesseractUnavailable = errors.New("tesseract ocr is not compiled in; rebuild with -tags tesseract")

func NewTesseractOCR(language string) (OCREngine, error) {
	return nil, ErrTesseractUnavailable
}
