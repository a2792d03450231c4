package services

import (
	"context"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/apperrors"
	"alfredoptarigan/resume-radar/internal/logger"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// MinNativeTextLength is the shortest PDF text layer accepted without OCR.
	MinNativeTextLength = 50
)

type DocumentKind int

const (
	KindUnsupported DocumentKind = iota
	KindPDF
	KindDOCX
)

func (k DocumentKind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindDOCX:
		return "docx"
	default:
		return "unsupported"
	}
}

// MimeType returns the canonical media type of the kind.
func (k DocumentKind) MimeType() string {
	switch k {
	case KindPDF:
		return mimePDF
	case KindDOCX:
		return mimeDOCX
	default:
		return "application/octet-stream"
	}
}

// DetectKind classifies a document by its declared media type, then by extension.
func DetectKind(declaredType, fileName string) DocumentKind {
	mediaType := strings.ToLower(strings.TrimSpace(declaredType))
	if parsed, _, err := mime.ParseMediaType(declaredType); err == nil {
		mediaType = parsed
	}

	switch mediaType {
	case mimePDF:
		return KindPDF
	case mimeDOCX:
		return KindDOCX
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	}

	return KindUnsupported
}

type TextExtractor interface {
	Extract(ctx context.Context, data []byte, declaredType, fileName string) (string, error)
}

type textExtractor struct {
	pdf  PDFParserService
	docx DOCXParserService
	ocr  OCREngine
	log  *zap.Logger
}

func NewTextExtractor(pdf PDFParserService, docx DOCXParserService, ocr OCREngine, log *zap.Logger) TextExtractor {
	return &textExtractor{
		pdf:  pdf,
		docx: docx,
		ocr:  ocr,
		log:  logger.OrNop(log),
	}
}

// Extract implements TextExtractor.
func (e *textExtractor) Extract(ctx context.Context, data []byte, declaredType, fileName string) (string, error) {
	kind := DetectKind(declaredType, fileName)
	log := e.log.With(zap.String(logger.FieldFileName, fileName), zap.Stringer("kind", kind))

	switch kind {
	case KindPDF:
		return e.extractPDF(ctx, data, log)
	case KindDOCX:
		text, err := e.docx.ExtractText(data)
		if err != nil {
			log.Warn("docx extraction failed", zap.Error(err))
			return "", apperrors.ExtractionFailed("failed to read DOCX document", err)
		}
		return text, nil
	default:
		return "", apperrors.UnsupportedFileType("Please select a PDF or DOCX file", nil)
	}
}

func (e *textExtractor) extractPDF(ctx context.Context, data []byte, log *zap.Logger) (string, error) {
	text, err := e.pdf.ExtractText(data)
	switch {
	case err != nil:
		log.Warn("pdf extraction failed, falling back to OCR", zap.Error(err))
	case utf8.RuneCountInString(text) < MinNativeTextLength:
		log.Info("pdf text layer too short, falling back to OCR", zap.Int("chars", utf8.RuneCountInString(text)))
	default:
		return text, nil
	}

	if e.ocr == nil {
		return "", apperrors.ExtractionFailed("PDF has no usable text and no OCR engine is configured", err)
	}

	ocrText, ocrErr := e.ocr.Recognize(ctx, data, mimePDF)
	if ocrErr != nil {
		log.Warn("ocr failed", zap.Error(ocrErr))
		return "", apperrors.ExtractionFailed("failed to recognise text in PDF", ocrErr)
	}

	return strings.TrimSpace(ocrText), nil
}
