package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFParserService reads the text layer of an in-memory PDF.
type PDFParserService interface {
	ExtractText(data []byte) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText implements PDFParserService. Each page's text is collapsed to single
// spaces, pages are joined by newlines and the result is trimmed. A PDF without a text
// layer yields an empty string, not an error.
func (p *pdfParserService) ExtractText(data []byte) (text string, err error) {
	// The pdf package panics on some malformed cross reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	totalPage := r.NumPage()
	pages := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read PDF page %d: %w", pageIndex, err)
		}

		pages = append(pages, JoinTextItems(strings.Fields(pageText)))
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

// JoinTextItems joins the text items of one page with single spaces.
func JoinTextItems(items []string) string {
	return strings.Join(items, " ")
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
