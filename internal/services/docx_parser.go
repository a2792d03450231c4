package services

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// DOCXParserService reads the body text of an in-memory Word document.
type DOCXParserService interface {
	ExtractText(data []byte) (string, error)
}

type docxParserService struct{}

func NewDOCXParserService() DOCXParserService {
	return &docxParserService{}
}

// ExtractText implements DOCXParserService. Paragraph and line breaks become newlines.
func (d *docxParserService) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	text, err := stripWordML(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX body: %w", err)
	}

	return strings.TrimSpace(text), nil
}

func stripWordML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}

	return buf.String(), nil
}
