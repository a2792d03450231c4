package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"alfredoptarigan/resume-radar/internal/models"
)

type fakeGemini struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	prompts   []string
	documents int
}

func (f *fakeGemini) next() (string, error) {
	idx := len(f.prompts) - 1
	var resp string
	var err error
	if idx < len(f.responses) {
		resp = f.responses[idx]
	}
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	return resp, err
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.next()
}

func (f *fakeGemini) GenerateFromDocument(ctx context.Context, data []byte, mimeType, instruction string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents++
	f.prompts = append(f.prompts, instruction)
	return f.next()
}

type fakeParser struct {
	text  string
	err   error
	calls int
}

func (f *fakeParser) ExtractText(data []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeOCR struct {
	text     string
	err      error
	calls    int
	mimeType string
}

func (f *fakeOCR) Recognize(ctx context.Context, data []byte, mimeType string) (string, error) {
	f.calls++
	f.mimeType = mimeType
	return f.text, f.err
}

type fakeAnalyzer struct {
	score       ScoreOutcome
	fields      map[string]any
	fieldsErr   *AnalysisError
	scoreCalls  int
	fieldsCalls int
}

func (f *fakeAnalyzer) Score(ctx context.Context, resumeText string) ScoreOutcome {
	f.scoreCalls++
	return f.score
}

func (f *fakeAnalyzer) Fields(ctx context.Context, resumeText string) (map[string]any, *AnalysisError) {
	f.fieldsCalls++
	return f.fields, f.fieldsErr
}

type fakeSaver struct {
	records []map[string]any
	err     error
}

func (f *fakeSaver) SaveResume(ctx context.Context, record map[string]any) (*models.Resume, error) {
	f.records = append(f.records, record)
	if f.err != nil {
		return nil, f.err
	}
	resume, _, err := models.DecodeResume(record)
	return resume, err
}

type fakeTextExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeTextExtractor) Extract(ctx context.Context, data []byte, declaredType, fileName string) (string, error) {
	f.calls++
	return f.text, f.err
}

var errBoom = errors.New("boom")

// janeDoeText holds the "Jane Doe, Python, 5 years" resume padded past the OCR threshold.
var janeDoeText = "Jane Doe, Python, 5 years. " + strings.Repeat("Backend services and APIs. ", 2)
