package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/logger"
	"alfredoptarigan/resume-radar/internal/models"
)

const (
	StageUnsupported = "unsupported"
	StageExtraction  = "extraction"
	StageScore       = "score"
	StageFields      = "fields"
	StageStore       = "store"
)

const (
	scoreTemperature  float32 = 0.7
	fieldsTemperature float32 = 0.2
)

// AnalysisError is the inline failure of one analyzer call.
type AnalysisError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s analysis failed: %s", e.Stage, e.Message)
}

type ScoreStatus int

const (
	// ScoreSkipped means there was no text to score and no model call was made.
	ScoreSkipped ScoreStatus = iota
	Scored
	ScoreFailed
)

func (s ScoreStatus) String() string {
	switch s {
	case Scored:
		return "scored"
	case ScoreFailed:
		return "score_failed"
	default:
		return "skipped"
	}
}

// ScoreOutcome is the result of the score call. Score is nil when the model omitted it.
type ScoreOutcome struct {
	Status ScoreStatus
	Score  *float64
	Reason string
	Err    *AnalysisError
}

// FileMeta is the ingestion metadata attached to every merged record.
type FileMeta struct {
	Name       string
	Size       int64
	UploadedAt time.Time
}

type ResumeAnalyzer interface {
	Score(ctx context.Context, resumeText string) ScoreOutcome
	Fields(ctx context.Context, resumeText string) (map[string]any, *AnalysisError)
}

type resumeAnalyzer struct {
	gemini  GeminiService
	prompts *PromptBuilder
	log     *zap.Logger
}

func NewResumeAnalyzer(gemini GeminiService, log *zap.Logger) ResumeAnalyzer {
	return &resumeAnalyzer{
		gemini:  gemini,
		prompts: NewPromptBuilder(),
		log:     logger.OrNop(log),
	}
}

// Score implements ResumeAnalyzer.
func (a *resumeAnalyzer) Score(ctx context.Context, resumeText string) ScoreOutcome {
	if strings.TrimSpace(resumeText) == "" {
		return ScoreOutcome{Status: ScoreSkipped}
	}

	parsed, aerr := a.call(ctx, StageScore, a.prompts.BuildATSScorePrompt(resumeText), scoreTemperature)
	if aerr != nil {
		return ScoreOutcome{Status: ScoreFailed, Err: aerr}
	}

	result, ignored, err := models.DecodeATSResult(parsed)
	if err != nil {
		return ScoreOutcome{Status: ScoreFailed, Err: &AnalysisError{Stage: StageScore, Message: err.Error()}}
	}

	outcome := ScoreOutcome{Status: Scored, Reason: result.Reason}
	if _, present := parsed["ats_score"]; present && !containsField(ignored, "ats_score") {
		score := result.ATSScore
		outcome.Score = &score
	}

	a.log.Debug("resume scored", zap.Any("ats_score", outcome.Score))
	return outcome
}

// Fields implements ResumeAnalyzer.
func (a *resumeAnalyzer) Fields(ctx context.Context, resumeText string) (map[string]any, *AnalysisError) {
	return a.call(ctx, StageFields, a.prompts.BuildResumeFieldsPrompt(resumeText), fieldsTemperature)
}

func (a *resumeAnalyzer) call(ctx context.Context, stage, prompt string, temperature float32) (map[string]any, *AnalysisError) {
	response, err := a.gemini.GenerateText(ctx, prompt, temperature)
	if err != nil {
		a.log.Warn("model call failed", zap.String(logger.FieldStage, stage), zap.Error(err))
		return nil, &AnalysisError{Stage: stage, Message: err.Error()}
	}

	parsed, err := ParseModelJSON(response)
	if err != nil {
		a.log.Warn("model response is not valid JSON",
			zap.String(logger.FieldStage, stage),
			zap.String("response", logger.TruncateForLog(response, 300)),
			zap.Error(err),
		)
		return nil, &AnalysisError{Stage: stage, Message: err.Error()}
	}

	return parsed, nil
}

// StripCodeFences removes markdown code fence markers from a model response.
func StripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// ParseModelJSON strips code fences and parses the response as a JSON object.
func ParseModelJSON(response string) (map[string]any, error) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(StripCodeFences(response)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	if parsed == nil {
		return nil, fmt.Errorf("model response is not a JSON object")
	}
	return parsed, nil
}

// MergeRecord layers the score and the file metadata over the extracted fields.
// Later layers win on key collisions. A missing score drops any ats_score the
// fields call produced.
func MergeRecord(fields map[string]any, score ScoreOutcome, rawText string, meta FileMeta) map[string]any {
	record := make(map[string]any, len(fields)+6)
	for k, v := range fields {
		record[k] = v
	}

	if score.Score != nil {
		record["ats_score"] = *score.Score
	} else {
		delete(record, "ats_score")
	}
	record["ats_reason"] = score.Reason

	record["raw_text"] = rawText
	record["file_name"] = meta.Name
	record["file_size"] = meta.Size
	record["uploaded_at"] = meta.UploadedAt.UTC().Format(time.RFC3339Nano)

	return record
}

func containsField(ignored []string, field string) bool {
	needle := "'" + field + "'"
	for _, msg := range ignored {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
