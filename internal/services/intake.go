package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/apperrors"
	"alfredoptarigan/resume-radar/internal/logger"
	"alfredoptarigan/resume-radar/internal/models"
	"alfredoptarigan/resume-radar/internal/repositories"
)

type UploadPhase int

const (
	PhaseIdle UploadPhase = iota
	PhaseSelected
	PhaseExtracting
	PhaseAnalyzing
	PhaseSaving
	PhaseDone
	PhaseFailed
)

func (p UploadPhase) String() string {
	switch p {
	case PhaseSelected:
		return "selected"
	case PhaseExtracting:
		return "extracting"
	case PhaseAnalyzing:
		return "analyzing"
	case PhaseSaving:
		return "saving"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// UploadState is the feedback shown while one file moves through the pipeline.
// Transitions return a new value.
type UploadState struct {
	Phase    UploadPhase
	FileName string
	Stage    string
	Err      error
	Resume   *models.Resume
}

func (s UploadState) Selected(fileName string) UploadState {
	return UploadState{Phase: PhaseSelected, FileName: fileName}
}

func (s UploadState) Extracting() UploadState {
	s.Phase = PhaseExtracting
	return s
}

func (s UploadState) Analyzing() UploadState {
	s.Phase = PhaseAnalyzing
	return s
}

func (s UploadState) Saving() UploadState {
	s.Phase = PhaseSaving
	return s
}

func (s UploadState) Done(resume *models.Resume) UploadState {
	s.Phase = PhaseDone
	s.Resume = resume
	return s
}

func (s UploadState) Failed(stage string, err error) UploadState {
	s.Phase = PhaseFailed
	s.Stage = stage
	s.Err = err
	return s
}

// Loading reports whether a pipeline step is in flight.
func (s UploadState) Loading() bool {
	return s.Phase == PhaseExtracting || s.Phase == PhaseAnalyzing || s.Phase == PhaseSaving
}

// ResumeSaver persists a merged record and returns what was stored.
type ResumeSaver interface {
	SaveResume(ctx context.Context, record map[string]any) (*models.Resume, error)
}

type repositorySaver struct {
	repo repositories.ResumeRepository
	log  *zap.Logger
}

// NewRepositorySaver decodes records the same way the save endpoint does and stores them directly.
func NewRepositorySaver(repo repositories.ResumeRepository, log *zap.Logger) ResumeSaver {
	return &repositorySaver{repo: repo, log: logger.OrNop(log)}
}

// SaveResume implements ResumeSaver.
func (s *repositorySaver) SaveResume(ctx context.Context, record map[string]any) (*models.Resume, error) {
	resume, ignored, err := models.DecodeResume(record)
	if err != nil {
		return nil, apperrors.InvalidInput("failed to decode resume", err)
	}
	if len(ignored) > 0 {
		s.log.Debug("ignored resume fields", zap.Strings("fields", ignored))
	}

	if err := s.repo.Create(ctx, resume); err != nil {
		return nil, apperrors.StoreFailed("Failed to save resume", err)
	}

	return resume, nil
}

// Upload is one selected file.
type Upload struct {
	FileName     string
	DeclaredType string
	Data         []byte
}

// IntakeService runs extraction, scoring, field extraction and saving for one file, in order.
type IntakeService struct {
	extractor TextExtractor
	analyzer  ResumeAnalyzer
	saver     ResumeSaver
	storage   StorageService
	now       func() time.Time
	log       *zap.Logger
}

// NewIntakeService wires the pipeline. storage may be nil, in which case originals are not archived.
func NewIntakeService(extractor TextExtractor, analyzer ResumeAnalyzer, saver ResumeSaver, storage StorageService, log *zap.Logger) *IntakeService {
	return &IntakeService{
		extractor: extractor,
		analyzer:  analyzer,
		saver:     saver,
		storage:   storage,
		now:       time.Now,
		log:       logger.OrNop(log),
	}
}

// Process runs the pipeline. observe, when non-nil, receives every state transition.
// The returned state is Done with the stored resume, or Failed with the stage that stopped it.
func (s *IntakeService) Process(ctx context.Context, upload Upload, observe func(UploadState)) (UploadState, error) {
	log := s.log.With(zap.String(logger.FieldFileName, upload.FileName))
	emit := func(state UploadState) UploadState {
		if observe != nil {
			observe(state)
		}
		return state
	}
	fail := func(state UploadState, stage string, err error) (UploadState, error) {
		log.Warn("upload failed", zap.String(logger.FieldStage, stage), zap.Error(err))
		return emit(state.Failed(stage, err)), err
	}

	state := emit(UploadState{}.Selected(upload.FileName))

	if DetectKind(upload.DeclaredType, upload.FileName) == KindUnsupported {
		return fail(state, StageUnsupported, apperrors.UnsupportedFileType("Please select a PDF or DOCX file", nil))
	}

	state = emit(state.Extracting())
	text, err := s.extractor.Extract(ctx, upload.Data, upload.DeclaredType, upload.FileName)
	if err != nil {
		stage := StageExtraction
		if apperrors.Is(err, apperrors.ErrTypeUnsupportedFileType) {
			stage = StageUnsupported
		}
		return fail(state, stage, err)
	}

	state = emit(state.Analyzing())
	score := s.analyzer.Score(ctx, text)
	switch score.Status {
	case ScoreSkipped:
		return fail(state, StageExtraction, apperrors.ExtractionFailed("no text could be extracted from the document", nil))
	case ScoreFailed:
		return fail(state, StageScore, apperrors.AnalysisFailed("Error retrieving ATS score.", score.Err))
	}

	fields, aerr := s.analyzer.Fields(ctx, text)
	if aerr != nil {
		return fail(state, StageFields, apperrors.AnalysisFailed("Error retrieving full resume analysis.", aerr))
	}

	record := MergeRecord(fields, score, text, FileMeta{
		Name:       upload.FileName,
		Size:       int64(len(upload.Data)),
		UploadedAt: s.now(),
	})

	state = emit(state.Saving())
	archived := s.archive(upload, log)

	resume, err := s.saver.SaveResume(ctx, record)
	if err != nil {
		// Drop the archived original, the record it belongs to was never stored
		s.discard(archived, log)

		var de *apperrors.DomainError
		if !errors.As(err, &de) {
			err = apperrors.StoreFailed("Failed to save resume", err)
		}
		return fail(state, StageStore, err)
	}

	log.Info("resume stored", zap.String("id", resume.ID.String()))
	return emit(state.Done(resume)), nil
}

// archive stores the original upload and returns its stored name, or "" when
// there is no storage or the write failed.
func (s *IntakeService) archive(upload Upload, log *zap.Logger) string {
	if s.storage == nil {
		return ""
	}
	name, _, err := s.storage.SaveFile(upload.FileName, upload.Data)
	if err != nil {
		log.Warn("failed to archive original", zap.Error(err))
		return ""
	}
	log.Debug("original archived", zap.String("stored_as", name))
	return name
}

func (s *IntakeService) discard(name string, log *zap.Logger) {
	if s.storage == nil || name == "" {
		return
	}
	if err := s.storage.DeleteFile(name); err != nil {
		log.Warn("failed to remove archived original", zap.String("stored_as", name), zap.Error(err))
	}
}
