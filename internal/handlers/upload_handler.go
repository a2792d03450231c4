package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/apperrors"
	"alfredoptarigan/resume-radar/internal/logger"
	"alfredoptarigan/resume-radar/internal/models"
	"alfredoptarigan/resume-radar/internal/services"
)

const uploadFormField = "resume"

type UploadHandler struct {
	intake      *services.IntakeService
	maxFileSize int64
	log         *zap.Logger
}

func NewUploadHandler(intake *services.IntakeService, maxFileSize int64, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		intake:      intake,
		maxFileSize: maxFileSize,
		log:         logger.OrNop(log),
	}
}

// HandleUpload handles POST /api/resumes/upload. The file runs through extraction,
// scoring and field extraction before the merged record is stored.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	// Get file from form
	fileHeader, err := c.FormFile(uploadFormField)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Message: "Please select a PDF or DOCX file",
			Error:   fmt.Sprintf("multipart field %q is required", uploadFormField),
		})
	}

	// Validate file size
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Message: "Resume file too large",
			Error:   fmt.Sprintf("max size: %d bytes", h.maxFileSize),
		})
	}

	// Read file content
	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Message: "Failed to read uploaded file",
			Error:   err.Error(),
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Message: "Failed to read uploaded file",
			Error:   err.Error(),
		})
	}

	// Run the pipeline
	state, err := h.intake.Process(c.UserContext(), services.Upload{
		FileName:     fileHeader.Filename,
		DeclaredType: fileHeader.Header.Get(fiber.HeaderContentType),
		Data:         data,
	}, func(s services.UploadState) {
		h.log.Debug("upload progress", zap.String(logger.FieldFileName, s.FileName), zap.Stringer("phase", s.Phase))
	})
	if err != nil {
		return c.Status(statusForUploadError(err)).JSON(models.UploadErrorResponse{
			Message: messageOf(err),
			Error:   causeOf(err),
			Stage:   state.Stage,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.SaveResumeResponse{
		Message: "Resume saved successfully",
		Resume:  state.Resume,
	})
}

func statusForUploadError(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrTypeUnsupportedFileType:
		return fiber.StatusUnsupportedMediaType
	case apperrors.ErrTypeExtractionFailed, apperrors.ErrTypeAnalysisFailed:
		return fiber.StatusUnprocessableEntity
	case apperrors.ErrTypeInvalidInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func messageOf(err error) string {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return "Failed to process resume"
}

// causeOf returns the underlying error text, without the domain classification prefix.
func causeOf(err error) string {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		if de.Err != nil {
			return de.Err.Error()
		}
		return de.Message
	}
	return err.Error()
}
