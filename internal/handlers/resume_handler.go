package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/apperrors"
	"alfredoptarigan/resume-radar/internal/logger"
	"alfredoptarigan/resume-radar/internal/models"
	"alfredoptarigan/resume-radar/internal/repositories"
	"alfredoptarigan/resume-radar/internal/services"
)

type ResumeHandler struct {
	resumeRepo repositories.ResumeRepository
	saver      services.ResumeSaver
	log        *zap.Logger
}

func NewResumeHandler(resumeRepo repositories.ResumeRepository, log *zap.Logger) *ResumeHandler {
	log = logger.OrNop(log)
	return &ResumeHandler{
		resumeRepo: resumeRepo,
		saver:      services.NewRepositorySaver(resumeRepo, log),
		log:        log,
	}
}

// HandleSave handles POST /api/resumes/save
func (h *ResumeHandler) HandleSave(c *fiber.Ctx) error {
	// Parse body, only a JSON object is accepted
	var payload map[string]any
	if err := json.Unmarshal(c.Body(), &payload); err != nil || payload == nil {
		msg := "request body must be a JSON object"
		if err != nil {
			msg = err.Error()
		}
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Message: "Invalid resume payload",
			Error:   msg,
		})
	}

	// Coerce and store
	resume, err := h.saver.SaveResume(c.UserContext(), payload)
	if err != nil {
		h.log.Error("failed to save resume", zap.Error(err))

		status := fiber.StatusInternalServerError
		message := "Failed to save resume"
		if apperrors.Is(err, apperrors.ErrTypeInvalidInput) {
			status = fiber.StatusBadRequest
			message = "Invalid resume payload"
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Message: message,
			Error:   causeOf(err),
		})
	}

	h.log.Info("resume saved", zap.String("id", resume.ID.String()), zap.String(logger.FieldFileName, resume.FileName))

	return c.Status(fiber.StatusCreated).JSON(models.SaveResumeResponse{
		Message: "Resume saved successfully",
		Resume:  resume,
	})
}

// HandleList handles GET /api/resumes/getresumes
func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	resumes, err := h.resumeRepo.FindAll(c.UserContext())
	if err != nil {
		h.log.Error("failed to retrieve resumes", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Message: "Failed to retrieve resumes",
			Error:   err.Error(),
		})
	}

	// Always respond with an array
	if resumes == nil {
		resumes = []models.Resume{}
	}

	return c.JSON(resumes)
}
