package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-radar/internal/models"
)

// RegisterRoutes mounts the resume API on app. upload may be nil when no model is configured.
func RegisterRoutes(app *fiber.App, resumes *ResumeHandler, upload *UploadHandler) {
	api := app.Group("/api/resumes")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Resume routes
	api.Post("/save", resumes.HandleSave)
	api.Get("/getresumes", resumes.HandleList)

	endpoints := []string{
		"POST /api/resumes/save",
		"GET /api/resumes/getresumes",
	}
	if upload != nil {
		api.Post("/upload", upload.HandleUpload)
		endpoints = append(endpoints, "POST /api/resumes/upload")
	}

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Resume Radar API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})
}

// ErrorHandler formats errors no handler answered itself.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Message: fiber.NewError(code).Message,
		Error:   err.Error(),
	})
}
