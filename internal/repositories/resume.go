package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-radar/internal/models"
)

// ResumeRepository persists analysed resumes. Records are insert-only.
type ResumeRepository interface {
	Create(ctx context.Context, resume *models.Resume) error
	FindAll(ctx context.Context) ([]models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(ctx context.Context, resume *models.Resume) error {
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	return nil
}

// FindAll implements ResumeRepository. Rows come back in storage order.
func (r *resumeRepository) FindAll(ctx context.Context) ([]models.Resume, error) {
	resumes := []models.Resume{}
	if err := r.db.WithContext(ctx).Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to find resumes: %w", err)
	}

	return resumes, nil
}
