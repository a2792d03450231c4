package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-radar/internal/models"
)

// MemoryResumeRepository keeps resumes in process memory, in insertion order.
// It backs development runs without DB_URL and handler tests.
type MemoryResumeRepository struct {
	mu      sync.RWMutex
	resumes []models.Resume
	now     func() time.Time
}

func NewMemoryResumeRepository() *MemoryResumeRepository {
	return &MemoryResumeRepository{now: time.Now}
}

// Create implements ResumeRepository.
func (r *MemoryResumeRepository) Create(ctx context.Context, resume *models.Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	now := r.now().UTC()
	resume.CreatedAt = now
	resume.UpdatedAt = now

	r.resumes = append(r.resumes, *resume)
	return nil
}

// FindAll implements ResumeRepository.
func (r *MemoryResumeRepository) FindAll(ctx context.Context) ([]models.Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Resume, len(r.resumes))
	copy(out, r.resumes)
	return out, nil
}
