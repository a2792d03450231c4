package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-radar/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	return db, mock
}

func TestResumeRepositoryCreateAssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "resumes"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	resume := &models.Resume{
		Name:         "Jane Doe",
		EmailAddress: "jane@x.com",
		Skills:       pq.StringArray{"Python"},
		FileName:     "r.pdf",
		FileSize:     1024,
	}

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resume.ID == uuid.Nil {
		t.Fatalf("expected identifier to be assigned")
	}
	if resume.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestResumeRepositoryCreateWrapsStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "resumes"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Resume{Name: "Jane"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !regexp.MustCompile(`failed to create resume: .*connection reset`).MatchString(err.Error()) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResumeRepositoryFindAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	id := uuid.New()
	uploaded := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "email_address", "skills", "education", "work_experience", "uploaded_at", "created_at", "updated_at"}).
		AddRow(id.String(), "Jane Doe", "jane@x.com", "{Python,Go}", `[{"degree":"BSc"}]`, `[{"job_title":"Engineer"}]`, uploaded, uploaded, uploaded)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "resumes"`)).WillReturnRows(rows)

	resumes, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(resumes) != 1 {
		t.Fatalf("expected 1 resume, got %d", len(resumes))
	}

	got := resumes[0]
	if got.ID != id || got.Name != "Jane Doe" {
		t.Fatalf("unexpected resume %+v", got)
	}
	if len(got.Skills) != 2 || got.Skills[1] != "Go" {
		t.Fatalf("unexpected skills %v", got.Skills)
	}
	if len(got.WorkExperience) != 1 || got.WorkExperience[0].JobTitle != "Engineer" {
		t.Fatalf("unexpected work experience %+v", got.WorkExperience)
	}
	if got.UploadedAt == nil || !got.UploadedAt.Equal(uploaded) {
		t.Fatalf("unexpected uploaded_at %v", got.UploadedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestResumeRepositoryFindAllEmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "resumes"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resumes, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if resumes == nil || len(resumes) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", resumes)
	}
}

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := NewMemoryResumeRepository()
	ctx := context.Background()

	first := &models.Resume{Name: "Jane Doe", EmailAddress: "jane@x.com", Skills: pq.StringArray{"Python"}}
	second := &models.Resume{Name: "Jane Doe", EmailAddress: "jane@x.com", Skills: pq.StringArray{"Python"}}

	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if first.ID == uuid.Nil || second.ID == uuid.Nil || first.ID == second.ID {
		t.Fatalf("expected distinct identifiers, got %s and %s", first.ID, second.ID)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("duplicates must be kept, got %d records", len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID {
		t.Fatalf("expected insertion order")
	}
	if all[0].Name != "Jane Doe" || all[0].Skills[0] != "Python" {
		t.Fatalf("stored record differs: %+v", all[0])
	}
}

func TestMemoryRepositoryKeepsAssignedID(t *testing.T) {
	repo := NewMemoryResumeRepository()
	id := uuid.New()
	resume := &models.Resume{ID: id}

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resume.ID != id {
		t.Fatalf("identifier changed from %s to %s", id, resume.ID)
	}
}

func TestMemoryRepositoryHonoursCancelledContext(t *testing.T) {
	repo := NewMemoryResumeRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Create(ctx, &models.Resume{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := repo.FindAll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
