package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Resume is one stored analysis result for one uploaded document.
// List-valued and nested fields may be empty; readers treat them as unknown.
type Resume struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id" mapstructure:"-"`

	ATSScore  *float64 `gorm:"type:numeric" json:"ats_score,omitempty" mapstructure:"ats_score"`
	ATSReason string   `gorm:"type:text" json:"ats_reason,omitempty" mapstructure:"ats_reason"`

	Name          string `gorm:"type:text" json:"name,omitempty" mapstructure:"name"`
	ContactNumber string `gorm:"type:text" json:"contact_number,omitempty" mapstructure:"contact_number"`
	EmailAddress  string `gorm:"type:text" json:"email_address,omitempty" mapstructure:"email_address"`
	Location      string `gorm:"type:text" json:"location,omitempty" mapstructure:"location"`

	Skills pq.StringArray `gorm:"type:text[]" json:"skills" mapstructure:"skills"`

	// Education is kept as the model returned it, usually a list of {degree, institution, years}.
	Education      datatypes.JSON                      `gorm:"type:jsonb" json:"education,omitempty" mapstructure:"-"`
	WorkExperience datatypes.JSONSlice[WorkExperience] `gorm:"type:jsonb" json:"work_experience" mapstructure:"work_experience"`

	KeyStrengths            pq.StringArray `gorm:"type:text[]" json:"key_strengths" mapstructure:"key_strengths"`
	Highlights              pq.StringArray `gorm:"type:text[]" json:"highlights" mapstructure:"highlights"`
	SuggestedResumeCategory string         `gorm:"type:text" json:"suggested_resume_category,omitempty" mapstructure:"suggested_resume_category"`
	RecommendedJobRoles     pq.StringArray `gorm:"type:text[]" json:"recommended_job_roles" mapstructure:"recommended_job_roles"`

	NumberOfJobJumps         *int     `gorm:"type:integer" json:"number_of_job_jumps,omitempty" mapstructure:"number_of_job_jumps"`
	AverageJobDurationMonths *float64 `gorm:"type:numeric" json:"average_job_duration_months,omitempty" mapstructure:"average_job_duration_months"`

	RawText    string     `gorm:"type:text" json:"raw_text,omitempty" mapstructure:"raw_text"`
	FileName   string     `gorm:"type:text" json:"file_name,omitempty" mapstructure:"file_name"`
	FileSize   int64      `gorm:"type:bigint" json:"file_size" mapstructure:"file_size"`
	UploadedAt *time.Time `gorm:"type:timestamptz" json:"uploaded_at,omitempty" mapstructure:"-"`

	CreatedAt time.Time `gorm:"type:timestamptz" json:"created_at" mapstructure:"-"`
	UpdatedAt time.Time `gorm:"type:timestamptz" json:"updated_at" mapstructure:"-"`
}

func (Resume) TableName() string {
	return "resumes"
}

type WorkExperience struct {
	JobTitle       string   `json:"job_title,omitempty" mapstructure:"job_title"`
	CompanyName    string   `json:"company_name,omitempty" mapstructure:"company_name"`
	StartDate      string   `json:"start_date,omitempty" mapstructure:"start_date"`
	EndDate        string   `json:"end_date,omitempty" mapstructure:"end_date"`
	DurationMonths *float64 `json:"duration_months,omitempty" mapstructure:"duration_months"`
	Description    string   `json:"description,omitempty" mapstructure:"description"`
}
