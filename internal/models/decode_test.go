package models

import (
	"encoding/json"
	"testing"
	"time"
)

func decodeJSON(t *testing.T, body string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return payload
}

func TestDecodeResumeFullPayload(t *testing.T) {
	payload := decodeJSON(t, `{
		"_id": "should-be-ignored",
		"id": "also-ignored",
		"ats_score": 82.5,
		"ats_reason": "strong match",
		"name": "Jane Doe",
		"contact_number": "+1 555 123 4567",
		"email_address": "jane@x.com",
		"location": "Berlin",
		"skills": ["Python", "Go"],
		"education": [{"degree": "BSc", "institution": "TU", "years": "2010-2014"}],
		"work_experience": [{"job_title": "Engineer", "company_name": "Acme", "start_date": "2019-01", "end_date": "Present", "duration_months": 24, "description": "APIs"}],
		"key_strengths": ["ownership"],
		"highlights": ["shipped v2"],
		"suggested_resume_category": "Backend",
		"recommended_job_roles": ["Backend Engineer"],
		"number_of_job_jumps": 2,
		"average_job_duration_months": 18.5,
		"raw_text": "Jane Doe ...",
		"file_name": "r.pdf",
		"file_size": 1024,
		"uploaded_at": "2025-04-01T00:00:00.000Z",
		"created_at": "1999-01-01T00:00:00Z"
	}`)

	resume, ignored, err := DecodeResume(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ignored) != 0 {
		t.Fatalf("expected nothing ignored, got %v", ignored)
	}

	if resume.ATSScore == nil || *resume.ATSScore != 82.5 {
		t.Fatalf("unexpected ats score %v", resume.ATSScore)
	}
	if resume.Name != "Jane Doe" || resume.EmailAddress != "jane@x.com" || resume.ContactNumber != "+1 555 123 4567" {
		t.Fatalf("unexpected contact fields: %+v", resume)
	}
	if len(resume.Skills) != 2 || resume.Skills[1] != "Go" {
		t.Fatalf("unexpected skills %v", resume.Skills)
	}
	if len(resume.WorkExperience) != 1 || resume.WorkExperience[0].CompanyName != "Acme" {
		t.Fatalf("unexpected work experience %+v", resume.WorkExperience)
	}
	if d := resume.WorkExperience[0].DurationMonths; d == nil || *d != 24 {
		t.Fatalf("unexpected duration %v", d)
	}
	if resume.NumberOfJobJumps == nil || *resume.NumberOfJobJumps != 2 {
		t.Fatalf("unexpected job jumps %v", resume.NumberOfJobJumps)
	}
	if string(resume.Education) != `[{"degree":"BSc","institution":"TU","years":"2010-2014"}]` {
		t.Fatalf("unexpected education %s", resume.Education)
	}
	want := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	if resume.UploadedAt == nil || !resume.UploadedAt.Equal(want) {
		t.Fatalf("unexpected uploaded_at %v", resume.UploadedAt)
	}
	if resume.FileSize != 1024 || resume.FileName != "r.pdf" {
		t.Fatalf("unexpected file metadata %q %d", resume.FileName, resume.FileSize)
	}
	if !resume.CreatedAt.IsZero() {
		t.Fatalf("created_at must not be client controlled")
	}
}

func TestDecodeResumeCoercesLooseTypes(t *testing.T) {
	payload := decodeJSON(t, `{
		"ats_score": "76.3",
		"skills": "Python",
		"file_size": "2048",
		"number_of_job_jumps": 3.0
	}`)

	resume, ignored, err := DecodeResume(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ignored) != 0 {
		t.Fatalf("expected nothing ignored, got %v", ignored)
	}
	if resume.ATSScore == nil || *resume.ATSScore != 76.3 {
		t.Fatalf("expected coerced score, got %v", resume.ATSScore)
	}
	if len(resume.Skills) != 1 || resume.Skills[0] != "Python" {
		t.Fatalf("expected single skill list, got %v", resume.Skills)
	}
	if resume.FileSize != 2048 {
		t.Fatalf("expected coerced file size, got %d", resume.FileSize)
	}
	if resume.NumberOfJobJumps == nil || *resume.NumberOfJobJumps != 3 {
		t.Fatalf("expected coerced job jumps, got %v", resume.NumberOfJobJumps)
	}
}

func TestDecodeResumeIgnoresUncoercibleFields(t *testing.T) {
	payload := decodeJSON(t, `{
		"name": "Jane Doe",
		"ats_score": "very high",
		"uploaded_at": "last tuesday",
		"file_size": 512
	}`)

	resume, ignored, err := DecodeResume(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ignored) != 2 {
		t.Fatalf("expected two ignored fields, got %v", ignored)
	}
	if resume.Name != "Jane Doe" || resume.FileSize != 512 {
		t.Fatalf("expected valid fields to survive, got %+v", resume)
	}
	if resume.ATSScore != nil {
		t.Fatalf("expected score to stay unknown, got %v", *resume.ATSScore)
	}
	if resume.UploadedAt != nil {
		t.Fatalf("expected uploaded_at to stay unknown, got %v", resume.UploadedAt)
	}
}

func TestDecodeResumeDropsUncoercibleListElements(t *testing.T) {
	payload := decodeJSON(t, `{
		"skills": [{"name": "Go"}, "Python", ""],
		"recommended_job_roles": [["nested"], "Backend Engineer"]
	}`)

	resume, ignored, err := DecodeResume(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ignored) == 0 {
		t.Fatalf("expected the object element to be reported as ignored")
	}
	if len(resume.Skills) != 1 || resume.Skills[0] != "Python" {
		t.Fatalf("expected only Python to survive, got %q", resume.Skills)
	}
	if len(resume.RecommendedJobRoles) != 1 || resume.RecommendedJobRoles[0] != "Backend Engineer" {
		t.Fatalf("unexpected roles %q", resume.RecommendedJobRoles)
	}
}

func TestDecodeResumeMissingListsStayEmpty(t *testing.T) {
	resume, ignored, err := DecodeResume(map[string]any{"name": "No Lists"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ignored) != 0 {
		t.Fatalf("unexpected ignored %v", ignored)
	}
	if resume.Skills != nil || resume.WorkExperience != nil || resume.Education != nil {
		t.Fatalf("expected absent collections to stay nil: %+v", resume)
	}
}

func TestDecodeATSResult(t *testing.T) {
	result, ignored, err := DecodeATSResult(map[string]any{"ats_score": "88.1", "reason": "solid"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ignored) != 0 {
		t.Fatalf("unexpected ignored %v", ignored)
	}
	if result.ATSScore != 88.1 || result.Reason != "solid" {
		t.Fatalf("unexpected result %+v", result)
	}
}
