package browse

import (
	"strings"
	"time"

	"alfredoptarigan/resume-radar/internal/models"
)

// Filter is a conjunction of case-insensitive substring predicates and an inclusive day range.
// Empty inputs match everything.
type Filter struct {
	Search    string
	Skill     string
	Education string
	StartDate *time.Time
	EndDate   *time.Time
	Location  *time.Location
}

func (f Filter) Match(r models.Resume) bool {
	return f.matchSearch(r) && f.matchSkill(r) && f.matchEducation(r) && f.matchDates(r)
}

// matchSearch checks name, email and recommended roles.
func (f Filter) matchSearch(r models.Resume) bool {
	if f.Search == "" {
		return true
	}
	if containsFold(r.Name, f.Search) || containsFold(r.EmailAddress, f.Search) {
		return true
	}
	return anyContainsFold(r.RecommendedJobRoles, f.Search)
}

func (f Filter) matchSkill(r models.Resume) bool {
	if f.Skill == "" {
		return true
	}
	return anyContainsFold(r.Skills, f.Skill)
}

// matchEducation searches the serialized education value, whatever its shape.
func (f Filter) matchEducation(r models.Resume) bool {
	if f.Education == "" {
		return true
	}
	if len(r.Education) == 0 {
		return false
	}
	return containsFold(string(r.Education), f.Education)
}

func (f Filter) matchDates(r models.Resume) bool {
	if f.StartDate == nil && f.EndDate == nil {
		return true
	}
	if r.UploadedAt == nil {
		return false
	}

	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	day := StartOfDay(*r.UploadedAt, loc)

	if f.StartDate != nil && day.Before(StartOfDay(*f.StartDate, loc)) {
		return false
	}
	if f.EndDate != nil && day.After(EndOfDay(*f.EndDate, loc)) {
		return false
	}
	return true
}

// StartOfDay is 00:00:00 of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay is 23:59:59 of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, loc)
}

// ParseDay reads a YYYY-MM-DD calendar day in loc.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(value), loc)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyContainsFold(values []string, substr string) bool {
	for _, v := range values {
		if containsFold(v, substr) {
			return true
		}
	}
	return false
}
