// Package browse filters a fetched snapshot of resumes in memory.
package browse

import (
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-radar/internal/models"
)

// State is one view of the snapshot. Every transition returns a new State and
// leaves the receiver untouched; All is shared and never modified.
type State struct {
	All     []models.Resume
	Visible []models.Resume

	Search    string
	Skill     string
	Education string
	StartDate *time.Time
	EndDate   *time.Time

	// Location is the zone used to turn upload instants into calendar days.
	Location *time.Location
}

// Loaded replaces the snapshot and shows every record. Filter inputs are kept but not applied.
func (s State) Loaded(records []models.Resume) State {
	if records == nil {
		records = []models.Resume{}
	}
	s.All = records
	s.Visible = records
	return s
}

func (s State) WithSearch(term string) State {
	s.Search = term
	return s
}

func (s State) WithSkill(skill string) State {
	s.Skill = skill
	return s
}

func (s State) WithEducation(education string) State {
	s.Education = education
	return s
}

// WithStartDate sets the first calendar day to include. nil clears the bound.
func (s State) WithStartDate(day *time.Time) State {
	s.StartDate = day
	return s
}

// WithEndDate sets the last calendar day to include. nil clears the bound.
func (s State) WithEndDate(day *time.Time) State {
	s.EndDate = day
	return s
}

// Apply recomputes Visible from All with the current inputs.
func (s State) Apply() State {
	filter := s.filter()
	visible := make([]models.Resume, 0, len(s.All))
	for _, r := range s.All {
		if filter.Match(r) {
			visible = append(visible, r)
		}
	}
	s.Visible = visible
	return s
}

// Reset clears every input and shows the whole snapshot again.
func (s State) Reset() State {
	return State{All: s.All, Visible: s.All, Location: s.Location}
}

// Select returns the record with the given identifier from the snapshot.
func (s State) Select(id uuid.UUID) (models.Resume, bool) {
	for _, r := range s.All {
		if r.ID == id {
			return r, true
		}
	}
	return models.Resume{}, false
}

func (s State) filter() Filter {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return Filter{
		Search:    s.Search,
		Skill:     s.Skill,
		Education: s.Education,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Location:  loc,
	}
}
