package services

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3})?\s?[\(\.\-]?\d{3}[\)\.\-]?\s?\d{3}[\-\.]?\d{4}`)

	educationKeywords = []string{"B.Tech", "MBA", "Bachelor", "Master", "B.Sc", "M.Sc", "PhD"}
	knownSkills       = []string{"Python", "JavaScript", "React", "Node.js", "MongoDB", "Docker", "AWS", "SQL", "Java"}
	jobTitleKeywords  = []string{"Engineer", "Developer", "Manager"}
)

const heuristicListLimit = 5

// HeuristicProfile is an offline, model-free reading of a resume.
type HeuristicProfile struct {
	Name                  string   `json:"name"`
	Email                 string   `json:"email"`
	Phone                 string   `json:"phone"`
	Skills                []string `json:"skills"`
	Education             []string `json:"education"`
	WorkExperienceSummary []string `json:"work_experience_summary"`
}

// ExtractHeuristics pulls contact details, keyword skills, education lines and
// job title lines out of plain resume text.
func ExtractHeuristics(text string) HeuristicProfile {
	lines := strings.Split(CleanText(text), "\n")

	return HeuristicProfile{
		Name:                  guessName(lines),
		Email:                 emailPattern.FindString(text),
		Phone:                 strings.TrimSpace(phonePattern.FindString(text)),
		Skills:                matchSkills(text),
		Education:             linesContaining(lines, educationKeywords, 0),
		WorkExperienceSummary: linesContaining(lines, jobTitleKeywords, heuristicListLimit),
	}
}

func matchSkills(text string) []string {
	lower := strings.ToLower(text)
	skills := []string{}
	for _, skill := range knownSkills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			skills = append(skills, skill)
			if len(skills) == heuristicListLimit {
				break
			}
		}
	}
	return skills
}

// linesContaining returns trimmed lines holding any keyword, case-sensitively. limit <= 0 means no limit.
func linesContaining(lines []string, keywords []string, limit int) []string {
	out := []string{}
	for _, line := range lines {
		for _, keyword := range keywords {
			if strings.Contains(line, keyword) {
				out = append(out, strings.TrimSpace(line))
				break
			}
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// guessName takes the first short line made only of capitalised words.
func guessName(lines []string) string {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 || !allCapitalised(words) {
			continue
		}
		return strings.Join(words, " ")
	}
	return ""
}

func allCapitalised(words []string) bool {
	for _, word := range words {
		for i, r := range word {
			if i == 0 && !unicode.IsUpper(r) {
				return false
			}
			if !unicode.IsLetter(r) && r != '.' && r != '-' && r != '\'' {
				return false
			}
		}
	}
	return true
}
