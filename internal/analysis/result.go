package analysis

import (
	"strings"
)

// Levels recognized for audience and difficulty classification.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// PathModule is one group in the suggested learning path.
type PathModule struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ItemIDs     []string `json:"item_ids"`
}

// Result is the normalized output of content analysis. All fields are always
// populated after Fill: collections default to empty, enumerations to their
// documented defaults.
type Result struct {
	Subject          string       `json:"subject"`
	Themes           []string     `json:"themes"`
	AudienceLevel    string       `json:"audience_level"`
	Organization     string       `json:"organization"`
	Objectives       []string     `json:"objectives"`
	Prerequisites    []string     `json:"prerequisites"`
	Path             []PathModule `json:"path"`
	Difficulty       string       `json:"difficulty"`
	EstimatedMinutes int          `json:"estimated_minutes"`
	Degraded         bool         `json:"degraded"`
}

// Fill applies the documented defaults to every empty field so downstream
// synthesis never has to null-check.
func (r *Result) Fill() {
	r.Subject = strings.TrimSpace(r.Subject)
	if r.Subject == "" {
		r.Subject = "General Topics"
	}
	if r.Themes == nil {
		r.Themes = []string{}
	}
	r.AudienceLevel = normalizeLevel(r.AudienceLevel)
	r.Organization = strings.ToLower(strings.TrimSpace(r.Organization))
	if r.Organization == "" {
		r.Organization = "sequential"
	}
	if r.Objectives == nil {
		r.Objectives = []string{}
	}
	if r.Prerequisites == nil {
		r.Prerequisites = []string{}
	}
	if r.Path == nil {
		r.Path = []PathModule{}
	}
	r.Difficulty = normalizeLevel(r.Difficulty)
	if r.EstimatedMinutes < 0 {
		r.EstimatedMinutes = 0
	}
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelBeginner:
		return LevelBeginner
	case LevelAdvanced:
		return LevelAdvanced
	default:
		return LevelIntermediate
	}
}
