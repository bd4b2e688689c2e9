package synthesis

import (
	"errors"
	"fmt"
	"strings"

	"coursegen/internal/analysis"
	"coursegen/internal/playlist"
)

// ErrSynthesisImpossible marks an empty item sequence reaching synthesis.
var ErrSynthesisImpossible = errors.New("synthesis impossible")

// Input carries everything one synthesis call consumes.
type Input struct {
	Items         []playlist.Item
	Analysis      analysis.Result
	PlaylistTitle string
}

// Options holds the synthesis policy constants.
type Options struct {
	MinModules             int
	MaxModules             int
	MaxAssignments         int
	ExamMinutesPerQuestion int
}

func (o Options) withDefaults() Options {
	if o.MinModules <= 0 {
		o.MinModules = 3
	}
	if o.MaxModules < o.MinModules {
		o.MaxModules = 6
	}
	if o.MaxAssignments <= 0 {
		o.MaxAssignments = 3
	}
	if o.ExamMinutesPerQuestion <= 0 {
		o.ExamMinutesPerQuestion = 30
	}
	return o
}

// Strategy synthesizes one course variant from the shared inputs.
type Strategy interface {
	Name() Format
	Synthesize(input Input) (*Course, error)
}

// New returns the strategy for the requested format.
func New(format Format, opts Options) (Strategy, error) {
	opts = opts.withDefaults()
	switch format {
	case FormatStandard:
		return &standardStrategy{opts: opts}, nil
	case FormatEnhanced:
		return &enhancedStrategy{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown course format %q", format)
	}
}

// courseShell builds the variant-independent course metadata. The analysis
// result is assumed Filled, so no field needs a null check here.
func courseShell(input Input, format Format) Course {
	title := strings.TrimSpace(input.PlaylistTitle)
	if title == "" {
		title = input.Analysis.Subject + " Course"
	}
	return Course{
		Format:           format,
		Title:            title,
		Description:      courseDescription(input.Analysis, len(input.Items)),
		Category:         input.Analysis.Subject,
		Level:            input.Analysis.AudienceLevel,
		Tags:             append([]string{}, input.Analysis.Themes...),
		EstimatedMinutes: estimatedMinutes(input),
		Prerequisites:    append([]string{}, input.Analysis.Prerequisites...),
		Objectives:       append([]string{}, input.Analysis.Objectives...),
		DegradedAnalysis: input.Analysis.Degraded,
	}
}

func courseDescription(result analysis.Result, itemCount int) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("A %s %s course built from %d videos.",
		result.AudienceLevel, result.Subject, itemCount))
	if len(result.Themes) > 0 {
		builder.WriteString(" Covers " + strings.Join(result.Themes, ", ") + ".")
	}
	return builder.String()
}

func estimatedMinutes(input Input) int {
	if input.Analysis.EstimatedMinutes > 0 {
		return input.Analysis.EstimatedMinutes
	}
	total := 0
	for _, item := range input.Items {
		total += item.DurationMinutes
	}
	// Study time is assumed at twice the watch time.
	return total * 2
}

func groupMinutes(items []playlist.Item) int {
	total := 0
	for _, item := range items {
		total += item.DurationMinutes
	}
	return total
}

// sliceAcross distributes values across moduleCount buckets in order, so each
// module receives a contiguous, roughly even share. Modules past the value
// count receive an empty slice.
func sliceAcross(values []string, moduleCount, moduleIndex int) []string {
	if moduleCount <= 0 || len(values) == 0 {
		return nil
	}
	base := len(values) / moduleCount
	extra := len(values) % moduleCount

	offset := 0
	for i := 0; i < moduleIndex; i++ {
		offset += base
		if i < extra {
			offset++
		}
	}
	size := base
	if moduleIndex < extra {
		size++
	}
	if size == 0 || offset >= len(values) {
		return nil
	}
	end := offset + size
	if end > len(values) {
		end = len(values)
	}
	return append([]string{}, values[offset:end]...)
}

func progressTracker(modules []Module) *ProgressTracker {
	tracker := &ProgressTracker{Modules: make([]ProgressEntry, 0, len(modules))}
	for _, module := range modules {
		tracker.Modules = append(tracker.Modules, ProgressEntry{
			ModuleID: module.ID,
			Title:    module.Title,
		})
	}
	return tracker
}

func studyGuide(input Input, courseTitle string) *StudyGuide {
	guide := &StudyGuide{Title: "Study Guide: " + courseTitle}
	if len(input.Analysis.Themes) > 0 {
		guide.Sections = append(guide.Sections, StudyGuideSection{
			Title:  "Key Themes",
			Points: append([]string{}, input.Analysis.Themes...),
		})
	}
	if len(input.Analysis.Objectives) > 0 {
		guide.Sections = append(guide.Sections, StudyGuideSection{
			Title:  "Learning Objectives",
			Points: append([]string{}, input.Analysis.Objectives...),
		})
	}
	if len(input.Analysis.Prerequisites) > 0 {
		guide.Sections = append(guide.Sections, StudyGuideSection{
			Title:  "Before You Start",
			Points: append([]string{}, input.Analysis.Prerequisites...),
		})
	}
	guide.Sections = append(guide.Sections, StudyGuideSection{
		Title: "Study Habits",
		Points: []string{
			"Take detailed notes while watching each video",
			"Draw connections between key concepts after each module",
			"Apply the concepts in a small practice project",
		},
	})
	return guide
}
