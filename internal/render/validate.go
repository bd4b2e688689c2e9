package render

import (
	"errors"
	"fmt"

	"coursegen/internal/synthesis"
)

// ErrMalformedCourse marks a course model violating its structural contract.
// This is a programming error, not a user-facing failure.
var ErrMalformedCourse = errors.New("malformed course model")

// Validate checks the course model invariants: stable module ordering, one
// schema variant only, non-empty quizzes, and, when sourceIDs is non-nil,
// that every video reference points into the source set.
func Validate(course *synthesis.Course, sourceIDs []string) error {
	if course == nil {
		return fmt.Errorf("%w: nil course", ErrMalformedCourse)
	}
	if course.Format != synthesis.FormatStandard && course.Format != synthesis.FormatEnhanced {
		return fmt.Errorf("%w: unknown format %q", ErrMalformedCourse, course.Format)
	}
	if course.Title == "" {
		return fmt.Errorf("%w: empty title", ErrMalformedCourse)
	}
	if len(course.Modules) == 0 {
		return fmt.Errorf("%w: no modules", ErrMalformedCourse)
	}

	var known map[string]bool
	if sourceIDs != nil {
		known = make(map[string]bool, len(sourceIDs))
		for _, id := range sourceIDs {
			known[id] = true
		}
	}

	for i, module := range course.Modules {
		if module.Order != i+1 {
			return fmt.Errorf("%w: module %s order %d at index %d", ErrMalformedCourse, module.ID, module.Order, i)
		}
		switch course.Format {
		case synthesis.FormatStandard:
			if len(module.Lessons) > 0 {
				return fmt.Errorf("%w: standard module %s carries lessons", ErrMalformedCourse, module.ID)
			}
			if len(module.ItemIDs) == 0 {
				return fmt.Errorf("%w: standard module %s references no items", ErrMalformedCourse, module.ID)
			}
			for _, id := range module.ItemIDs {
				if known != nil && !known[id] {
					return fmt.Errorf("%w: module %s references unknown item %s", ErrMalformedCourse, module.ID, id)
				}
			}
		case synthesis.FormatEnhanced:
			if len(module.ItemIDs) > 0 {
				return fmt.Errorf("%w: enhanced module %s carries item references", ErrMalformedCourse, module.ID)
			}
			if len(module.Lessons) == 0 {
				return fmt.Errorf("%w: enhanced module %s has no lessons", ErrMalformedCourse, module.ID)
			}
			if err := validateLessons(module, known); err != nil {
				return err
			}
		}
	}

	if course.Format == synthesis.FormatStandard {
		if len(course.Assignments) > 0 || course.FinalExam != nil {
			return fmt.Errorf("%w: standard course carries enhanced-only sections", ErrMalformedCourse)
		}
	}
	if course.FinalExam != nil && len(course.FinalExam.Questions) == 0 {
		return fmt.Errorf("%w: final exam with no questions", ErrMalformedCourse)
	}
	return nil
}

func validateLessons(module synthesis.Module, known map[string]bool) error {
	for i, lesson := range module.Lessons {
		if lesson.Order != i+1 {
			return fmt.Errorf("%w: lesson %s order %d at index %d", ErrMalformedCourse, lesson.ID, lesson.Order, i)
		}
		switch lesson.Type {
		case synthesis.LessonVideo:
			if lesson.Video == nil || lesson.Video.ItemID == "" {
				return fmt.Errorf("%w: video lesson %s has no reference", ErrMalformedCourse, lesson.ID)
			}
			if known != nil && !known[lesson.Video.ItemID] {
				return fmt.Errorf("%w: lesson %s references unknown item %s", ErrMalformedCourse, lesson.ID, lesson.Video.ItemID)
			}
		case synthesis.LessonQuiz:
			if lesson.Quiz == nil || len(lesson.Quiz.Questions) == 0 {
				return fmt.Errorf("%w: quiz lesson %s has no questions", ErrMalformedCourse, lesson.ID)
			}
		case synthesis.LessonText:
			if lesson.Text == nil || lesson.Text.Body == "" {
				return fmt.Errorf("%w: text lesson %s has no body", ErrMalformedCourse, lesson.ID)
			}
		case synthesis.LessonProject:
			// Project lessons carry their payload in the description.
		default:
			return fmt.Errorf("%w: lesson %s has unknown type %q", ErrMalformedCourse, lesson.ID, lesson.Type)
		}
	}
	return nil
}
