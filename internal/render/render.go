package render

import (
	"encoding/json"
	"fmt"

	"coursegen/internal/synthesis"
)

// Output holds the three rendered representations of one course model.
type Output struct {
	// JSON mirrors the course model exactly and is the canonical
	// interchange format.
	JSON []byte
	// Markdown is the narrative document.
	Markdown []byte
	// Combined is a self-contained HTML page embedding both the
	// presentation and the machine-readable JSON.
	Combined []byte
}

// Render serializes the course into all three formats. It is a pure function
// of the course model: rendering the same model twice yields byte-identical
// output. When sourceIDs is non-nil the course's video references are checked
// against it; any contract violation surfaces as ErrMalformedCourse.
func Render(course *synthesis.Course, sourceIDs []string) (*Output, error) {
	if err := Validate(course, sourceIDs); err != nil {
		return nil, err
	}
	encoded, err := json.MarshalIndent(course, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode course: %v", ErrMalformedCourse, err)
	}
	markdown := renderMarkdown(course)
	combined := renderCombined(course, encoded)
	return &Output{
		JSON:     append(encoded, '\n'),
		Markdown: markdown,
		Combined: combined,
	}, nil
}
