package pipeline

import (
	"context"
	"errors"
	"fmt"

	"coursegen/internal/analysis"
	"coursegen/internal/llm"
	"coursegen/internal/playlist"
	"coursegen/internal/render"
	"coursegen/internal/synthesis"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	// KindSourceUnavailable means the playlist could not be retrieved.
	KindSourceUnavailable Kind = "source_unavailable"
	// KindInvalidSourceItem means no raw record survived normalization.
	KindInvalidSourceItem Kind = "invalid_source_item"
	// KindNoContentToAnalyze means an empty item sequence reached analysis.
	KindNoContentToAnalyze Kind = "no_content_to_analyze"
	// KindAnalysisUnavailable means the generative collaborator failed in a
	// way that could not be degraded around. The analyzer falls back to a
	// heuristic result on model unavailability, so this kind only surfaces
	// from callers that drive the model client directly.
	KindAnalysisUnavailable Kind = "analysis_unavailable"
	// KindSynthesisImpossible means an empty item sequence reached synthesis.
	KindSynthesisImpossible Kind = "synthesis_impossible"
	// KindMalformedCourseModel means the synthesized course violated its
	// structural contract. This is an internal error, not a user fault.
	KindMalformedCourseModel Kind = "malformed_course_model"
	// KindCanceled means the run was aborted at a stage boundary.
	KindCanceled Kind = "canceled"
	// KindInternal covers everything else.
	KindInternal Kind = "internal"
)

// Error is the single typed failure a pipeline run reports. No partial
// course model ever accompanies one.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Internal reports whether the failure is a programming error rather than a
// user-facing one.
func (e *Error) Internal() bool { return e.Kind == KindMalformedCourseModel || e.Kind == KindInternal }

func classify(err error, message string) *Error {
	kind := KindInternal
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind = KindCanceled
	case errors.Is(err, playlist.ErrSourceUnavailable):
		kind = KindSourceUnavailable
	case errors.Is(err, playlist.ErrInvalidItem):
		kind = KindInvalidSourceItem
	case errors.Is(err, analysis.ErrNoContent):
		kind = KindNoContentToAnalyze
	case errors.Is(err, llm.ErrUnavailable):
		kind = KindAnalysisUnavailable
	case errors.Is(err, synthesis.ErrSynthesisImpossible):
		kind = KindSynthesisImpossible
	case errors.Is(err, render.ErrMalformedCourse):
		kind = KindMalformedCourseModel
	}
	return &Error{Kind: kind, Message: message, Err: err}
}
