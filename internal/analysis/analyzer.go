package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"coursegen/internal/llm"
	"coursegen/internal/logging"
	"coursegen/internal/playlist"
	"coursegen/internal/textutil"
)

// ErrNoContent marks an empty item sequence reaching the analyzer. This is
// fatal for the run.
var ErrNoContent = errors.New("no content to analyze")

// Completer is the single LLM operation the analyzer needs.
type Completer interface {
	CompleteJSON(ctx context.Context, req llm.Request) (string, error)
}

// Options configures one analysis call.
type Options struct {
	TargetLevel    string
	Organization   string
	MaxPromptChars int
}

// Analyzer turns a normalized item sequence into a Result. Malformed model
// output is retried once with a stricter instruction; an unreachable model or
// persistently bad output degrades to a heuristic result instead of failing
// the run.
type Analyzer struct {
	client Completer
	logger *slog.Logger
	titler cases.Caser
}

// New creates an Analyzer.
func New(client Completer, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		client: client,
		logger: logging.NewComponentLogger(logger, "analysis"),
		titler: cases.Title(language.English),
	}
}

// Analyze produces one Result for the item sequence. The returned Result is
// always fully filled; Degraded reports whether the heuristic fallback was
// used. The only errors are ErrNoContent for an empty sequence and context
// cancellation.
func (a *Analyzer) Analyze(ctx context.Context, items []playlist.Item, opts Options) (Result, error) {
	if len(items) == 0 {
		return Result{}, ErrNoContent
	}
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	userPrompt := BuildPrompt(items, PromptOptions{
		TargetLevel:    opts.TargetLevel,
		Organization:   opts.Organization,
		MaxPromptChars: opts.MaxPromptChars,
	})

	result, err := a.complete(ctx, userPrompt, false)
	if err == nil {
		result.Fill()
		return result, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Result{}, err
	}
	if isParseFailure(err) {
		a.logger.Warn("model payload unparseable, retrying with strict instruction", logging.Error(err))
		result, err = a.complete(ctx, userPrompt, true)
		if err == nil {
			result.Fill()
			return result, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{}, err
		}
	}

	a.logger.Warn("analysis unavailable, falling back to heuristic result", logging.Error(err))
	degraded := a.heuristicResult(items, opts)
	return degraded, nil
}

type parseError struct {
	err error
}

func (e *parseError) Error() string { return "parse analysis payload: " + e.err.Error() }
func (e *parseError) Unwrap() error { return e.err }

func isParseFailure(err error) bool {
	var pe *parseError
	return errors.As(err, &pe)
}

func (a *Analyzer) complete(ctx context.Context, userPrompt string, strict bool) (Result, error) {
	systemPrompt := analysisSystemPrompt
	req := llm.Request{SystemPrompt: systemPrompt, UserPrompt: userPrompt}
	if strict {
		req.SystemPrompt = systemPrompt + analysisStrictSuffix
		zero := 0.0
		req.Temperature = &zero
	}
	content, err := a.client.CompleteJSON(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("analysis request: %w", err)
	}
	var wire wireResult
	if err := llm.DecodeModelJSON(content, &wire); err != nil {
		return Result{}, &parseError{err: err}
	}
	result, err := wire.toResult()
	if err != nil {
		return Result{}, &parseError{err: err}
	}
	return result, nil
}

// wireResult tolerates the field-shape drift models produce: estimates in
// hours or minutes, path groups keyed item_ids or videos.
type wireResult struct {
	Subject       string   `json:"subject"`
	Themes        []string `json:"themes"`
	AudienceLevel string   `json:"audience_level"`
	Organization  string   `json:"organization"`
	Objectives    []string `json:"objectives"`
	Prerequisites []string `json:"prerequisites"`
	Path          []struct {
		Title       string   `json:"title"`
		ModuleName  string   `json:"module_name"`
		Description string   `json:"description"`
		ItemIDs     []string `json:"item_ids"`
		Videos      []string `json:"videos"`
	} `json:"path"`
	Difficulty       string  `json:"difficulty"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	EstimatedHours   float64 `json:"estimated_hours"`
}

func (w wireResult) toResult() (Result, error) {
	if strings.TrimSpace(w.Subject) == "" && len(w.Themes) == 0 && len(w.Objectives) == 0 {
		return Result{}, errors.New("payload carries no recognized fields")
	}
	result := Result{
		Subject:          w.Subject,
		Themes:           cleanStrings(w.Themes),
		AudienceLevel:    w.AudienceLevel,
		Organization:     w.Organization,
		Objectives:       cleanStrings(w.Objectives),
		Prerequisites:    cleanStrings(w.Prerequisites),
		Difficulty:       w.Difficulty,
		EstimatedMinutes: w.EstimatedMinutes,
	}
	if result.EstimatedMinutes == 0 && w.EstimatedHours > 0 {
		result.EstimatedMinutes = int(w.EstimatedHours * 60)
	}
	for _, group := range w.Path {
		title := strings.TrimSpace(group.Title)
		if title == "" {
			title = strings.TrimSpace(group.ModuleName)
		}
		ids := cleanStrings(group.ItemIDs)
		if len(ids) == 0 {
			ids = cleanStrings(group.Videos)
		}
		if len(ids) == 0 {
			continue
		}
		result.Path = append(result.Path, PathModule{
			Title:       title,
			Description: strings.TrimSpace(group.Description),
			ItemIDs:     ids,
		})
	}
	return result, nil
}

func cleanStrings(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

var (
	advancedMarkers = []string{"advanced", "complex", "expert", "master", "deep dive"}
	beginnerMarkers = []string{"introduction", "intro", "basic", "fundamental", "getting started", "beginner"}
)

// heuristicResult builds a degraded Result from item metadata alone: keyword
// themes pulled from titles, difficulty from marker words, study time as
// twice the video time.
func (a *Analyzer) heuristicResult(items []playlist.Item, opts Options) Result {
	titles := make([]string, 0, len(items))
	totalMinutes := 0
	for _, item := range items {
		titles = append(titles, item.Title)
		totalMinutes += item.DurationMinutes
	}
	keywords := textutil.TopKeywords(titles, 5)

	subject := "General Topics"
	if len(keywords) > 0 {
		subject = a.titler.String(keywords[0])
	}
	level := normalizeLevel(opts.TargetLevel)

	result := Result{
		Subject:          subject,
		Themes:           keywords,
		AudienceLevel:    level,
		Organization:     "sequential",
		Difficulty:       markerDifficulty(titles),
		EstimatedMinutes: totalMinutes * 2,
		Degraded:         true,
	}
	result.Fill()
	return result
}

func markerDifficulty(titles []string) string {
	joined := strings.ToLower(strings.Join(titles, " "))
	advanced := 0
	beginner := 0
	for _, marker := range advancedMarkers {
		if strings.Contains(joined, marker) {
			advanced++
		}
	}
	for _, marker := range beginnerMarkers {
		if strings.Contains(joined, marker) {
			beginner++
		}
	}
	switch {
	case advanced > beginner:
		return LevelAdvanced
	case beginner > 0:
		return LevelBeginner
	default:
		return LevelIntermediate
	}
}
