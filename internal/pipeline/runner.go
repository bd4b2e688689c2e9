package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"coursegen/internal/analysis"
	"coursegen/internal/cache"
	"coursegen/internal/logging"
	"coursegen/internal/playlist"
	"coursegen/internal/render"
	"coursegen/internal/synthesis"
)

// Analyzer is the analysis operation the runner drives.
type Analyzer interface {
	Analyze(ctx context.Context, items []playlist.Item, opts analysis.Options) (analysis.Result, error)
}

// AnalysisCache is the optional persistence collaborator. Its absence or
// failure never changes run correctness, only performance.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*analysis.Result, error)
	Put(ctx context.Context, key, playlistID, model string, result *analysis.Result) error
}

// Policy holds the runner's configured limits and defaults.
type Policy struct {
	Model                  string
	MaxItems               int
	TargetLevel            string
	Organization           string
	MaxTranscriptChars     int
	MaxDescriptionChars    int
	MaxPromptChars         int
	MinModules             int
	MaxModules             int
	MaxAssignments         int
	ExamMinutesPerQuestion int
}

// Options selects per-run behavior. Zero values fall back to the policy.
type Options struct {
	Format      synthesis.Format
	MaxItems    int
	TargetLevel string
	SkipCache   bool
}

// Result is the successful outcome of one run.
type Result struct {
	RunID    string
	Info     *playlist.Info
	Items    []playlist.Item
	Analysis analysis.Result
	Course   *synthesis.Course
	Output   *render.Output
	CacheHit bool
	Skipped  int
	Elapsed  time.Duration
}

// Runner sequences the pipeline stages for one playlist run. Runs are
// independent and re-entrant; the runner holds no per-run state.
type Runner struct {
	provider playlist.Provider
	analyzer Analyzer
	cache    AnalysisCache
	policy   Policy
	logger   *slog.Logger
}

// NewRunner wires the pipeline collaborators. cacheStore may be nil.
func NewRunner(provider playlist.Provider, analyzer Analyzer, cacheStore AnalysisCache, policy Policy, logger *slog.Logger) *Runner {
	return &Runner{
		provider: provider,
		analyzer: analyzer,
		cache:    cacheStore,
		policy:   policy,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run executes the full pipeline for a playlist reference: collect,
// normalize, analyze, synthesize, render. It returns exactly one success
// value or one typed *Error.
func (r *Runner) Run(ctx context.Context, ref string, opts Options) (*Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	started := time.Now()
	logger := logging.WithContext(ctx, r.logger)

	playlistID, err := playlist.ParseRef(ref)
	if err != nil {
		return nil, classify(err, "resolve playlist reference")
	}

	logger.Info("starting run",
		logging.String(logging.FieldPlaylist, playlistID),
		logging.String("format", string(r.format(opts))))

	info, err := r.provider.Info(ctx, playlistID)
	if err != nil {
		return nil, classify(err, "fetch playlist info")
	}
	if err := ctx.Err(); err != nil {
		return nil, classify(err, "after playlist info")
	}

	maxItems := opts.MaxItems
	if maxItems <= 0 {
		maxItems = r.policy.MaxItems
	}
	raw, err := r.provider.Collect(ctx, playlistID, maxItems)
	if err != nil {
		return nil, classify(err, "collect playlist items")
	}

	result, err := r.RunItems(ctx, raw, info, opts)
	if err != nil {
		return nil, err
	}
	result.RunID = runID
	result.Elapsed = time.Since(started)
	logger.Info("run complete",
		logging.Int(logging.FieldItemCount, len(result.Items)),
		logging.Int("modules", len(result.Course.Modules)),
		logging.Bool("cache_hit", result.CacheHit),
		logging.Duration("elapsed", result.Elapsed))
	return result, nil
}

// RunItems executes the core pipeline for an already-collected record
// sequence. This is the operation exposed to callers that own their source
// collection.
func (r *Runner) RunItems(ctx context.Context, raw []playlist.RawItem, info *playlist.Info, opts Options) (*Result, error) {
	logger := logging.WithContext(ctx, r.logger)

	maxItems := opts.MaxItems
	if maxItems <= 0 {
		maxItems = r.policy.MaxItems
	}
	items, skipped, err := playlist.Normalize(raw, playlist.NormalizeOptions{
		MaxItems:            maxItems,
		MaxTranscriptChars:  r.policy.MaxTranscriptChars,
		MaxDescriptionChars: r.policy.MaxDescriptionChars,
	})
	if err != nil {
		return nil, classify(err, "normalize source items")
	}
	if skipped > 0 {
		logger.Warn("skipped malformed source records", logging.Int("skipped", skipped))
	}
	if err := ctx.Err(); err != nil {
		return nil, classify(err, "after normalization")
	}

	playlistID := ""
	if info != nil {
		playlistID = info.ID
	}
	analysisResult, cacheHit, err := r.analyze(ctx, items, playlistID, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, classify(err, "after analysis")
	}

	strategy, err := synthesis.New(r.format(opts), synthesis.Options{
		MinModules:             r.policy.MinModules,
		MaxModules:             r.policy.MaxModules,
		MaxAssignments:         r.policy.MaxAssignments,
		ExamMinutesPerQuestion: r.policy.ExamMinutesPerQuestion,
	})
	if err != nil {
		return nil, classify(err, "select synthesis strategy")
	}
	input := synthesis.Input{Items: items, Analysis: analysisResult}
	if info != nil {
		input.PlaylistTitle = info.Title
	}
	course, err := strategy.Synthesize(input)
	if err != nil {
		return nil, classify(err, "synthesize course")
	}
	if err := ctx.Err(); err != nil {
		return nil, classify(err, "after synthesis")
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	output, err := render.Render(course, ids)
	if err != nil {
		return nil, classify(err, "render course")
	}

	return &Result{
		Info:     info,
		Items:    items,
		Analysis: analysisResult,
		Course:   course,
		Output:   output,
		CacheHit: cacheHit,
		Skipped:  skipped,
	}, nil
}

func (r *Runner) analyze(ctx context.Context, items []playlist.Item, playlistID string, opts Options) (analysis.Result, bool, error) {
	ctx = logging.WithStage(ctx, "analyze")
	logger := logging.WithContext(ctx, r.logger)

	level := opts.TargetLevel
	if level == "" {
		level = r.policy.TargetLevel
	}
	key := cache.ContentKey(items, cache.KeyOptions{
		Model:        r.policy.Model,
		TargetLevel:  level,
		Organization: r.policy.Organization,
	})
	if r.cache != nil && !opts.SkipCache {
		cached, err := r.cache.Get(ctx, key)
		switch {
		case err == nil && cached != nil:
			logger.Info("analysis cache hit", logging.String("content_key", key[:12]))
			return *cached, true, nil
		case err != nil && !errors.Is(err, cache.ErrNotFound):
			logger.Warn("cache read failed", logging.Error(err))
		}
	}

	result, err := r.analyzer.Analyze(ctx, items, analysis.Options{
		TargetLevel:    level,
		Organization:   r.policy.Organization,
		MaxPromptChars: r.policy.MaxPromptChars,
	})
	if err != nil {
		return analysis.Result{}, false, classify(err, "analyze content")
	}

	// Degraded results are not cached so a later run can retry the model.
	if r.cache != nil && !opts.SkipCache && !result.Degraded {
		if err := r.cache.Put(ctx, key, playlistID, r.policy.Model, &result); err != nil {
			logger.Warn("cache write failed", logging.Error(err))
		}
	}
	return result, false, nil
}

func (r *Runner) format(opts Options) synthesis.Format {
	format := opts.Format
	if strings.TrimSpace(string(format)) == "" {
		format = synthesis.FormatStandard
	}
	return format
}
