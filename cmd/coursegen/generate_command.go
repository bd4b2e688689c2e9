package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"coursegen/internal/analysis"
	"coursegen/internal/cache"
	"coursegen/internal/config"
	"coursegen/internal/llm"
	"coursegen/internal/logging"
	"coursegen/internal/pipeline"
	"coursegen/internal/playlist"
	"coursegen/internal/render"
	"coursegen/internal/synthesis"
)

func newGenerateCommand(cctx *commandContext) *cobra.Command {
	var formatFlag string
	var maxVideos int
	var levelFlag string
	var outputFlag string
	var noCache bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "generate <playlist-url-or-id>",
		Short: "Generate a course from a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			provider, err := buildProvider(cfg)
			if err != nil {
				return err
			}

			llmCfg := cfg.GetLLM()
			client := llm.NewClient(llm.Config{
				APIKey:         llmCfg.APIKey,
				BaseURL:        llmCfg.BaseURL,
				Model:          llmCfg.Model,
				Referer:        llmCfg.Referer,
				Title:          llmCfg.Title,
				TimeoutSeconds: llmCfg.TimeoutSeconds,
				Temperature:    llmCfg.Temperature,
				TopP:           llmCfg.TopP,
			})
			analyzer := analysis.New(client, logger)

			var store *cache.Store
			if cfg.Cache.Enabled && !noCache {
				store, err = cache.Open(cfg.Cache.Path)
				if err != nil {
					return fmt.Errorf("open analysis cache: %w", err)
				}
				defer store.Close()
			}

			var cacheStore pipeline.AnalysisCache
			if store != nil {
				cacheStore = store
			}

			runner := pipeline.NewRunner(provider, analyzer, cacheStore, pipeline.Policy{
				Model:                  llmCfg.Model,
				MaxItems:               cfg.Generate.MaxVideos,
				TargetLevel:            cfg.Generate.TargetLevel,
				Organization:           cfg.Generate.Organization,
				MaxTranscriptChars:     cfg.Generate.MaxTranscriptChars,
				MaxDescriptionChars:    cfg.Generate.MaxDescriptionChars,
				MaxPromptChars:         cfg.Generate.MaxPromptChars,
				MinModules:             cfg.Generate.MinModules,
				MaxModules:             cfg.Generate.MaxModules,
				MaxAssignments:         cfg.Generate.MaxAssignments,
				ExamMinutesPerQuestion: cfg.Generate.ExamMinutesPerQuestion,
			}, logger)

			format := cfg.Generate.Format
			if strings.TrimSpace(formatFlag) != "" {
				format = strings.ToLower(strings.TrimSpace(formatFlag))
				if format != string(synthesis.FormatStandard) && format != string(synthesis.FormatEnhanced) {
					return fmt.Errorf("unknown format %q (expected standard or enhanced)", formatFlag)
				}
			}

			result, err := runner.Run(ctx, args[0], pipeline.Options{
				Format:      synthesis.Format(strings.ToLower(strings.TrimSpace(format))),
				MaxItems:    maxVideos,
				TargetLevel: levelFlag,
				SkipCache:   noCache,
			})
			if err != nil {
				return err
			}

			outDir := cfg.Paths.OutputDir
			if strings.TrimSpace(outputFlag) != "" {
				outDir, err = config.ExpandPath(outputFlag)
				if err != nil {
					return fmt.Errorf("resolve output directory: %w", err)
				}
			}

			paths, err := writeCourseFiles(outDir, courseSlug(result.Course), result.Output)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				_, err := out.Write(result.Output.JSON)
				return err
			}

			printRunSummary(out, result, paths)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Course format: standard or enhanced")
	cmd.Flags().IntVarP(&maxVideos, "max-videos", "n", 0, "Cap the number of videos taken from the playlist")
	cmd.Flags().StringVarP(&levelFlag, "level", "l", "", "Target audience level: beginner, intermediate, or advanced")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Directory for generated course files")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the analysis cache for this run")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Write the course JSON to stdout instead of a summary")

	return cmd
}

func buildProvider(cfg *config.Config) (playlist.Provider, error) {
	opts := []playlist.YouTubeOption{
		playlist.WithTranscripts(playlist.NewTimedtextClient(cfg.YouTube.Languages)),
	}
	if cfg.YouTube.RequestTimeout > 0 {
		opts = append(opts, playlist.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.YouTube.RequestTimeout) * time.Second,
		}))
	}

	provider, err := playlist.NewYouTubeClient(cfg.YouTube.APIKey, cfg.YouTube.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("configure playlist client: %w", err)
	}
	return provider, nil
}

// writeCourseFiles persists the rendered formats beside each other in outDir.
// A file lock serializes concurrent runs writing into the same directory.
func writeCourseFiles(outDir, slug string, output *render.Output) (map[string]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", outDir, err)
	}

	lock := flock.New(filepath.Join(outDir, ".coursegen.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another generation is writing to %s", outDir)
	}
	defer func() { _ = lock.Unlock() }()

	paths := map[string]string{
		"json":     filepath.Join(outDir, slug+".json"),
		"markdown": filepath.Join(outDir, slug+".md"),
		"html":     filepath.Join(outDir, slug+".html"),
	}
	files := []struct {
		path string
		data []byte
	}{
		{paths["json"], output.JSON},
		{paths["markdown"], output.Markdown},
		{paths["html"], output.Combined},
	}
	for _, file := range files {
		if err := os.WriteFile(file.path, file.data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", file.path, err)
		}
	}
	return paths, nil
}

func courseSlug(course *synthesis.Course) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(course.Title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "course"
	}
	return slug
}

func printRunSummary(out io.Writer, result *pipeline.Result, paths map[string]string) {
	rows := [][]string{
		{"Course", result.Course.Title},
		{"Format", string(result.Course.Format)},
		{"Videos", strconv.Itoa(len(result.Items))},
		{"Modules", strconv.Itoa(len(result.Course.Modules))},
		{"Estimated time", formatCourseMinutes(result.Course.EstimatedMinutes)},
		{"Analysis", describeAnalysis(result)},
		{"Skipped records", strconv.Itoa(result.Skipped)},
		{"Elapsed", result.Elapsed.Round(time.Millisecond).String()},
		{"JSON", paths["json"]},
		{"Markdown", paths["markdown"]},
		{"HTML", paths["html"]},
	}

	if stdoutIsTerminal() {
		fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
		return
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%s: %s\n", row[0], row[1])
	}
}

func describeAnalysis(result *pipeline.Result) string {
	switch {
	case result.CacheHit:
		return "cached"
	case result.Analysis.Degraded:
		return "degraded (heuristic fallback)"
	default:
		return "model"
	}
}

func formatCourseMinutes(minutes int) string {
	if minutes <= 0 {
		return "unknown"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%d h", minutes/60)
	}
	return fmt.Sprintf("%d h %d min", minutes/60, minutes%60)
}
