package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"coursegen/internal/analysis"
	"coursegen/internal/cache"
	"coursegen/internal/llm"
	"coursegen/internal/playlist"
	"coursegen/internal/synthesis"
)

type fakeProvider struct {
	info    *playlist.Info
	records []playlist.RawItem
	err     error
}

func (f *fakeProvider) Info(_ context.Context, playlistID string) (*playlist.Info, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.info != nil {
		return f.info, nil
	}
	return &playlist.Info{ID: playlistID, Title: "Test Playlist"}, nil
}

func (f *fakeProvider) Collect(_ context.Context, _ string, maxItems int) ([]playlist.RawItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	if maxItems > 0 && len(f.records) > maxItems {
		return f.records[:maxItems], nil
	}
	return f.records, nil
}

type fakeAnalyzer struct {
	result analysis.Result
	err    error
	calls  int
	levels []string
	orgs   []string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, items []playlist.Item, opts analysis.Options) (analysis.Result, error) {
	f.calls++
	f.levels = append(f.levels, opts.TargetLevel)
	f.orgs = append(f.orgs, opts.Organization)
	if f.err != nil {
		return analysis.Result{}, f.err
	}
	if len(items) == 0 {
		return analysis.Result{}, analysis.ErrNoContent
	}
	result := f.result
	result.Fill()
	return result, nil
}

type memoryCache struct {
	entries map[string]*analysis.Result
	puts    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]*analysis.Result{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (*analysis.Result, error) {
	if result, ok := m.entries[key]; ok {
		return result, nil
	}
	return nil, cache.ErrNotFound
}

func (m *memoryCache) Put(_ context.Context, key, _, _ string, result *analysis.Result) error {
	m.puts++
	copied := *result
	m.entries[key] = &copied
	return nil
}

func makeRecords(count int) []playlist.RawItem {
	records := make([]playlist.RawItem, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, playlist.RawItem{
			ID:          fmt.Sprintf("vid%d", i+1),
			Title:       fmt.Sprintf("Video %d", i+1),
			Description: "description",
			Duration:    "PT10M",
			Position:    i,
			Transcript:  "some transcript text",
		})
	}
	return records
}

func testPolicy() Policy {
	return Policy{
		Model:                  "demo-model",
		MaxItems:               50,
		TargetLevel:            "intermediate",
		Organization:           "sequential",
		MaxTranscriptChars:     4000,
		MaxDescriptionChars:    500,
		MaxPromptChars:         48000,
		MinModules:             3,
		MaxModules:             6,
		MaxAssignments:         3,
		ExamMinutesPerQuestion: 30,
	}
}

func goodAnalysis() analysis.Result {
	return analysis.Result{
		Subject:          "Docker",
		Themes:           []string{"containers", "images"},
		Objectives:       []string{"Run containers"},
		EstimatedMinutes: 120,
	}
}

func TestRunProducesCourseAndOutput(t *testing.T) {
	provider := &fakeProvider{records: makeRecords(6)}
	analyzer := &fakeAnalyzer{result: goodAnalysis()}
	runner := NewRunner(provider, analyzer, nil, testPolicy(), nil)

	result, err := runner.Run(context.Background(), "PLabcdef12345", Options{Format: synthesis.FormatStandard})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Course == nil || result.Output == nil {
		t.Fatal("expected course and rendered output")
	}
	if result.Course.Format != synthesis.FormatStandard {
		t.Fatalf("unexpected format %s", result.Course.Format)
	}
	if result.RunID == "" {
		t.Fatal("expected a run id")
	}
	if result.Course.Title != "Test Playlist" {
		t.Fatalf("expected playlist title carried through, got %q", result.Course.Title)
	}
	if len(result.Output.JSON) == 0 || len(result.Output.Markdown) == 0 || len(result.Output.Combined) == 0 {
		t.Fatal("expected all three output formats")
	}
}

func TestRunEnhancedFormat(t *testing.T) {
	provider := &fakeProvider{records: makeRecords(9)}
	analyzer := &fakeAnalyzer{result: goodAnalysis()}
	runner := NewRunner(provider, analyzer, nil, testPolicy(), nil)

	result, err := runner.Run(context.Background(), "PLabcdef12345", Options{Format: synthesis.FormatEnhanced})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Course.FinalExam == nil {
		t.Fatal("expected final exam in enhanced format")
	}
	if len(result.Course.Assignments) == 0 {
		t.Fatal("expected assignments in enhanced format")
	}
}

func TestRunDegradedAnalysisStillSucceeds(t *testing.T) {
	degraded := analysis.Result{Degraded: true}
	for _, format := range []synthesis.Format{synthesis.FormatStandard, synthesis.FormatEnhanced} {
		provider := &fakeProvider{records: makeRecords(6)}
		analyzer := &fakeAnalyzer{result: degraded}
		runner := NewRunner(provider, analyzer, nil, testPolicy(), nil)

		result, err := runner.Run(context.Background(), "PLabcdef12345", Options{Format: format})
		if err != nil {
			t.Fatalf("%s: Run returned error: %v", format, err)
		}
		if !result.Course.DegradedAnalysis {
			t.Fatalf("%s: expected degraded flag on course", format)
		}
	}
}

func TestRunMaxItemsTruncates(t *testing.T) {
	provider := &fakeProvider{records: makeRecords(10)}
	analyzer := &fakeAnalyzer{result: goodAnalysis()}
	runner := NewRunner(provider, analyzer, nil, testPolicy(), nil)

	result, err := runner.Run(context.Background(), "PLabcdef12345", Options{MaxItems: 4})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(result.Items))
	}
	for i, item := range result.Items {
		if item.ID != fmt.Sprintf("vid%d", i+1) {
			t.Fatalf("expected original order preserved, got %s at %d", item.ID, i)
		}
	}
}

func TestRunSourceUnavailable(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("%w: gone", playlist.ErrSourceUnavailable)}
	runner := NewRunner(provider, &fakeAnalyzer{}, nil, testPolicy(), nil)

	_, err := runner.Run(context.Background(), "PLabcdef12345", Options{})
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindSourceUnavailable {
		t.Fatalf("expected KindSourceUnavailable, got %v", err)
	}
}

func TestRunInvalidReference(t *testing.T) {
	runner := NewRunner(&fakeProvider{}, &fakeAnalyzer{}, nil, testPolicy(), nil)
	_, err := runner.Run(context.Background(), "!!", Options{})
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindInvalidSourceItem {
		t.Fatalf("expected KindInvalidSourceItem, got %v", err)
	}
}

func TestRunNoValidItems(t *testing.T) {
	provider := &fakeProvider{records: []playlist.RawItem{{ID: "", Position: 0}}}
	runner := NewRunner(provider, &fakeAnalyzer{}, nil, testPolicy(), nil)

	_, err := runner.Run(context.Background(), "PLabcdef12345", Options{})
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindInvalidSourceItem {
		t.Fatalf("expected KindInvalidSourceItem, got %v", err)
	}
}

func TestRunCacheHitSkipsAnalyzer(t *testing.T) {
	provider := &fakeProvider{records: makeRecords(6)}
	analyzer := &fakeAnalyzer{result: goodAnalysis()}
	store := newMemoryCache()
	runner := NewRunner(provider, analyzer, store, testPolicy(), nil)

	first, err := runner.Run(context.Background(), "PLabcdef12345", Options{})
	if err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	if first.CacheHit {
		t.Fatal("first run should miss the cache")
	}
	if store.puts != 1 {
		t.Fatalf("expected one cache write, got %d", store.puts)
	}

	second, err := runner.Run(context.Background(), "PLabcdef12345", Options{})
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if !second.CacheHit {
		t.Fatal("second run should hit the cache")
	}
	if analyzer.calls != 1 {
		t.Fatalf("expected a single analyzer call, got %d", analyzer.calls)
	}
}

func TestRunCachePartitionedByTargetLevel(t *testing.T) {
	provider := &fakeProvider{records: makeRecords(6)}
	analyzer := &fakeAnalyzer{result: goodAnalysis()}
	store := newMemoryCache()
	runner := NewRunner(provider, analyzer, store, testPolicy(), nil)

	first, err := runner.Run(context.Background(), "PLabcdef12345", Options{TargetLevel: "beginner"})
	if err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	if first.CacheHit {
		t.Fatal("first run should miss the cache")
	}

	second, err := runner.Run(context.Background(), "PLabcdef12345", Options{TargetLevel: "advanced"})
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if second.CacheHit {
		t.Fatal("a different target level must not replay the cached analysis")
	}
	if analyzer.calls != 2 {
		t.Fatalf("expected 2 analyzer calls, got %d", analyzer.calls)
	}
	if len(analyzer.levels) != 2 || analyzer.levels[0] != "beginner" || analyzer.levels[1] != "advanced" {
		t.Fatalf("expected both levels analyzed, got %v", analyzer.levels)
	}
	if store.puts != 2 {
		t.Fatalf("expected separate cache entries per level, got %d writes", store.puts)
	}

	third, err := runner.Run(context.Background(), "PLabcdef12345", Options{TargetLevel: "beginner"})
	if err != nil {
		t.Fatalf("third Run returned error: %v", err)
	}
	if !third.CacheHit {
		t.Fatal("repeating a level should hit its own entry")
	}
}

func TestRunPassesOrganizationToAnalyzer(t *testing.T) {
	provider := &fakeProvider{records: makeRecords(6)}
	analyzer := &fakeAnalyzer{result: goodAnalysis()}
	policy := testPolicy()
	policy.Organization = "thematic"
	runner := NewRunner(provider, analyzer, nil, policy, nil)

	if _, err := runner.Run(context.Background(), "PLabcdef12345", Options{}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(analyzer.orgs) != 1 || analyzer.orgs[0] != "thematic" {
		t.Fatalf("expected organization forwarded to analyzer, got %v", analyzer.orgs)
	}
}

type faultyCache struct {
	puts int
}

func (f *faultyCache) Get(_ context.Context, _ string) (*analysis.Result, error) {
	return nil, errors.New("cache row corrupt")
}

func (f *faultyCache) Put(_ context.Context, _, _, _ string, _ *analysis.Result) error {
	f.puts++
	return nil
}

func TestRunSurvivesCacheReadFailure(t *testing.T) {
	provider := &fakeProvider{records: makeRecords(6)}
	analyzer := &fakeAnalyzer{result: goodAnalysis()}
	store := &faultyCache{}
	runner := NewRunner(provider, analyzer, store, testPolicy(), nil)

	result, err := runner.Run(context.Background(), "PLabcdef12345", Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.CacheHit {
		t.Fatal("a failing cache read must count as a miss")
	}
	if analyzer.calls != 1 {
		t.Fatalf("expected one analyzer call, got %d", analyzer.calls)
	}
	if store.puts != 1 {
		t.Fatalf("expected the fresh result written back, got %d writes", store.puts)
	}
}

func TestRunSkipCacheOption(t *testing.T) {
	provider := &fakeProvider{records: makeRecords(6)}
	analyzer := &fakeAnalyzer{result: goodAnalysis()}
	store := newMemoryCache()
	runner := NewRunner(provider, analyzer, store, testPolicy(), nil)

	if _, err := runner.Run(context.Background(), "PLabcdef12345", Options{}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	result, err := runner.Run(context.Background(), "PLabcdef12345", Options{SkipCache: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.CacheHit {
		t.Fatal("expected cache bypass")
	}
	if analyzer.calls != 2 {
		t.Fatalf("expected 2 analyzer calls, got %d", analyzer.calls)
	}
}

func TestRunDoesNotCacheDegradedResults(t *testing.T) {
	provider := &fakeProvider{records: makeRecords(6)}
	analyzer := &fakeAnalyzer{result: analysis.Result{Degraded: true}}
	store := newMemoryCache()
	runner := NewRunner(provider, analyzer, store, testPolicy(), nil)

	if _, err := runner.Run(context.Background(), "PLabcdef12345", Options{}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if store.puts != 0 {
		t.Fatalf("expected no cache writes for degraded analysis, got %d", store.puts)
	}
}

func TestRunCancellationAtStageBoundary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	provider := &fakeProvider{records: makeRecords(6)}
	runner := NewRunner(provider, &fakeAnalyzer{result: goodAnalysis()}, nil, testPolicy(), nil)

	_, err := runner.Run(ctx, "PLabcdef12345", Options{})
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindCanceled {
		t.Fatalf("expected KindCanceled, got %v", err)
	}
}

func TestRunItemsWithoutProviderInfo(t *testing.T) {
	analyzer := &fakeAnalyzer{result: goodAnalysis()}
	runner := NewRunner(nil, analyzer, nil, testPolicy(), nil)

	result, err := runner.RunItems(context.Background(), makeRecords(3), nil, Options{})
	if err != nil {
		t.Fatalf("RunItems returned error: %v", err)
	}
	if result.Course == nil {
		t.Fatal("expected a course")
	}
	if result.Course.Title == "" {
		t.Fatal("expected a derived course title")
	}
}

func TestErrorKindMapping(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{analysis.ErrNoContent, KindNoContentToAnalyze},
		{fmt.Errorf("analysis request: %w", llm.ErrUnavailable), KindAnalysisUnavailable},
		{synthesis.ErrSynthesisImpossible, KindSynthesisImpossible},
		{playlist.ErrSourceUnavailable, KindSourceUnavailable},
		{playlist.ErrInvalidItem, KindInvalidSourceItem},
		{context.Canceled, KindCanceled},
		{errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		perr := classify(tc.err, "test")
		if perr.Kind != tc.want {
			t.Fatalf("classify(%v) = %s, want %s", tc.err, perr.Kind, tc.want)
		}
	}
}
