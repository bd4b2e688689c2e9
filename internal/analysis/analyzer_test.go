package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"coursegen/internal/llm"
	"coursegen/internal/playlist"
)

type fakeCompleter struct {
	responses []string
	errs      []error
	calls     int
	requests  []llm.Request
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, req llm.Request) (string, error) {
	idx := f.calls
	f.calls++
	f.requests = append(f.requests, req)
	var err error
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	if err != nil {
		return "", err
	}
	if idx < len(f.responses) {
		return f.responses[idx], nil
	}
	return "", errors.New("no scripted response")
}

func testItems() []playlist.Item {
	return []playlist.Item{
		{ID: "v1", Title: "Docker Introduction", DurationMinutes: 10, Position: 0, Transcript: "intro", Availability: playlist.AvailabilityFull},
		{ID: "v2", Title: "Docker Images Basics", DurationMinutes: 15, Position: 1, Description: "images", Availability: playlist.AvailabilityDescriptionOnly},
		{ID: "v3", Title: "Docker Networking", DurationMinutes: 20, Position: 2, Availability: playlist.AvailabilityUnavailable},
	}
}

const validPayload = `{
	"subject": "Docker",
	"themes": ["containers", "images"],
	"audience_level": "beginner",
	"organization": "sequential",
	"objectives": ["Explain containers"],
	"prerequisites": ["Command line basics"],
	"path": [
		{"title": "Foundations", "description": "start here", "item_ids": ["v1", "v2"]},
		{"title": "Networking", "description": "", "item_ids": ["v3"]}
	],
	"difficulty": "beginner",
	"estimated_minutes": 90
}`

func TestAnalyzeParsesValidPayload(t *testing.T) {
	fake := &fakeCompleter{responses: []string{validPayload}}
	analyzer := New(fake, nil)

	result, err := analyzer.Analyze(context.Background(), testItems(), Options{})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Degraded {
		t.Fatal("expected non-degraded result")
	}
	if result.Subject != "Docker" || result.EstimatedMinutes != 90 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Path) != 2 || result.Path[0].ItemIDs[0] != "v1" {
		t.Fatalf("unexpected path: %+v", result.Path)
	}
	if fake.calls != 1 {
		t.Fatalf("expected a single model call, got %d", fake.calls)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	analyzer := New(&fakeCompleter{}, nil)
	if _, err := analyzer.Analyze(context.Background(), nil, Options{}); !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestAnalyzeRetriesOnceWithStrictInstruction(t *testing.T) {
	fake := &fakeCompleter{responses: []string{"this is not json at all", validPayload}}
	analyzer := New(fake, nil)

	result, err := analyzer.Analyze(context.Background(), testItems(), Options{})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Degraded {
		t.Fatal("expected strict retry to recover a full result")
	}
	if fake.calls != 2 {
		t.Fatalf("expected 2 model calls, got %d", fake.calls)
	}
	strict := fake.requests[1]
	if !strings.Contains(strict.SystemPrompt, "ONLY the JSON object") {
		t.Fatalf("expected strict instruction on retry, got %q", strict.SystemPrompt)
	}
	if strict.Temperature == nil || *strict.Temperature != 0 {
		t.Fatalf("expected zero temperature on strict retry, got %v", strict.Temperature)
	}
}

func TestAnalyzeDegradesAfterSecondParseFailure(t *testing.T) {
	fake := &fakeCompleter{responses: []string{"garbage", "still garbage"}}
	analyzer := New(fake, nil)

	result, err := analyzer.Analyze(context.Background(), testItems(), Options{TargetLevel: "beginner"})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if !result.Degraded {
		t.Fatal("expected degraded result")
	}
	if result.AudienceLevel != LevelBeginner {
		t.Fatalf("expected requested level carried through, got %q", result.AudienceLevel)
	}
	if len(result.Themes) == 0 {
		t.Fatal("expected heuristic keyword themes")
	}
	// Docker appears in every title so it should lead.
	if !strings.EqualFold(result.Themes[0], "docker") {
		t.Fatalf("expected docker as top theme, got %v", result.Themes)
	}
	if result.Subject == "" || result.Organization != "sequential" {
		t.Fatalf("expected defaults applied, got %+v", result)
	}
	// Study time is twice the 45 minutes of video.
	if result.EstimatedMinutes != 90 {
		t.Fatalf("expected 90 estimated minutes, got %d", result.EstimatedMinutes)
	}
}

func TestAnalyzeDegradesWhenModelUnavailable(t *testing.T) {
	fake := &fakeCompleter{errs: []error{llm.ErrUnavailable}}
	analyzer := New(fake, nil)

	result, err := analyzer.Analyze(context.Background(), testItems(), Options{})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if !result.Degraded {
		t.Fatal("expected degraded result when the model call fails")
	}
	if fake.calls != 1 {
		t.Fatalf("expected no strict retry for transport failure, got %d calls", fake.calls)
	}
}

func TestAnalyzePropagatesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	analyzer := New(&fakeCompleter{}, nil)
	if _, err := analyzer.Analyze(ctx, testItems(), Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAnalyzeNormalizesHoursToMinutes(t *testing.T) {
	payload := `{"subject":"Go","themes":["go"],"estimated_hours":1.5}`
	fake := &fakeCompleter{responses: []string{payload}}
	analyzer := New(fake, nil)

	result, err := analyzer.Analyze(context.Background(), testItems(), Options{})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.EstimatedMinutes != 90 {
		t.Fatalf("expected 90 minutes from 1.5 hours, got %d", result.EstimatedMinutes)
	}
}

func TestResultFillDefaults(t *testing.T) {
	var result Result
	result.Fill()
	if result.Subject != "General Topics" {
		t.Fatalf("unexpected subject %q", result.Subject)
	}
	if result.AudienceLevel != LevelIntermediate || result.Difficulty != LevelIntermediate {
		t.Fatalf("unexpected levels: %+v", result)
	}
	if result.Themes == nil || result.Objectives == nil || result.Prerequisites == nil || result.Path == nil {
		t.Fatalf("expected empty collections, got %+v", result)
	}
	if result.Organization != "sequential" {
		t.Fatalf("unexpected organization %q", result.Organization)
	}
}

func TestBuildPromptCapsPayload(t *testing.T) {
	items := testItems()
	items[0].Transcript = strings.Repeat("long transcript ", 1000)
	prompt := BuildPrompt(items, PromptOptions{MaxPromptChars: 500})
	if len(prompt) > 500 {
		t.Fatalf("expected prompt capped to 500 chars, got %d", len(prompt))
	}
}

func TestBuildPromptIncludesAvailability(t *testing.T) {
	prompt := BuildPrompt(testItems(), PromptOptions{TargetLevel: "beginner"})
	if !strings.Contains(prompt, "availability=unavailable") {
		t.Fatalf("expected availability tags in prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Target audience level requested by the user: beginner.") {
		t.Fatalf("expected target level in prompt:\n%s", prompt)
	}
}
