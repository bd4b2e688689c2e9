package main

import (
	"os"
	"path/filepath"
	"testing"

	"coursegen/internal/render"
	"coursegen/internal/synthesis"
)

func TestCourseSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Docker Fundamentals", "docker-fundamentals"},
		{"Go: Concurrency & Channels!", "go-concurrency-channels"},
		{"  spaced   out  ", "spaced-out"},
		{"___", "course"},
		{"", "course"},
	}
	for _, tc := range cases {
		got := courseSlug(&synthesis.Course{Title: tc.title})
		if got != tc.want {
			t.Errorf("courseSlug(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestWriteCourseFiles(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "courses")
	output := &render.Output{
		JSON:     []byte(`{"title":"Test"}` + "\n"),
		Markdown: []byte("# Test\n"),
		Combined: []byte("<!DOCTYPE html>\n"),
	}

	paths, err := writeCourseFiles(outDir, "test-course", output)
	if err != nil {
		t.Fatalf("writeCourseFiles: %v", err)
	}

	for format, want := range map[string][]byte{
		"json":     output.JSON,
		"markdown": output.Markdown,
		"html":     output.Combined,
	} {
		data, err := os.ReadFile(paths[format])
		if err != nil {
			t.Fatalf("read %s output: %v", format, err)
		}
		if string(data) != string(want) {
			t.Errorf("%s output mismatch: got %q want %q", format, data, want)
		}
	}
}

func TestFormatCourseMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "unknown"},
		{45, "45 min"},
		{60, "1 h"},
		{90, "1 h 30 min"},
		{120, "2 h"},
	}
	for _, tc := range cases {
		if got := formatCourseMinutes(tc.minutes); got != tc.want {
			t.Errorf("formatCourseMinutes(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestGenerateRequiresPlaylistArgument(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	_, _, err := runCLI(t, []string{"generate"}, configPath)
	if err == nil {
		t.Fatal("expected error when playlist argument is missing")
	}
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	_, _, err := runCLI(t, []string{"generate", "--format", "fancy", "PLxxxxxxxxxxxx"}, configPath)
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	requireContains(t, err.Error(), "unknown format")
}
