package main

import (
	"context"
	"os"
	"testing"

	"coursegen/internal/analysis"
	"coursegen/internal/cache"
	"coursegen/internal/config"
)

func TestCacheListEmpty(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	out, _, err := runCLI(t, []string{"cache", "list"}, configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "Cache is empty")
}

func TestCacheListAndClear(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	result := &analysis.Result{Subject: "Networking"}
	result.Fill()
	if err := store.Put(context.Background(), "key-one", "PLtest", "test-model", result); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close cache: %v", err)
	}

	out, _, err := runCLI(t, []string{"cache", "list"}, configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "PLtest")
	requireContains(t, out, "test-model")
	requireContains(t, out, "1 entries")

	out, _, err = runCLI(t, []string{"cache", "clear"}, configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 1 cache entries")

	out, _, err = runCLI(t, []string{"cache", "list"}, configPath)
	if err != nil {
		t.Fatalf("cache list after clear: %v", err)
	}
	requireContains(t, out, "Cache is empty")
}

func TestCacheCommandsRequireEnabledCache(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	// Rewrite the config with caching turned off.
	disabled := `[youtube]
api_key = "yt-key"

[llm]
api_key = "llm-key"

[cache]
enabled = false
`
	if err := os.WriteFile(configPath, []byte(disabled), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	_, _, err := runCLI(t, []string{"cache", "list"}, configPath)
	if err == nil {
		t.Fatal("expected error with cache disabled")
	}
	requireContains(t, err.Error(), "cache is disabled")
}
