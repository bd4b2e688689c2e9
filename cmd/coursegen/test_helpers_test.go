package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with the given args and captured output.
func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	full := args
	if configPath != "" {
		full = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(full)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTestConfig creates a valid configuration file rooted under base and
// returns its path.
func writeTestConfig(t *testing.T, base string) string {
	t.Helper()

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
output_dir = %q
log_dir = %q

[youtube]
api_key = "yt-test-key-1234567890"

[llm]
api_key = "sk-or-test-key-1234567890"

[cache]
enabled = true
path = %q
`,
		filepath.Join(base, "output"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "cache", "analysis.db"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return configPath
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
