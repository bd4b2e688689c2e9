package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coursegen/internal/logging"
)

func TestConsoleHandlerPrefixesComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "analyzer")
	component.Info("analysis started", logging.Int(logging.FieldItemCount, 4))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "INFO analyzer: analysis started") {
		t.Fatalf("expected component prefix in output, got %q", out)
	}
	if !strings.Contains(out, "item_count=4") {
		t.Fatalf("expected item_count attr in output, got %q", out)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("suppressed")
	logger.Warn("kept")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "suppressed") {
		t.Fatalf("expected info record suppressed, got %q", out)
	}
	if !strings.Contains(out, "WARN kept") {
		t.Fatalf("expected warn record, got %q", out)
	}
}

func TestWithContextAddsRunAndStageFields(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := logging.WithRunID(context.Background(), "run-123")
	ctx = logging.WithStage(ctx, "synthesize")

	logging.WithContext(ctx, base).Info("stage started")

	out := buf.String()
	if !strings.Contains(out, "run_id=run-123") {
		t.Fatalf("expected run_id field, got %q", out)
	}
	if !strings.Contains(out, "stage=synthesize") {
		t.Fatalf("expected stage field, got %q", out)
	}
}

func TestWithContextNilLoggerReturnsNop(t *testing.T) {
	logger := logging.WithContext(context.Background(), nil)
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	// Must not panic.
	logger.Info("ignored")
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
