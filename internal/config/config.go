package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// YouTube contains configuration for the YouTube Data API.
type YouTube struct {
	APIKey    string   `toml:"api_key"`
	BaseURL   string   `toml:"base_url"`
	Languages []string `toml:"transcript_languages"`
	// RequestTimeout bounds each metadata/transcript request, in seconds.
	RequestTimeout int `toml:"request_timeout"`
}

// LLM contains connection settings for the generative analysis backend.
type LLM struct {
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Model          string  `toml:"model"`
	Referer        string  `toml:"referer"`
	Title          string  `toml:"title"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Temperature    float64 `toml:"temperature"`
	TopP           float64 `toml:"top_p"`
}

// Generate contains course synthesis policy knobs.
type Generate struct {
	Format      string `toml:"format"`
	MaxVideos   int    `toml:"max_videos"`
	TargetLevel string `toml:"target_level"`
	// Organization is the module organization style suggested to the
	// analyzer, e.g. "sequential" or "thematic".
	Organization string `toml:"organization"`
	// MinModules/MaxModules bound the fallback partition used when the
	// analysis does not supply a usable learning path.
	MinModules     int `toml:"min_modules"`
	MaxModules     int `toml:"max_modules"`
	MaxAssignments int `toml:"max_assignments"`
	// ExamMinutesPerQuestion sizes the final exam: one question per this many
	// estimated course minutes, clamped to [3, 10] questions.
	ExamMinutesPerQuestion int `toml:"exam_minutes_per_question"`
	// MaxTranscriptChars/MaxDescriptionChars are prefix-cut truncation limits
	// applied during normalization to bound the analysis payload.
	MaxTranscriptChars  int `toml:"max_transcript_chars"`
	MaxDescriptionChars int `toml:"max_description_chars"`
	MaxPromptChars      int `toml:"max_prompt_chars"`
}

// Cache contains configuration for the local analysis cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for coursegen.
//
// Sections by subsystem:
//   - Paths: output and log directories
//   - YouTube: playlist metadata and transcript retrieval
//   - LLM: generative analysis backend connection
//   - Generate: synthesis policy constants (module counts, exam sizing, truncation)
//   - Cache: local analysis result cache
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	YouTube  YouTube  `toml:"youtube"`
	LLM      LLM      `toml:"llm"`
	Generate Generate `toml:"generate"`
	Cache    Cache    `toml:"cache"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/coursegen/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("coursegen.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for a generation run.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, c.Paths.LogDir}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.Cache.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains the generative backend connection settings in the shape
// the llm client consumes.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
	Temperature    float64
	TopP           float64
}

// GetLLM returns the generative backend connection settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		Referer:        strings.TrimSpace(c.LLM.Referer),
		Title:          strings.TrimSpace(c.LLM.Title),
		TimeoutSeconds: c.LLM.TimeoutSeconds,
		Temperature:    c.LLM.Temperature,
		TopP:           c.LLM.TopP,
	}
}
