package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYouTube()
	c.normalizeLLM()
	c.normalizeGenerate()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeYouTube() {
	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	if c.YouTube.APIKey == "" {
		if value, ok := os.LookupEnv("YOUTUBE_API_KEY"); ok {
			c.YouTube.APIKey = strings.TrimSpace(value)
		}
	}
	c.YouTube.BaseURL = strings.TrimSpace(c.YouTube.BaseURL)
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultYouTubeBaseURL
	}
	if c.YouTube.RequestTimeout <= 0 {
		c.YouTube.RequestTimeout = defaultYouTubeTimeout
	}
	if len(c.YouTube.Languages) == 0 {
		c.YouTube.Languages = []string{"en"}
	} else {
		langs := make([]string, 0, len(c.YouTube.Languages))
		seen := make(map[string]struct{}, len(c.YouTube.Languages))
		for _, lang := range c.YouTube.Languages {
			normalized := strings.ToLower(strings.TrimSpace(lang))
			if normalized == "" {
				continue
			}
			if _, exists := seen[normalized]; exists {
				continue
			}
			seen[normalized] = struct{}{}
			langs = append(langs, normalized)
		}
		if len(langs) == 0 {
			langs = []string{"en"}
		}
		c.YouTube.Languages = langs
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("COURSEGEN_LLM_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	if c.LLM.Referer == "" {
		c.LLM.Referer = defaultLLMReferer
	}
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
	if c.LLM.Temperature < 0 {
		c.LLM.Temperature = defaultLLMTemperature
	}
	if c.LLM.TopP <= 0 || c.LLM.TopP > 1 {
		c.LLM.TopP = defaultLLMTopP
	}
}

func (c *Config) normalizeGenerate() {
	c.Generate.Format = strings.ToLower(strings.TrimSpace(c.Generate.Format))
	if c.Generate.Format == "" {
		c.Generate.Format = defaultFormat
	}
	c.Generate.TargetLevel = strings.ToLower(strings.TrimSpace(c.Generate.TargetLevel))
	if c.Generate.TargetLevel == "" {
		c.Generate.TargetLevel = defaultTargetLevel
	}
	c.Generate.Organization = strings.ToLower(strings.TrimSpace(c.Generate.Organization))
	if c.Generate.Organization == "" {
		c.Generate.Organization = defaultOrganization
	}
	if c.Generate.MaxVideos <= 0 {
		c.Generate.MaxVideos = defaultMaxVideos
	}
	if c.Generate.MinModules <= 0 {
		c.Generate.MinModules = defaultMinModules
	}
	if c.Generate.MaxModules <= 0 {
		c.Generate.MaxModules = defaultMaxModules
	}
	if c.Generate.MaxModules < c.Generate.MinModules {
		c.Generate.MaxModules = c.Generate.MinModules
	}
	if c.Generate.MaxAssignments <= 0 {
		c.Generate.MaxAssignments = defaultMaxAssignments
	}
	if c.Generate.ExamMinutesPerQuestion <= 0 {
		c.Generate.ExamMinutesPerQuestion = defaultExamMinutesPerQ
	}
	if c.Generate.MaxTranscriptChars <= 0 {
		c.Generate.MaxTranscriptChars = defaultMaxTranscriptChars
	}
	if c.Generate.MaxDescriptionChars <= 0 {
		c.Generate.MaxDescriptionChars = defaultMaxDescriptionChars
	}
	if c.Generate.MaxPromptChars <= 0 {
		c.Generate.MaxPromptChars = defaultMaxPromptChars
	}
}

func (c *Config) normalizeCache() error {
	var err error
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath
	}
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
