package config

import (
	"errors"
	"fmt"
)

var validFormats = map[string]struct{}{
	"standard": {},
	"enhanced": {},
}

var validLevels = map[string]struct{}{
	"beginner":     {},
	"intermediate": {},
	"advanced":     {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateGenerate(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/coursegen/config.toml"
		}
		return fmt.Errorf("youtube.api_key is required. Set YOUTUBE_API_KEY env var or edit %s (create with 'coursegen config init')", defaultPath)
	}
	if c.YouTube.RequestTimeout <= 0 {
		return errors.New("youtube.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.APIKey == "" {
		return errors.New("llm.api_key must be set (or set OPENROUTER_API_KEY)")
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	return nil
}

func (c *Config) validateGenerate() error {
	if _, ok := validFormats[c.Generate.Format]; !ok {
		return fmt.Errorf("generate.format must be one of standard, enhanced (got %q)", c.Generate.Format)
	}
	if _, ok := validLevels[c.Generate.TargetLevel]; !ok {
		return fmt.Errorf("generate.target_level must be one of beginner, intermediate, advanced (got %q)", c.Generate.TargetLevel)
	}
	if err := ensurePositiveMap(map[string]int{
		"generate.max_videos":                c.Generate.MaxVideos,
		"generate.min_modules":               c.Generate.MinModules,
		"generate.max_modules":               c.Generate.MaxModules,
		"generate.max_assignments":           c.Generate.MaxAssignments,
		"generate.exam_minutes_per_question": c.Generate.ExamMinutesPerQuestion,
		"generate.max_transcript_chars":      c.Generate.MaxTranscriptChars,
		"generate.max_description_chars":     c.Generate.MaxDescriptionChars,
		"generate.max_prompt_chars":          c.Generate.MaxPromptChars,
	}); err != nil {
		return err
	}
	if c.Generate.MaxModules < c.Generate.MinModules {
		return errors.New("generate.max_modules must be >= generate.min_modules")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
