package config

const (
	defaultOutputDir           = "~/.local/share/coursegen/output"
	defaultLogDir              = "~/.local/share/coursegen/logs"
	defaultCachePath           = "~/.cache/coursegen/analysis.db"
	defaultYouTubeBaseURL      = "https://www.googleapis.com/youtube/v3"
	defaultYouTubeTimeout      = 30
	defaultLLMBaseURL          = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel            = "google/gemini-3-flash-preview"
	defaultLLMReferer          = "https://github.com/coursegen/coursegen"
	defaultLLMTitle            = "Coursegen Analyzer"
	defaultLLMTimeoutSeconds   = 120
	defaultLLMTemperature      = 0.3
	defaultLLMTopP             = 0.8
	defaultFormat              = "standard"
	defaultMaxVideos           = 50
	defaultTargetLevel         = "intermediate"
	defaultOrganization        = "sequential"
	defaultMinModules          = 3
	defaultMaxModules          = 6
	defaultMaxAssignments      = 3
	defaultExamMinutesPerQ     = 30
	defaultMaxTranscriptChars  = 4000
	defaultMaxDescriptionChars = 500
	defaultMaxPromptChars      = 48000
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		YouTube: YouTube{
			BaseURL:        defaultYouTubeBaseURL,
			Languages:      []string{"en"},
			RequestTimeout: defaultYouTubeTimeout,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
			Temperature:    defaultLLMTemperature,
			TopP:           defaultLLMTopP,
		},
		Generate: Generate{
			Format:                 defaultFormat,
			MaxVideos:              defaultMaxVideos,
			TargetLevel:            defaultTargetLevel,
			Organization:           defaultOrganization,
			MinModules:             defaultMinModules,
			MaxModules:             defaultMaxModules,
			MaxAssignments:         defaultMaxAssignments,
			ExamMinutesPerQuestion: defaultExamMinutesPerQ,
			MaxTranscriptChars:     defaultMaxTranscriptChars,
			MaxDescriptionChars:    defaultMaxDescriptionChars,
			MaxPromptChars:         defaultMaxPromptChars,
		},
		Cache: Cache{
			Enabled: true,
			Path:    defaultCachePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
