package config

import (
	"fmt"
	"strings"
	"time"
)

// validateConfig validates the loaded configuration values and resolves the
// timezone.
func validateConfig(config *Config) error {
	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", config.Timezone, err)
	}
	config.location = loc

	if err := validatePathsConfig(&config.Paths); err != nil {
		return fmt.Errorf("paths config validation failed: %w", err)
	}

	if err := validateFeedsConfig(&config.Feeds); err != nil {
		return fmt.Errorf("feeds config validation failed: %w", err)
	}

	if err := validateLLMConfig(&config.LLM); err != nil {
		return fmt.Errorf("llm config validation failed: %w", err)
	}

	if err := validateDigestConfig(&config.Digest); err != nil {
		return fmt.Errorf("digest config validation failed: %w", err)
	}

	if config.Archive.HistoryLimit < 1 {
		return fmt.Errorf("archive config validation failed: history limit must be at least 1, got %d", config.Archive.HistoryLimit)
	}

	if err := validateFTPConfig(&config.Publish.FTP); err != nil {
		return fmt.Errorf("ftp config validation failed: %w", err)
	}

	if err := validateSchedulerConfig(&config.Scheduler); err != nil {
		return fmt.Errorf("scheduler config validation failed: %w", err)
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	if config.OTel.SampleRatio < 0 || config.OTel.SampleRatio > 1 {
		return fmt.Errorf("otel config validation failed: sample ratio must be within [0,1], got %v", config.OTel.SampleRatio)
	}

	return nil
}

func validatePathsConfig(config *PathsConfig) error {
	if config.DataDir == "" || config.WebDir == "" || config.LogDir == "" {
		return fmt.Errorf("data, web and log directories must be set")
	}
	return nil
}

func validateFeedsConfig(config *FeedsConfig) error {
	if len(config.Sources) == 0 {
		return fmt.Errorf("at least one feed source is required")
	}

	for i, src := range config.Sources {
		if src.Name == "" || src.URL == "" {
			return fmt.Errorf("feed source %d must have a name and url", i)
		}
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %v", config.Timeout)
	}

	if config.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", config.Concurrency)
	}

	if config.MaxPerSource < 1 {
		return fmt.Errorf("max per source must be at least 1, got %d", config.MaxPerSource)
	}

	if config.MaxAge <= 0 {
		return fmt.Errorf("max age must be positive, got %v", config.MaxAge)
	}

	if config.SummaryChars < 1 {
		return fmt.Errorf("summary chars must be at least 1, got %d", config.SummaryChars)
	}

	return nil
}

func validateLLMConfig(config *LLMConfig) error {
	switch config.Provider {
	case ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("unknown provider %q (must be gemini or ollama)", config.Provider)
	}

	if len(config.Candidates) == 0 {
		return fmt.Errorf("at least one candidate model is required")
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive, got %v", config.Timeout)
	}

	return nil
}

func validateDigestConfig(config *DigestConfig) error {
	if config.TopArticles < 1 || config.CommentaryArticles < 1 || config.CommentaryMaxItems < 1 {
		return fmt.Errorf("digest sizes must be positive, got top=%d commentary=%d items=%d",
			config.TopArticles, config.CommentaryArticles, config.CommentaryMaxItems)
	}
	return nil
}

func validateFTPConfig(config *FTPConfig) error {
	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", config.Timeout)
	}

	return nil
}

func validateSchedulerConfig(config *SchedulerConfig) error {
	if len(config.Triggers) == 0 {
		return fmt.Errorf("at least one trigger time is required")
	}

	for _, trig := range config.Triggers {
		if _, err := time.Parse("15:04", strings.TrimSpace(trig)); err != nil {
			return fmt.Errorf("invalid trigger time %q (want HH:MM)", trig)
		}
	}

	if config.ChunkInterval <= 0 {
		return fmt.Errorf("chunk interval must be positive, got %v", config.ChunkInterval)
	}

	if config.RunTimeout <= 0 {
		return fmt.Errorf("run timeout must be positive, got %v", config.RunTimeout)
	}

	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(config.Level)] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", config.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[config.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", config.Format)
	}

	return nil
}
