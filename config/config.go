// Package config provides Viper-based configuration management for ai-news-daily
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Yaz-U/ai-news-daily/domain"
)

// Config is the single immutable configuration value handed to every component.
type Config struct {
	Timezone  string          `mapstructure:"timezone"`
	Paths     PathsConfig     `mapstructure:"paths"`
	Feeds     FeedsConfig     `mapstructure:"feeds"`
	Filter    FilterConfig    `mapstructure:"filter"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Digest    DigestConfig    `mapstructure:"digest"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
	Publish   PublishConfig   `mapstructure:"publish"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	OTel      OTelConfig      `mapstructure:"otel"`

	location *time.Location
}

// PathsConfig holds the storage locations. Missing directories are created.
type PathsConfig struct {
	DataDir string `mapstructure:"data_dir"`
	WebDir  string `mapstructure:"web_dir"`
	LogDir  string `mapstructure:"log_dir"`
}

// FeedsConfig controls ingestion.
type FeedsConfig struct {
	Sources      []domain.FeedSource `mapstructure:"sources"`
	Timeout      time.Duration       `mapstructure:"timeout"`
	Concurrency  int                 `mapstructure:"concurrency"`
	HostInterval time.Duration       `mapstructure:"host_interval"`
	UserAgent    string              `mapstructure:"user_agent"`
	MaxPerSource int                 `mapstructure:"max_per_source"`
	MaxAge       time.Duration       `mapstructure:"max_age"`
	SummaryChars int                 `mapstructure:"summary_chars"`
}

// FilterConfig holds the relevance vocabulary.
type FilterConfig struct {
	Keywords []string `mapstructure:"keywords"`
}

// LLMConfig selects and configures the completion backend.
type LLMConfig struct {
	Provider        string        `mapstructure:"provider"`
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	OllamaHost      string        `mapstructure:"ollama_host"`
	Candidates      []string      `mapstructure:"candidates"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
}

// DigestConfig sizes the prompts and outputs.
type DigestConfig struct {
	TopArticles        int `mapstructure:"top_articles"`
	CommentaryArticles int `mapstructure:"commentary_articles"`
	CommentaryMaxItems int `mapstructure:"commentary_max_items"`
}

// ArchiveConfig controls the history read.
type ArchiveConfig struct {
	HistoryLimit int `mapstructure:"history_limit"`
}

// PublishConfig controls the render and the FTP push.
type PublishConfig struct {
	HistoryTabs int       `mapstructure:"history_tabs"`
	FTP         FTPConfig `mapstructure:"ftp"`
}

// FTPConfig holds the push target. The push is skipped unless host, user and
// password are all set.
type FTPConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	User        string        `mapstructure:"user"`
	Password    string        `mapstructure:"password"`
	RemotePath  string        `mapstructure:"remote_path"`
	Timeout     time.Duration `mapstructure:"timeout"`
	DisableEPSV bool          `mapstructure:"disable_epsv"`
}

// Configured reports whether the push has credentials.
func (c FTPConfig) Configured() bool {
	return c.Host != "" && c.User != "" && c.Password != ""
}

// Addr returns host:port.
func (c FTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SchedulerConfig controls the resident trigger loop.
type SchedulerConfig struct {
	Triggers      []string      `mapstructure:"triggers"`
	ChunkInterval time.Duration `mapstructure:"chunk_interval"`
	RunOnStart    bool          `mapstructure:"run_on_start"`
	RunTimeout    time.Duration `mapstructure:"run_timeout"`
	StatusAddr    string        `mapstructure:"status_addr"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls the Prometheus textfile written by a run.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// OTelConfig holds OpenTelemetry export settings.
type OTelConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	Environment string  `mapstructure:"environment"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// Location returns the configured timezone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// BackendConfigured reports whether a completion backend can be called.
func (c *Config) BackendConfigured() bool {
	switch c.LLM.Provider {
	case ProviderOllama:
		return c.LLM.OllamaHost != ""
	default:
		return c.LLM.APIKey != ""
	}
}

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// envBindings maps keys to the unprefixed variable names deployments already use.
var envBindings = map[string][]string{
	"llm.api_key":             {"AINEWS_LLM_API_KEY", "GEMINI_API_KEY"},
	"publish.ftp.host":        {"AINEWS_PUBLISH_FTP_HOST", "FTP_HOST"},
	"publish.ftp.user":        {"AINEWS_PUBLISH_FTP_USER", "FTP_USER"},
	"publish.ftp.password":    {"AINEWS_PUBLISH_FTP_PASSWORD", "FTP_PASSWORD"},
	"publish.ftp.remote_path": {"AINEWS_PUBLISH_FTP_REMOTE_PATH", "FTP_REMOTE_PATH"},
	"otel.enabled":            {"AINEWS_OTEL_ENABLED", "OTEL_ENABLED"},
	"otel.endpoint":           {"AINEWS_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"},
}

// Load reads configuration from file and environment variables
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("ai-news-daily")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ai-news-daily")
	}

	v.SetEnvPrefix("AINEWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if len(cfg.Feeds.Sources) == 0 {
		feeds, err := DefaultFeeds()
		if err != nil {
			return nil, err
		}
		cfg.Feeds.Sources = feeds
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "Asia/Tokyo")

	v.SetDefault("paths.data_dir", "data")
	v.SetDefault("paths.web_dir", "web")
	v.SetDefault("paths.log_dir", "logs")

	v.SetDefault("feeds.timeout", 20*time.Second)
	v.SetDefault("feeds.concurrency", 6)
	v.SetDefault("feeds.host_interval", time.Second)
	v.SetDefault("feeds.user_agent", "ai-news-daily/1.0 (+feed reader)")
	v.SetDefault("feeds.max_per_source", 5)
	v.SetDefault("feeds.max_age", 24*time.Hour)
	v.SetDefault("feeds.summary_chars", 500)

	v.SetDefault("filter.keywords", DefaultKeywords)

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("llm.ollama_host", "")
	v.SetDefault("llm.candidates", DefaultCandidates)
	v.SetDefault("llm.timeout", 90*time.Second)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_output_tokens", 8192)

	v.SetDefault("digest.top_articles", 10)
	v.SetDefault("digest.commentary_articles", 15)
	v.SetDefault("digest.commentary_max_items", 4)

	v.SetDefault("archive.history_limit", 12)

	v.SetDefault("publish.history_tabs", 8)
	v.SetDefault("publish.ftp.host", "")
	v.SetDefault("publish.ftp.port", 21)
	v.SetDefault("publish.ftp.user", "")
	v.SetDefault("publish.ftp.password", "")
	v.SetDefault("publish.ftp.remote_path", "/")
	v.SetDefault("publish.ftp.timeout", 30*time.Second)
	v.SetDefault("publish.ftp.disable_epsv", true)

	v.SetDefault("scheduler.triggers", DefaultTriggers)
	v.SetDefault("scheduler.chunk_interval", 5*time.Minute)
	v.SetDefault("scheduler.run_on_start", true)
	v.SetDefault("scheduler.run_timeout", 20*time.Minute)
	v.SetDefault("scheduler.status_addr", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("metrics.textfile", "")

	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "http://localhost:4318")
	v.SetDefault("otel.service_name", "ai-news-daily")
	v.SetDefault("otel.environment", "development")
	v.SetDefault("otel.sample_ratio", 1.0)
}
