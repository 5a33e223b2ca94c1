package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// GhostConfig holds Ghost Content API access settings.
type GhostConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Limit   int    `mapstructure:"limit"`   // 0 means fetch everything
	Timeout string `mapstructure:"timeout"` // duration string, e.g., "30s"
}

// OutputConfig controls which artifacts are written and where.
type OutputConfig struct {
	Dir         string `mapstructure:"dir"`
	JSON        bool   `mapstructure:"json"`
	Text        bool   `mapstructure:"text"`
	Index       bool   `mapstructure:"index"`
	Markdown    bool   `mapstructure:"markdown"`
	Images      bool   `mapstructure:"images"`
	WebPQuality int    `mapstructure:"webp_quality"`
}

// SyncConfig controls the serve-mode sync worker.
type SyncConfig struct {
	Interval string `mapstructure:"interval"` // duration string, e.g., "1h"
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// OpenAIConfig holds the optional summarizer settings.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// DigestConfig controls digest generation.
type DigestConfig struct {
	TopN     int    `mapstructure:"top_n"`
	Title    string `mapstructure:"title"`
	Preface  string `mapstructure:"preface"`
	Language string `mapstructure:"language"`
}

// Config is the top-level configuration structure.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Ghost  GhostConfig  `mapstructure:"ghost"`
	Output OutputConfig `mapstructure:"output"`
	Sync   SyncConfig   `mapstructure:"sync"`
	Redis  RedisConfig  `mapstructure:"redis"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Digest DigestConfig `mapstructure:"digest"`
}

// FillDefaults applies default values if not provided.
// Boolean artifact toggles default via viper in cmd/root.go since a zero bool
// is indistinguishable from an explicit false here.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Ghost.Timeout == "" {
		c.Ghost.Timeout = "30s"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./ghost_posts"
	}
	if c.Output.WebPQuality <= 0 || c.Output.WebPQuality > 100 {
		c.Output.WebPQuality = 85
	}
	if c.Sync.Interval == "" {
		c.Sync.Interval = "1h"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Digest.TopN == 0 {
		c.Digest.TopN = 10
	}
}
