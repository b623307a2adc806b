package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Desktop   DesktopConfig
	Content   ContentConfig
	Reasoning ReasoningConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000" validate:"required,numeric"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100" validate:"gte=0"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200" validate:"gte=0"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// DesktopConfig holds window layout and visitor session configuration.
type DesktopConfig struct {
	ScreenWidth    int           `envconfig:"SCREEN_WIDTH" default:"1440" validate:"gt=0"`
	ScreenHeight   int           `envconfig:"SCREEN_HEIGHT" default:"900" validate:"gt=0"`
	WindowWidth    int           `envconfig:"WINDOW_WIDTH" default:"750" validate:"gt=0"`
	WindowHeight   int           `envconfig:"WINDOW_HEIGHT" default:"500" validate:"gt=0"`
	TopBoundary    int           `envconfig:"TOP_BOUNDARY" default:"28" validate:"gte=0"`
	CascadeStep    int           `envconfig:"CASCADE_STEP" default:"30" validate:"gte=0"`
	CascadeWrap    int           `envconfig:"CASCADE_WRAP" default:"200" validate:"gt=0"`
	SessionIdleTTL time.Duration `envconfig:"SESSION_IDLE_TTL" default:"30m" validate:"gt=0"`
	MaxSessions    int           `envconfig:"MAX_SESSIONS" default:"1000" validate:"gt=0"`
}

// ContentConfig holds portfolio content configuration.
// An empty Dir serves the embedded portfolio.
type ContentConfig struct {
	Dir     string `envconfig:"CONTENT_DIR" default:""`
	Pattern string `envconfig:"CONTENT_PATTERN" default:"**/*.{yaml,yml,toml,json}"`
}

// ReasoningConfig holds reasoning service configuration.
// An empty URL selects the offline heuristic translator.
type ReasoningConfig struct {
	URL     string        `envconfig:"REASONING_URL" default:"" validate:"omitempty,url"`
	APIKey  string        `envconfig:"REASONING_API_KEY" default:""`
	Timeout time.Duration `envconfig:"REASONING_TIMEOUT" default:"15s" validate:"gt=0"`
	Retries int           `envconfig:"REASONING_RETRIES" default:"2" validate:"gte=0"`
}

// Load loads configuration from environment variables.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile loads configuration from environment variables after applying
// the dotenv file at path. Variables already set in the environment win.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration bounds.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Desktop: DesktopConfig{
			ScreenWidth:    1440,
			ScreenHeight:   900,
			WindowWidth:    750,
			WindowHeight:   500,
			TopBoundary:    28,
			CascadeStep:    30,
			CascadeWrap:    200,
			SessionIdleTTL: 30 * time.Minute,
			MaxSessions:    1000,
		},
		Content: ContentConfig{
			Pattern: "**/*.{yaml,yml,toml,json}",
		},
		Reasoning: ReasoningConfig{
			Timeout: 15 * time.Second,
			Retries: 2,
		},
	}
}
