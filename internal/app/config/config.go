package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP     HTTP       `mapstructure:",squash"`
	Redis    Redis      `mapstructure:",squash"`
	Gemini   Gemini     `mapstructure:",squash"`
	Search   Search     `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Redis struct {
	Addr     string `mapstructure:"REDIS_ADDR"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

// Gemini holds the model-service configuration. The API key is provisioned
// through the environment.
type Gemini struct {
	APIKey         string        `mapstructure:"GEMINI_API_KEY"`
	BaseURL        string        `mapstructure:"GEMINI_BASE_URL"`
	Model          string        `mapstructure:"GEMINI_MODEL"`
	Timeout        time.Duration `mapstructure:"GEMINI_TIMEOUT"`
	ThinkingBudget int           `mapstructure:"GEMINI_THINKING_BUDGET"`
	RateLimitRPS   int           `mapstructure:"GEMINI_RATE_LIMIT"`
}

type Search struct {
	// MaxRetries bounds retries of the model invocation; 0 means single-shot.
	MaxRetries uint64 `mapstructure:"SEARCH_MAX_RETRIES"`
}
