// Package config loads every runtime setting from the environment. Missing
// required secrets abort startup before any connection is opened.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-supplied settings for the bot.
type Config struct {
	// Required secrets.
	DiscordToken string `env:"DISCORD_BOT_TOKEN,required"`
	OpenAIKey    string `env:"OPENAI_API_KEY,required"`
	SerpAPIKey   string `env:"SERPAPI_KEY,required"`
	PostgresURL  string `env:"POSTGRES_URL,required"`

	// Completion API.
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	Model         string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`

	// Search API.
	SearchResultCount int    `env:"SERPAPI_NUM" envDefault:"30"`
	SearchLanguage    string `env:"SERPAPI_LANG" envDefault:"ja"`

	// Per-call timeouts for outbound network operations.
	LLMTimeout    time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	SearchTimeout time.Duration `env:"SEARCH_TIMEOUT" envDefault:"15s"`

	// SummaryInterval of zero disables the rolling summary job.
	SummaryInterval time.Duration `env:"SUMMARY_INTERVAL" envDefault:"0"`

	// ClassifierFailOpen degrades a failed search-intent classification to
	// "no search" instead of failing the whole request.
	ClassifierFailOpen bool `env:"CLASSIFIER_FAIL_OPEN" envDefault:"false"`

	// PersonaFile optionally points at a JSON persona registry that
	// overrides the compiled-in templates.
	PersonaFile string `env:"PERSONA_FILE"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":6060"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings env tags cannot express.
func (c *Config) Validate() error {
	if c.SearchResultCount <= 0 {
		return fmt.Errorf("SERPAPI_NUM must be positive, got %d", c.SearchResultCount)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLMTimeout)
	}
	if c.SearchTimeout <= 0 {
		return fmt.Errorf("SEARCH_TIMEOUT must be positive, got %s", c.SearchTimeout)
	}
	if c.SummaryInterval < 0 {
		return fmt.Errorf("SUMMARY_INTERVAL must not be negative, got %s", c.SummaryInterval)
	}
	return nil
}
