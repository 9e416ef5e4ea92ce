// internal/config/config.go
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application. It is loaded once at
// startup and passed into each stage entry point; stages never read the
// environment themselves.
type Config struct {
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	DBURL            string `mapstructure:"DB_URL"`
	GithubToken      string `mapstructure:"GITHUB_TOKEN"`
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel      string `mapstructure:"GEMINI_MODEL"`
	RepoSampleSize   int    `mapstructure:"REPO_SAMPLE_SIZE"`
	CommitSampleSize int    `mapstructure:"COMMIT_SAMPLE_SIZE"`
	ContributorLimit int    `mapstructure:"CONTRIBUTOR_LIMIT"`
	FetchConcurrency int    `mapstructure:"FETCH_CONCURRENCY"`
	HTTPAddr         string `mapstructure:"HTTP_ADDR"`
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("REPO_SAMPLE_SIZE", 1)
	viper.SetDefault("COMMIT_SAMPLE_SIZE", 10)
	viper.SetDefault("CONTRIBUTOR_LIMIT", 50)
	viper.SetDefault("FETCH_CONCURRENCY", 5)
	viper.SetDefault("HTTP_ADDR", ":8080")

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}
	if cfg.RepoSampleSize <= 0 {
		return nil, errors.New("REPO_SAMPLE_SIZE must be a positive integer")
	}
	if cfg.CommitSampleSize <= 0 {
		return nil, errors.New("COMMIT_SAMPLE_SIZE must be a positive integer")
	}
	if cfg.FetchConcurrency <= 0 {
		return nil, errors.New("FETCH_CONCURRENCY must be a positive integer")
	}

	return &cfg, nil
}

// RequireGithub checks the credential needed by stages that talk to the
// repository service. Checked before any network activity.
func (c *Config) RequireGithub() error {
	if c.GithubToken == "" {
		return errors.New("GITHUB_TOKEN is required for this stage")
	}
	return nil
}

// RequireGemini checks the credential needed by stages that call the
// text-completion service.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is required for this stage")
	}
	return nil
}
