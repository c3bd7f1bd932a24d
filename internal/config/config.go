package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "GHPROFILE"

// CommitMode selects the commit data shape charted for a repository
type CommitMode string

const (
	// CommitModeList charts up to 100 recent commits bucketed by day
	CommitModeList CommitMode = "commits"
	// CommitModeActivity charts the weekly commit activity summary
	CommitModeActivity CommitMode = "activity"
)

// Config holds application configuration
type Config struct {
	// API settings
	APIBaseURL     string        `envconfig:"API_BASE_URL" validate:"required,url"`
	GitHubToken    string        `envconfig:"GITHUB_TOKEN"`
	UserAgent      string        `split_words:"true"`
	RequestTimeout time.Duration `split_words:"true"` // 0 disables the timeout

	// Limits
	RepoPageSize   int `split_words:"true" validate:"min=1,max=100"`
	CommitPageSize int `split_words:"true" validate:"min=1,max=100"`

	// Display settings
	CommitMode    CommitMode `split_words:"true" validate:"oneof=commits activity"`
	RecentWeeks   int        `split_words:"true" validate:"min=1,max=52"`
	RecentCommits int        `split_words:"true" validate:"min=1,max=100"`
	Debug         bool

	// Logging
	LogFile  string `split_words:"true"`
	LogLevel string `split_words:"true" validate:"oneof=trace debug info warn warning error"`

	// Username searched on startup, set from the command line
	Username string `ignored:"true"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		APIBaseURL:     "https://api.github.com/",
		UserAgent:      "ghprofile/0.1",
		RepoPageSize:   100,
		CommitPageSize: 100,
		CommitMode:     CommitModeList,
		RecentWeeks:    12,
		RecentCommits:  10,
		LogFile:        filepath.Join(os.TempDir(), "ghprofile.log"),
		LogLevel:       "info",
	}
}

// Load overlays GHPROFILE_* environment variables on the defaults and validates the result
func Load() (*Config, error) {
	cfg := Default()
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and enumerations
func (c *Config) Validate() error {
	c.CommitMode = CommitMode(strings.ToLower(string(c.CommitMode)))
	c.LogLevel = strings.ToLower(c.LogLevel)

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if c.RequestTimeout < 0 {
		return errors.New("invalid configuration: request timeout must not be negative")
	}
	return nil
}
