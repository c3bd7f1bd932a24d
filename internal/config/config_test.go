package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.github.com/", cfg.APIBaseURL)
	assert.Equal(t, 100, cfg.RepoPageSize)
	assert.Equal(t, 100, cfg.CommitPageSize)
	assert.Equal(t, CommitModeList, cfg.CommitMode)
	assert.Equal(t, 12, cfg.RecentWeeks)
	assert.Equal(t, 10, cfg.RecentCommits)
	assert.Zero(t, cfg.RequestTimeout)
	assert.False(t, cfg.Debug)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GHPROFILE_API_BASE_URL", "http://localhost:8080/api/v3/")
	t.Setenv("GHPROFILE_GITHUB_TOKEN", "ghp_example")
	t.Setenv("GHPROFILE_COMMIT_MODE", "Activity")
	t.Setenv("GHPROFILE_REPO_PAGE_SIZE", "30")
	t.Setenv("GHPROFILE_REQUEST_TIMEOUT", "15s")
	t.Setenv("GHPROFILE_DEBUG", "true")
	t.Setenv("GHPROFILE_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v3/", cfg.APIBaseURL)
	assert.Equal(t, "ghp_example", cfg.GitHubToken)
	assert.Equal(t, CommitModeActivity, cfg.CommitMode)
	assert.Equal(t, 30, cfg.RepoPageSize)
	assert.Equal(t, 100, cfg.CommitPageSize)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"page size above API limit", "GHPROFILE_REPO_PAGE_SIZE", "101"},
		{"zero commit page size", "GHPROFILE_COMMIT_PAGE_SIZE", "0"},
		{"unknown commit mode", "GHPROFILE_COMMIT_MODE", "graph"},
		{"unparsable number", "GHPROFILE_RECENT_WEEKS", "many"},
		{"weeks beyond a year", "GHPROFILE_RECENT_WEEKS", "53"},
		{"bad base url", "GHPROFILE_API_BASE_URL", "not a url"},
		{"negative timeout", "GHPROFILE_REQUEST_TIMEOUT", "-1s"},
		{"unknown log level", "GHPROFILE_LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
