package main

import (
	"flag"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/audi70r/ghprofile/internal/config"
	"github.com/audi70r/ghprofile/internal/github"
	"github.com/audi70r/ghprofile/internal/logging"
	"github.com/audi70r/ghprofile/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ghprofile: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var mode string
	flag.StringVar(&cfg.Username, "user", "", "GitHub username to search on startup")
	flag.StringVar(&mode, "mode", string(cfg.CommitMode), "commit chart: commits (daily, last 100) or activity (weekly)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "show the commit lookup debug panel")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file path, empty to disable")
	flag.Parse()

	cfg.CommitMode = config.CommitMode(mode)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	if cfg.GitHubToken == "" {
		log.Warn("GHPROFILE_GITHUB_TOKEN not set, using unauthenticated GitHub API (rate limited)")
	}

	client, err := github.NewClient(github.Options{
		BaseURL:        cfg.APIBaseURL,
		Token:          cfg.GitHubToken,
		UserAgent:      cfg.UserAgent,
		RepoPageSize:   cfg.RepoPageSize,
		CommitPageSize: cfg.CommitPageSize,
	}, log)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"api":  cfg.APIBaseURL,
		"mode": cfg.CommitMode,
	}).Info("starting")

	return ui.NewApp(cfg, client, log).Run()
}
