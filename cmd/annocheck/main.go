// Package main implements the annocheck CLI for validating disease
// annotation supporting text against the publications it cites.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/annocheck/internal/config"
	"github.com/fyrsmithlabs/annocheck/internal/fetch"
	"github.com/fyrsmithlabs/annocheck/internal/identifier"
	"github.com/fyrsmithlabs/annocheck/internal/logging"
	"github.com/fyrsmithlabs/annocheck/internal/validate"
)

var (
	// configPath is the optional YAML config file.
	configPath string
	// version information (set via ldflags during build)
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "annocheck",
	Short: "Validate disease annotation supporting text against publications",
	Long: `annocheck validates that the supporting text in disease annotation files
actually appears in the publications it cites, and that those publications
look relevant to the disease being annotated.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mcpCmd)
}

// deps holds everything a subcommand needs.
type deps struct {
	cfg      *config.Config
	logger   *zap.Logger
	fetcher  *fetch.Fetcher
	validate *validate.Service
}

// buildDeps loads configuration and wires the services every subcommand
// shares. Overrides run after loading, before validation, so flags can win
// over file and environment settings.
func buildDeps(overrides ...func(*config.Config)) (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	fetcher := fetch.NewFetcher(fetch.Config{
		CacheDir:      cfg.Fetch.CacheDir,
		RateLimit:     cfg.Fetch.RateLimit,
		Timeout:       cfg.Fetch.Timeout,
		MaxRetries:    cfg.Fetch.MaxRetries,
		PubMedBaseURL: cfg.Fetch.PubMedBaseURL,
		Logger:        logger,
	})

	crossref := fetch.NewCrossRefClient(cfg.Fetch.CrossRefBaseURL, cfg.Fetch.Timeout)
	monarch := fetch.NewMonarchClient(cfg.Fetch.MonarchBaseURL, cfg.Fetch.Timeout, logger)

	svc, err := validate.NewService(validate.Config{
		Threshold: cfg.Validation.Threshold,
		Workers:   cfg.Validation.Workers,
		Logger:    logger,
	}, fetcher, monarch, identifier.NewValidator(crossref))
	if err != nil {
		return nil, fmt.Errorf("build validation service: %w", err)
	}

	return &deps{
		cfg:      cfg,
		logger:   logger,
		fetcher:  fetcher,
		validate: svc,
	}, nil
}
