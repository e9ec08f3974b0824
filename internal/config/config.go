// Package config provides configuration loading for annocheck.
package config

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/annocheck/internal/logging"
)

const maxConfigFileSize = 1024 * 1024 // 1MB

// ValidateConfig controls matching and batch validation.
type ValidateConfig struct {
	// Threshold is the fuzzy-match similarity threshold in (0, 1].
	Threshold float64 `koanf:"threshold"`

	// Workers bounds concurrent entry validations.
	Workers int `koanf:"workers"`
}

// FetchConfig controls publication retrieval.
type FetchConfig struct {
	// CacheDir is the on-disk publication cache directory.
	CacheDir string `koanf:"cache_dir"`

	// RateLimit is the maximum outbound requests per second.
	RateLimit float64 `koanf:"rate_limit"`

	Timeout    time.Duration `koanf:"timeout"`
	MaxRetries int           `koanf:"max_retries"`

	PubMedBaseURL   string `koanf:"pubmed_base_url"`
	CrossRefBaseURL string `koanf:"crossref_base_url"`
	MonarchBaseURL  string `koanf:"monarch_base_url"`
}

// ServerConfig controls the optional metrics/health listener.
type ServerConfig struct {
	// MetricsAddr enables the HTTP metrics listener when non-empty,
	// e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// Config is the root annocheck configuration.
type Config struct {
	Validation ValidateConfig `koanf:"validate"`
	Fetch      FetchConfig    `koanf:"fetch"`
	Server     ServerConfig   `koanf:"server"`
	Logging    logging.Config `koanf:"logging"`
}

func applyDefaults(cfg *Config) {
	if cfg.Validation.Threshold == 0 {
		cfg.Validation.Threshold = 0.8
	}
	if cfg.Validation.Workers == 0 {
		cfg.Validation.Workers = 4
	}

	if cfg.Fetch.CacheDir == "" {
		cfg.Fetch.CacheDir = "publication-cache"
	}
	if cfg.Fetch.RateLimit == 0 {
		cfg.Fetch.RateLimit = 2
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.MaxRetries == 0 {
		cfg.Fetch.MaxRetries = 3
	}
	if cfg.Fetch.PubMedBaseURL == "" {
		cfg.Fetch.PubMedBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
	}
	if cfg.Fetch.CrossRefBaseURL == "" {
		cfg.Fetch.CrossRefBaseURL = "https://api.crossref.org"
	}
	if cfg.Fetch.MonarchBaseURL == "" {
		cfg.Fetch.MonarchBaseURL = "https://api.monarchinitiative.org"
	}
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.Validation.Threshold <= 0 || c.Validation.Threshold > 1 {
		return fmt.Errorf("validate.threshold must be in (0, 1], got %v", c.Validation.Threshold)
	}
	if c.Validation.Workers < 1 {
		return fmt.Errorf("validate.workers must be at least 1, got %d", c.Validation.Workers)
	}
	if c.Fetch.RateLimit <= 0 {
		return fmt.Errorf("fetch.rate_limit must be positive, got %v", c.Fetch.RateLimit)
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive, got %v", c.Fetch.Timeout)
	}
	if c.Fetch.MaxRetries < 1 {
		return fmt.Errorf("fetch.max_retries must be at least 1, got %d", c.Fetch.MaxRetries)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}
