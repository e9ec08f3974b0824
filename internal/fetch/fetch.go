// Package fetch retrieves publication content and bibliographic metadata
// from external sources: NCBI E-utilities for PMID references, plain HTTP
// for URL references, CrossRef for DOI metadata, and the Monarch Initiative
// API for disease synonyms.
//
// The Fetcher owns all caching: an in-memory map, an optional on-disk JSON
// cache for PMID content, and single-flight collapsing so each reference is
// fetched at most once no matter how many validations request it
// concurrently. Outbound NCBI requests are rate limited to stay polite.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

var (
	// ErrUnsupportedReference marks reference shapes the fetcher cannot
	// resolve (anything that is not PMID:<digits> or an http(s) URL).
	ErrUnsupportedReference = errors.New("unsupported reference scheme")

	// ErrNoContent marks a reference that resolved but yielded no usable
	// body.
	ErrNoContent = errors.New("no content for reference")
)

// Publication is the fetched content of one reference. The JSON field names
// match the on-disk cache layout.
type Publication struct {
	Reference string    `json:"pmid"`
	Title     string    `json:"title"`
	Abstract  string    `json:"abstract"`
	FullText  string    `json:"full_text"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Config configures a Fetcher.
type Config struct {
	// CacheDir is the on-disk publication cache directory. Empty disables
	// disk caching.
	CacheDir string

	// RateLimit is the maximum outbound request rate in requests per second.
	// Defaults to 2 (the politeness NCBI asks of unauthenticated clients).
	RateLimit float64

	// Timeout bounds each HTTP request. Defaults to 30s.
	Timeout time.Duration

	// MaxRetries bounds retries on 429/5xx responses. Defaults to 3.
	MaxRetries int

	// PubMedBaseURL overrides the E-utilities endpoint, for tests.
	PubMedBaseURL string

	// Logger for structured logging. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (c *Config) applyDefaults() {
	if c.RateLimit <= 0 {
		c.RateLimit = 2
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

// Fetcher resolves references to publication content, caching every result.
// Safe for concurrent use.
type Fetcher struct {
	pubmed  *PubMedClient
	web     *URLClient
	disk    *diskCache
	limiter *rate.Limiter
	logger  *zap.Logger

	mu    sync.RWMutex
	mem   map[string]*Publication
	group singleflight.Group
}

// NewFetcher creates a Fetcher. The disk cache directory is created lazily
// on first write.
func NewFetcher(cfg Config) *Fetcher {
	cfg.applyDefaults()

	f := &Fetcher{
		pubmed:  NewPubMedClient(cfg.PubMedBaseURL, cfg.Timeout, cfg.MaxRetries),
		web:     NewURLClient(cfg.Timeout),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:  cfg.Logger.Named("fetch"),
		mem:     make(map[string]*Publication),
	}
	if cfg.CacheDir != "" {
		f.disk = newDiskCache(cfg.CacheDir, f.logger)
	}
	return f
}

// Supported reports whether reference has a shape the fetcher can resolve.
func Supported(reference string) bool {
	return strings.HasPrefix(reference, "PMID:") ||
		strings.HasPrefix(reference, "http://") ||
		strings.HasPrefix(reference, "https://")
}

// Fetch resolves a reference to its publication content. Results, including
// the negative ErrNoContent outcome, come from cache when available;
// concurrent calls for the same reference share one upstream request.
func (f *Fetcher) Fetch(ctx context.Context, reference string) (*Publication, error) {
	if !Supported(reference) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedReference, reference)
	}

	f.mu.RLock()
	if pub, ok := f.mem[reference]; ok {
		f.mu.RUnlock()
		cacheHits.WithLabelValues("memory").Inc()
		return pub, nil
	}
	f.mu.RUnlock()

	if f.disk != nil && strings.HasPrefix(reference, "PMID:") {
		if pub, ok := f.disk.get(reference); ok {
			cacheHits.WithLabelValues("disk").Inc()
			f.store(reference, pub, false)
			return pub, nil
		}
	}

	res, err, _ := f.group.Do(reference, func() (interface{}, error) {
		return f.fetchUpstream(ctx, reference)
	})
	if err != nil {
		fetchErrors.Inc()
		return nil, err
	}
	return res.(*Publication), nil
}

func (f *Fetcher) fetchUpstream(ctx context.Context, reference string) (*Publication, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	fetchRequests.Inc()

	var (
		pub *Publication
		err error
	)
	switch {
	case strings.HasPrefix(reference, "PMID:"):
		pub, err = f.pubmed.FetchAbstract(ctx, reference)
	default:
		pub, err = f.web.Fetch(ctx, reference)
	}
	if err != nil {
		f.logger.Warn("fetch failed",
			zap.String("reference", reference),
			zap.Error(err))
		return nil, err
	}

	f.logger.Debug("fetched publication",
		zap.String("reference", reference),
		zap.Int("length", len(pub.FullText)))

	f.store(reference, pub, strings.HasPrefix(reference, "PMID:"))
	return pub, nil
}

func (f *Fetcher) store(reference string, pub *Publication, toDisk bool) {
	f.mu.Lock()
	f.mem[reference] = pub
	f.mu.Unlock()

	if toDisk && f.disk != nil {
		f.disk.put(reference, pub)
	}
}
