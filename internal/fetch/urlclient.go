package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// URLClient fetches publication content from plain http(s) references.
type URLClient struct {
	httpClient *http.Client
}

// NewURLClient creates a URLClient with the given per-request timeout.
func NewURLClient(timeout time.Duration) *URLClient {
	return &URLClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the body at u. Non-200 responses and empty bodies yield
// ErrNoContent so the caller treats them like any other missing publication.
func (c *URLClient) Fetch(ctx context.Context, u string) (*Publication, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", u, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrNoContent, u, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, u)
	}

	return &Publication{
		Reference: u,
		FullText:  string(body),
		FetchedAt: time.Now().UTC(),
	}, nil
}
