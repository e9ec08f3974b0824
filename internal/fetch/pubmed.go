package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultPubMedBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

// PubMedClient fetches publication abstracts from NCBI E-utilities.
type PubMedClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// NewPubMedClient creates a client against the given efetch endpoint.
// An empty baseURL selects the production NCBI endpoint.
func NewPubMedClient(baseURL string, timeout time.Duration, maxRetries int) *PubMedClient {
	if baseURL == "" {
		baseURL = defaultPubMedBaseURL
	}
	return &PubMedClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

// FetchAbstract retrieves the abstract text for a PMID:<digits> reference and
// parses a title and abstract out of the plain-text body. Returns ErrNoContent
// when NCBI has nothing for the identifier.
func (c *PubMedClient) FetchAbstract(ctx context.Context, reference string) (*Publication, error) {
	id := strings.TrimPrefix(reference, "PMID:")

	params := url.Values{
		"db":      {"pubmed"},
		"id":      {id},
		"retmode": {"text"},
		"rettype": {"abstract"},
	}

	body, err := c.get(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("efetch %s: %w", reference, err)
	}

	content := strings.TrimSpace(body)
	if content == "" || strings.HasPrefix(content, "ERROR") {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, reference)
	}

	title, abstract := parseAbstractText(content)
	return &Publication{
		Reference: reference,
		Title:     title,
		Abstract:  abstract,
		FullText:  content,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// get performs a GET with retries on 429 and 5xx responses.
func (c *PubMedClient) get(ctx context.Context, u string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		body, err := c.doGet(ctx, u)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var re *retryableError
		if !errors.As(err, &re) {
			return "", err
		}
	}
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *PubMedClient) doGet(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &retryableError{err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &retryableError{err: fmt.Errorf("rate limited (429)")}
	}
	if resp.StatusCode >= 500 {
		return "", &retryableError{err: fmt.Errorf("server error (%d)", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return string(body), nil
}

// parseAbstractText extracts a title and abstract from the efetch plain-text
// body. Heuristic: skipping the citation header ("1.") and "PMID:" lines, the
// first line longer than 20 characters containing a period is the title;
// later lines longer than 30 characters join into the abstract.
func parseAbstractText(content string) (title, abstract string) {
	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(line, "1.") || strings.HasPrefix(line, "PMID:") {
			continue
		}
		if title == "" && strings.Contains(line, ".") && len(line) > 20 {
			title = trimmed
		} else if len(line) > 30 {
			b.WriteString(trimmed)
			b.WriteString(" ")
		}
	}
	return title, strings.TrimSpace(b.String())
}

// retryableError wraps errors worth retrying (transport failures, 429, 5xx).
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }
