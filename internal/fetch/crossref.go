package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultCrossRefBaseURL = "https://api.crossref.org"

// CrossRefClient looks up bibliographic metadata for DOIs. It implements
// identifier.MetadataSource.
type CrossRefClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCrossRefClient creates a client against the given CrossRef API base URL.
// An empty baseURL selects the production endpoint.
func NewCrossRefClient(baseURL string, timeout time.Duration) *CrossRefClient {
	if baseURL == "" {
		baseURL = defaultCrossRefBaseURL
	}
	return &CrossRefClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type crossRefResponse struct {
	Message struct {
		Title []string `json:"title"`
	} `json:"message"`
}

// WorkTitle resolves a bare DOI to the work's primary title.
func (c *CrossRefClient) WorkTitle(ctx context.Context, doi string) (string, error) {
	u := fmt.Sprintf("%s/works/%s", c.baseURL, url.PathEscape(doi))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("crossref request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("crossref returned status %d for %s", resp.StatusCode, doi)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed crossRefResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Message.Title) == 0 {
		return "", fmt.Errorf("no title in crossref record for %s", doi)
	}

	return parsed.Message.Title[0], nil
}
