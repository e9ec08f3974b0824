package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultMonarchBaseURL = "https://api.monarchinitiative.org"

// MonarchClient fetches disease synonyms from the Monarch Initiative entity
// API. All failures are fail-open: the caller receives no synonyms and
// relevance checking proceeds with the disease name alone.
type MonarchClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewMonarchClient creates a client against the given Monarch API base URL.
// An empty baseURL selects the production endpoint.
func NewMonarchClient(baseURL string, timeout time.Duration, logger *zap.Logger) *MonarchClient {
	if baseURL == "" {
		baseURL = defaultMonarchBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MonarchClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("monarch"),
	}
}

type monarchEntity struct {
	Name     string `json:"name"`
	Synonyms []struct {
		Val string `json:"val"`
	} `json:"synonyms"`
}

// Synonyms returns the known synonym strings for a disease identifier such as
// "MONDO:0009061", lowercased and de-duplicated. Any failure returns nil.
func (c *MonarchClient) Synonyms(ctx context.Context, diseaseID string) []string {
	if diseaseID == "" {
		return nil
	}

	u := fmt.Sprintf("%s/v3/api/entity/%s", c.baseURL, diseaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		c.logger.Warn("synonym request build failed", zap.String("disease_id", diseaseID), zap.Error(err))
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("synonym fetch failed", zap.String("disease_id", diseaseID), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("synonym fetch returned non-OK status",
			zap.String("disease_id", diseaseID),
			zap.Int("status", resp.StatusCode))
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("synonym response read failed", zap.String("disease_id", diseaseID), zap.Error(err))
		return nil
	}

	var entity monarchEntity
	if err := json.Unmarshal(body, &entity); err != nil {
		c.logger.Warn("synonym response decode failed", zap.String("disease_id", diseaseID), zap.Error(err))
		return nil
	}

	seen := make(map[string]struct{})
	for _, syn := range entity.Synonyms {
		addSynonym(seen, syn.Val)
	}
	addSynonym(seen, entity.Name)

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func addSynonym(seen map[string]struct{}, s string) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s != "" {
		seen[s] = struct{}{}
	}
}
