package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

// FallbackDay is one day as reported by the public contribution service.
type FallbackDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// FallbackResponse is the payload of the public contribution service, used
// when the GraphQL path is unavailable. Yearly totals are keyed by year
// string.
type FallbackResponse struct {
	Contributions []FallbackDay  `json:"contributions"`
	Total         map[string]int `json:"total"`
}

// FallbackContributions fetches contribution data from the public service.
// No credential is attached; the endpoint is anonymous.
func (c *Client) FallbackContributions(ctx context.Context, username string) (*FallbackResponse, error) {
	url := fmt.Sprintf("%s/%s.json", c.cfg.FallbackURL, username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Err: err}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpStatusError(resp.StatusCode, "",
			fmt.Errorf("fallback status %d", resp.StatusCode))
	}

	var out FallbackResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &APIError{Kind: KindUpstream, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode contributions: %w", err)}
	}

	c.log.Debug().Str("username", username).Int("days", len(out.Contributions)).Msg("fetched fallback contributions")

	return &out, nil
}
