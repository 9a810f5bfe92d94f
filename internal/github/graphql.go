package github

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

// calendarQuery requests the contribution calendar for one user. The week
// grouping mirrors GitHub's own heatmap layout.
const calendarQuery = `
query($username: String!) {
  user(login: $username) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
            color
          }
        }
      }
    }
  }
}`

// CalendarDay is one day as reported by the GraphQL calendar.
type CalendarDay struct {
	Date              string `json:"date"`
	ContributionCount int    `json:"contributionCount"`
	Color             string `json:"color"`
}

// Calendar is the contribution calendar with its week grouping preserved.
type Calendar struct {
	TotalContributions int
	Weeks              [][]CalendarDay
}

type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type graphqlResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []CalendarDay `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// ContributionCalendar queries the GraphQL calendar for a user. It requires
// a bearer credential; callers must check HasToken first.
func (c *Client) ContributionCalendar(ctx context.Context, username string) (*Calendar, error) {
	if !c.HasToken() {
		return nil, &APIError{Kind: KindUnauthorized, Err: fmt.Errorf("graphql requires a token")}
	}

	body, err := json.Marshal(graphqlRequest{
		Query:     calendarQuery,
		Variables: map[string]string{"username": username},
	})
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Err: fmt.Errorf("encode query: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GraphQLURL, bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpStatusError(resp.StatusCode,
			resp.Header.Get("x-ratelimit-remaining"),
			fmt.Errorf("graphql status %d", resp.StatusCode))
	}

	var out graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &APIError{Kind: KindUpstream, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode calendar: %w", err)}
	}
	if len(out.Errors) > 0 {
		return nil, &APIError{Kind: KindUpstream, StatusCode: resp.StatusCode, Err: fmt.Errorf("graphql: %s", out.Errors[0].Message)}
	}
	if out.Data.User == nil {
		return nil, &APIError{Kind: KindNotFound, Err: fmt.Errorf("user %q not found", username)}
	}

	cal := out.Data.User.ContributionsCollection.ContributionCalendar
	weeks := make([][]CalendarDay, 0, len(cal.Weeks))
	for _, w := range cal.Weeks {
		weeks = append(weeks, w.ContributionDays)
	}

	c.log.Debug().Str("username", username).Int("total", cal.TotalContributions).Msg("fetched graphql calendar")

	return &Calendar{
		TotalContributions: cal.TotalContributions,
		Weeks:              weeks,
	}, nil
}
