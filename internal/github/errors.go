package github

import (
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v57/github"
)

// ErrorKind classifies transport failures so callers can react without
// string matching.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindNotFound
	KindRateLimited
	KindUnauthorized
	KindForbidden
	KindUpstream
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindUpstream:
		return "upstream_error"
	default:
		return "network_error"
	}
}

// APIError is the typed error every transport call fails with.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("github: %s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("github: %s: %v", e.Kind, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// UserMessage maps the error kind to the single human-readable line shown
// when a primary lookup fails.
func (e *APIError) UserMessage() string {
	switch e.Kind {
	case KindNotFound:
		return "User not found"
	case KindRateLimited:
		return "Rate limit exceeded. Please wait or add a valid GitHub token."
	case KindUnauthorized:
		return "Invalid GitHub token. Please check your token."
	case KindForbidden:
		return "Access forbidden. Please check your GitHub token permissions."
	case KindUpstream:
		return fmt.Sprintf("GitHub API error: %d", e.StatusCode)
	default:
		return "Could not reach GitHub. Please check your connection."
	}
}

// Kind extracts the ErrorKind from any error in the chain, defaulting to
// KindNetwork for untyped failures.
func Kind(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindNetwork
}

// classify converts a go-github call result into an *APIError. A nil err
// passes through untouched.
func classify(resp *gh.Response, err error) error {
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &APIError{Kind: KindRateLimited, StatusCode: http.StatusForbidden, Err: err}
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &APIError{Kind: KindRateLimited, StatusCode: http.StatusForbidden, Err: err}
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		status = ghErr.Response.StatusCode
	}

	return classifyStatus(status, err, resp)
}

// classifyStatus maps an HTTP status to an error kind. A 403 with zero
// remaining quota is rate limiting, not a permissions problem.
func classifyStatus(status int, err error, resp *gh.Response) error {
	switch {
	case status == http.StatusNotFound:
		return &APIError{Kind: KindNotFound, StatusCode: status, Err: err}
	case status == http.StatusUnauthorized:
		return &APIError{Kind: KindUnauthorized, StatusCode: status, Err: err}
	case status == http.StatusForbidden:
		if resp != nil && resp.Rate.Remaining == 0 {
			return &APIError{Kind: KindRateLimited, StatusCode: status, Err: err}
		}
		return &APIError{Kind: KindForbidden, StatusCode: status, Err: err}
	case status >= 200 && status < 300, status == 0:
		return &APIError{Kind: KindNetwork, Err: err}
	default:
		return &APIError{Kind: KindUpstream, StatusCode: status, Err: err}
	}
}

// httpStatusError classifies a raw HTTP response status from the GraphQL or
// fallback endpoints, where no go-github response wrapper exists.
func httpStatusError(status int, remaining string, err error) error {
	switch status {
	case http.StatusNotFound:
		return &APIError{Kind: KindNotFound, StatusCode: status, Err: err}
	case http.StatusUnauthorized:
		return &APIError{Kind: KindUnauthorized, StatusCode: status, Err: err}
	case http.StatusForbidden:
		if remaining == "0" {
			return &APIError{Kind: KindRateLimited, StatusCode: status, Err: err}
		}
		return &APIError{Kind: KindForbidden, StatusCode: status, Err: err}
	default:
		return &APIError{Kind: KindUpstream, StatusCode: status, Err: err}
	}
}
