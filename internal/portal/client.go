// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal provides the HTTP client for the Quorum portal's
// assistant API.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the portal client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeRateLimited
	ErrTypeServer
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "portal is not reachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrRateLimited = &ClientError{Type: ErrTypeRateLimited, Message: "portal is rate limiting requests"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the portal client.
type ClientConfig struct {
	// BaseURL is the portal API base URL (default: http://127.0.0.1:8420)
	BaseURL string

	// Timeout for a single request attempt (default: 30s)
	Timeout time.Duration

	// MaxRetries for transient failures (default: 3)
	MaxRetries int

	// RetryDelay between retries (default: 1s)
	RetryDelay time.Duration

	// RequestsPerSecond paces outgoing requests (default: 4). Suggestion
	// chips and insight actions can fire in quick succession; the limiter
	// keeps a click storm from stampeding the backend.
	RequestsPerSecond float64

	// Burst is the limiter's burst allowance (default: 4)
	Burst int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://127.0.0.1:8420",
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RetryDelay:        1 * time.Second,
		RequestsPerSecond: 4,
		Burst:             4,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the portal's assistant API.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := portal.NewClient()
//	resp, err := client.Ask(ctx, portal.AskRequest{Query: "what's overdue?", Page: "tasks"})
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new portal client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new portal client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8420"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 1 * time.Second
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = 4
	}
	if config.Burst == 0 {
		config.Burst = 4
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckReachable verifies that the portal is reachable.
func (c *Client) CheckReachable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/health", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeServer,
			Message: "unexpected status from portal: " + resp.Status,
		}
	}

	return nil
}

// =============================================================================
// ASK
// =============================================================================

// Ask sends one conversational turn and returns the complete assistant
// response. Transient failures (connection refused, 5xx, 429) are retried
// up to MaxRetries times with a fixed delay.
func (c *Client) Ask(ctx context.Context, reqBody AskRequest) (*AskResponse, error) {
	if strings.TrimSpace(reqBody.Query) == "" {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "empty query"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	var result AskResponse
	if err := c.doWithRetry(ctx, http.MethodPost, "/api/assistant/ask", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// INSIGHTS AND SUGGESTIONS
// =============================================================================

// Insights retrieves proactive insights for a page. Failures here are soft:
// callers render an empty feed rather than an error state.
func (c *Client) Insights(ctx context.Context, page string) (*InsightsResponse, error) {
	var result InsightsResponse
	path := "/api/assistant/insights?page=" + url.QueryEscape(page)
	if err := c.doWithRetry(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Suggestions retrieves the quick-start chips for a page. Same soft-failure
// contract as Insights.
func (c *Client) Suggestions(ctx context.Context, page string) (*SuggestionsResponse, error) {
	var result SuggestionsResponse
	path := "/api/assistant/suggestions?page=" + url.QueryEscape(page)
	if err := c.doWithRetry(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// doWithRetry runs one API call through the rate limiter, retrying
// transient failures. Non-transient failures (4xx other than 429, decode
// errors) return immediately.
func (c *Client) doWithRetry(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ErrTimeout
			case <-time.After(c.config.RetryDelay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return ErrTimeout
		}

		err := c.do(ctx, method, path, body, out)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode >= 500:
		return &ClientError{
			Type:    ErrTypeServer,
			Message: "portal error: " + resp.Status,
		}
	default:
		// Try to surface the portal's own error message.
		var envelope apiError
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
			return &ClientError{
				Type:    ErrTypeInvalidResponse,
				Message: envelope.Error,
			}
		}
		return &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "request failed: " + resp.Status,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// isTransient reports whether a failed attempt is worth retrying.
func isTransient(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		switch clientErr.Type {
		case ErrTypeUnreachable, ErrTypeServer, ErrTypeRateLimited:
			return true
		}
	}
	return false
}

// =============================================================================
// ERROR CLASSIFICATION HELPERS
// =============================================================================

// IsUnreachable checks if an error indicates the portal is not reachable.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnreachable
	}
	return errors.Is(err, ErrUnreachable)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsRateLimited checks if an error indicates backend rate limiting.
func IsRateLimited(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeRateLimited
	}
	return errors.Is(err, ErrRateLimited)
}
