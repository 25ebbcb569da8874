// Package linear is a minimal client for the Linear GraphQL API,
// covering just the queries and mutations the PRD sync tool needs.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"beast-tins/internal/retry"
)

const defaultEndpoint = "https://api.linear.app/graphql"

// Client talks to the Linear GraphQL endpoint. All calls are retried
// with exponential backoff; HTTP 4xx responses other than 429 are
// treated as permanent failures.
type Client struct {
	endpoint string
	apiKey   string
	teamID   string
	http     *http.Client
	policy   retry.Policy
	logger   zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint, used by tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// NewClient creates a Linear API client scoped to one team.
func NewClient(apiKey, teamID string, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint: defaultEndpoint,
		apiKey:   apiKey,
		teamID:   teamID,
		http:     &http.Client{Timeout: 30 * time.Second},
		policy:   retry.DefaultPolicy,
		logger:   logger.With().Str("client", "linear").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// do executes one GraphQL request and decodes the data payload into out.
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	return c.policy.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return retry.Permanent(fmt.Errorf("failed to build request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			c.logger.Warn().Err(err).Msg("request failed, will retry")
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("linear API returned status %d: %s", resp.StatusCode, data)
			// Rate limiting and server errors are worth retrying.
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				c.logger.Warn().Int("status", resp.StatusCode).Msg("retryable API error")
				return err
			}
			return retry.Permanent(err)
		}

		var gr graphqlResponse
		if err := json.Unmarshal(data, &gr); err != nil {
			return retry.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		if len(gr.Errors) > 0 {
			return retry.Permanent(fmt.Errorf("linear API error: %s", gr.Errors[0].Message))
		}

		if out != nil {
			if err := json.Unmarshal(gr.Data, out); err != nil {
				return retry.Permanent(fmt.Errorf("failed to decode data: %w", err))
			}
		}
		return nil
	})
}
