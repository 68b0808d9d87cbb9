// Package alexa talks to Amazon's unofficial Alexa web API using a session
// cookie and csrf token captured from a browser login.
package alexa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/echoctl/echoctl/internal/logging"
	"github.com/echoctl/echoctl/pkg/types"
)

const (
	// userAgent mimics the Alexa mobile app; some endpoints reject
	// unrecognized clients.
	userAgent = "AppleWebKit PitanguiBridge/2.2.556530.0-[HARDWARE=iPhone14_7][SOFTWARE=16.6]"

	requestTimeout = 15 * time.Second

	retryMaxAttempts     = 3
	retryInitialInterval = 500 * time.Millisecond
	retryMaxInterval     = 5 * time.Second
)

// Client is an authenticated Alexa web API client.
type Client struct {
	baseURL    string
	cookie     string
	csrf       string
	httpClient *http.Client
	breaker    *Breaker
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the endpoint derived from the configured domain.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

// NewClient creates a client for the configured Alexa domain.
func NewClient(cfg *types.Config, opts ...Option) *Client {
	c := &Client{
		baseURL:    "https://" + cfg.Domain,
		cookie:     cfg.Cookie,
		csrf:       cfg.CSRF,
		httpClient: &http.Client{Timeout: requestTimeout},
		breaker:    NewBreaker(0, 0),
		log:        logging.ForComponent("alexa"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newRetryBackoff creates an exponential backoff with jitter for transient
// API failures, bounded by the request context.
func newRetryBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval
	b.RandomizationFactor = 0.5
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, retryMaxAttempts), ctx)
}

// do performs one API call with retry and breaker protection, returning the
// response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	requestID := ulid.Make().String()
	log := c.log.With().Str("request_id", requestID).Str("method", method).Str("path", path).Logger()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var result []byte
	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.requestURL(path, query), bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Cookie", c.cookie)
		req.Header.Set("csrf", c.csrf)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json; charset=utf-8")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Debug().Err(err).Msg("request failed, may retry")
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := &APIError{Status: resp.StatusCode, Body: string(data), RequestID: requestID}
			// Retry server-side and throttling failures, nothing else.
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				log.Debug().Int("status", resp.StatusCode).Msg("transient api error, may retry")
				return apiErr
			}
			return backoff.Permanent(apiErr)
		}

		result = data
		return nil
	}

	err := c.breaker.Execute(func() error {
		return backoff.Retry(attempt, newRetryBackoff(ctx))
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Int("bytes", len(result)).Msg("api call ok")
	return result, nil
}

func (c *Client) requestURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
