// Package stripe is a minimal client for the parts of the Stripe REST API the
// dashboard uses: the connected account listing, account sessions and the demo
// merchant-issue test helper.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/platformops/connect-dashboard/internal/metrics"
)

const DefaultBaseURL = "https://api.stripe.com"

// ErrNotConfigured is returned before any request is made when no secret key is set.
var ErrNotConfigured = errors.New("stripe secret key not configured")

// APIError is a non-2xx response from Stripe.
type APIError struct {
	StatusCode int    `json:"-"`
	Type       string `json:"type"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("stripe API error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("stripe API error: status %d", e.StatusCode)
}

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

type Client struct {
	baseURL        string
	secretKey      string
	apiVersion     string
	httpClient     *http.Client
	idempotencyKey func() string
}

// NewClient creates a Stripe client. The underlying http.Client has no timeout
// of its own; callers see whatever the transport reports.
func NewClient(baseURL, secretKey, apiVersion string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		secretKey:      secretKey,
		apiVersion:     apiVersion,
		httpClient:     &http.Client{},
		idempotencyKey: uuid.NewString,
	}
}

// Configured reports whether a secret key is available.
func (c *Client) Configured() bool {
	return c.secretKey != ""
}

// do sends a form-encoded request and decodes a JSON response into target.
// target may be nil; raw response bytes are always returned on success.
func (c *Client) do(ctx context.Context, operation, method, path string, form url.Values, target any) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	endpoint := c.baseURL + path
	var body io.Reader
	if method == http.MethodGet {
		if len(form) > 0 {
			endpoint += "?" + form.Encode()
		}
	} else if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", c.idempotencyKey())
	}
	if c.apiVersion != "" {
		req.Header.Set("Stripe-Version", c.apiVersion)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	metrics.ProviderLatency.WithLabelValues(operation).Observe(elapsed.Seconds())

	if err != nil {
		metrics.ProviderRequests.WithLabelValues(operation, metrics.OutcomeError).Inc()
		log.Error().
			Err(err).
			Str("operation", operation).
			Dur("elapsed", elapsed).
			Msg("stripe request error")
		return nil, fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(operation, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%s read response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ProviderRequests.WithLabelValues(operation, metrics.OutcomeRejected).Inc()
		apiErr := parseAPIError(resp.StatusCode, respBody)
		log.Error().
			Str("operation", operation).
			Int("status", resp.StatusCode).
			Str("type", apiErr.Type).
			Str("code", apiErr.Code).
			Str("message", apiErr.Message).
			Dur("elapsed", elapsed).
			Msg("stripe request rejected")
		return nil, apiErr
	}

	metrics.ProviderRequests.WithLabelValues(operation, metrics.OutcomeSuccess).Inc()
	log.Debug().
		Str("operation", operation).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("stripe request completed")

	if target != nil {
		if err := json.Unmarshal(respBody, target); err != nil {
			return nil, fmt.Errorf("%s decode response: %w", operation, err)
		}
	}

	return respBody, nil
}

func parseAPIError(status int, body []byte) *APIError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return &APIError{StatusCode: status}
	}
	envelope.Error.StatusCode = status
	return envelope.Error
}
