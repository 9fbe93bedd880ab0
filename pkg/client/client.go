// Package client is the Go client of the check-in API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/shared/dto"
	apierrors "github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/shared/errors"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/rotation"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
)

// Option configures a Client
type Option func(*Client)

// WithAPIKey authenticates as an operator with an API key
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.authorization = "ApiKey " + key
	}
}

// WithBearerToken authenticates with a JWT
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.authorization = "Bearer " + token
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithRetry sets how often and how fast transient failures are retried
func WithRetry(maxRetries uint64, initialInterval time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.initialInterval = initialInterval
	}
}

// Client is the check-in API client.
type Client struct {
	baseURL         string
	authorization   string
	httpClient      *http.Client
	maxRetries      uint64
	initialInterval time.Duration
}

// New creates a new API client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		maxRetries:      DefaultMaxRetries,
		initialInterval: 250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rotate issues a fresh token for an event. It satisfies the display's rotator.
func (c *Client) Rotate(ctx context.Context, eventID string) (*rotation.Rotation, error) {
	var resp dto.RotationResponse
	if err := c.post(ctx, eventPath(eventID, "/token/rotate"), nil, &resp); err != nil {
		return nil, fmt.Errorf("client.Rotate: %w", err)
	}
	return &rotation.Rotation{
		EventID:   resp.EventID,
		Token:     resp.Token,
		RotatedAt: resp.RotatedAt,
		Interval:  time.Duration(resp.IntervalSeconds) * time.Second,
	}, nil
}

// CurrentToken returns the event's current token, nil before the first rotation.
func (c *Client) CurrentToken(ctx context.Context, eventID string) (*string, error) {
	var resp dto.CurrentTokenResponse
	if err := c.get(ctx, eventPath(eventID, "/token"), &resp); err != nil {
		return nil, fmt.Errorf("client.CurrentToken: %w", err)
	}
	return resp.Token, nil
}

// Redeem presents a scanned token for the authenticated member.
func (c *Client) Redeem(ctx context.Context, eventID, token string) (*dto.CheckinResponse, error) {
	var resp dto.CheckinResponse
	body := dto.RedeemRequest{EventID: eventID, Token: token}
	if err := c.post(ctx, "/api/v1/checkin", body, &resp); err != nil {
		return nil, fmt.Errorf("client.Redeem: %w", err)
	}
	return &resp, nil
}

// RecordManual records attendance without a token.
func (c *Client) RecordManual(ctx context.Context, eventID string, req dto.ManualAttendanceRequest) (*dto.CheckinResponse, error) {
	var resp dto.CheckinResponse
	if err := c.post(ctx, eventPath(eventID, "/attendance/manual"), req, &resp); err != nil {
		return nil, fmt.Errorf("client.RecordManual: %w", err)
	}
	return &resp, nil
}

// ListAttendance fetches a page of ledger entries.
func (c *Client) ListAttendance(ctx context.Context, eventID string, limit, offset int) (*dto.AttendanceListResponse, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var resp dto.AttendanceListResponse
	if err := c.get(ctx, eventPath(eventID, "/attendance")+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("client.ListAttendance: %w", err)
	}
	return &resp, nil
}

func eventPath(eventID, suffix string) string {
	return "/api/v1/events/" + url.PathEscape(eventID) + suffix
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doWithRetry(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doWithRetry(ctx, http.MethodPost, path, body, out)
}

// doWithRetry retries network failures and transient server responses with exponential backoff.
// Every call is safe to repeat: rotation is last-writer-wins and the ledger is at-most-once.
func (c *Client) doWithRetry(ctx context.Context, method, path string, body any, out any) error {
	operation := func() error {
		err := c.doRequest(ctx, method, path, body, out)
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.retryable() {
				return err
			}
			return backoff.Permanent(err)
		}
		return err
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = c.initialInterval
	expBackoff.MaxInterval = 2 * time.Second

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(expBackoff, c.maxRetries), ctx))

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return domainError(httpErr)
	}
	return err
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("marshal body: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr apierrors.APIError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Message}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}
