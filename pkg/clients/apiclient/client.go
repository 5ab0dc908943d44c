// Package apiclient wraps every HTTP call the CLI makes to the Voluntree
// marketplace API: bearer-token attachment, rate limiting, the shared
// {success, message} response envelope, and the global 401 contract.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mkhera/voluntree-cli/pkg/session"
	"github.com/mkhera/voluntree-cli/pkg/utils"
)

// Client is the authenticated HTTP client shared by all API operation
// packages. The bearer token is read from the session store at call time, so
// a login or logout mid-run takes effect on the next request.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Store
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewClient creates an API client for the given base URL.
// requestsPerSecond caps outgoing calls across all operations.
func NewClient(baseURL string, timeout time.Duration, requestsPerSecond float64, sessions *session.Store, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:   logger,
	}
}

// Do sends a request and decodes the response body into out (which may be
// nil). body and contentType may be empty for body-less methods.
//
// Every response is checked for the global session contract first: a 401
// unconditionally clears the persisted session and returns ErrSessionExpired,
// regardless of what the caller was doing. Other failures become *APIError
// carrying the server-provided message when one exists.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// Attach the bearer token when a session exists; otherwise send the
	// request unauthenticated and let the server answer 401.
	if token, ok := c.sessions.BearerToken(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("Session rejected by server, clearing persisted session",
			zap.String("path", path),
			zap.String("request_id", requestID))
		if err := c.sessions.Clear(); err != nil {
			c.logger.Error("Failed to clear session", zap.Error(err))
		}
		return ErrSessionExpired
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}

	var env envelope
	if len(data) > 0 {
		// A non-JSON body is tolerated; the envelope simply stays empty and
		// the status code decides the outcome.
		json.Unmarshal(data, &env)
	}

	if resp.StatusCode >= 400 || (len(data) > 0 && env.declined()) {
		c.logger.Warn("API request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("server_message", env.Message),
			zap.String("request_id", requestID))
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	c.logger.Debug("API response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID))

	return nil
}

// GetJSON issues an authenticated GET, retrying transient transport failures.
// Only GETs are retried; mutations go through Do exactly once.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return utils.RetryWithBackoff(ctx, 2, func(attempt int) error {
		err := c.Do(ctx, http.MethodGet, path, nil, "", out)
		if err != nil && !IsTransport(err) {
			// Server answered; retrying won't change its mind.
			return &utils.StopRetry{Err: err}
		}
		return err
	})
}

// PatchJSON issues an authenticated PATCH with a JSON body.
func (c *Client) PatchJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.Do(ctx, http.MethodPatch, path, bytes.NewReader(body), "application/json", out)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, "", out)
}

// envelope is the JSON shape every API response shares.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// declined reports whether the body carried an explicit success=false.
func (e envelope) declined() bool {
	return e.Success != nil && !*e.Success
}
