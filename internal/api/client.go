package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/kclean/internal/api/dto"
)

// TokenSource supplies the current bearer token; empty means no session.
type TokenSource func() string

// Client is the typed REST client for the K-CLEAN backend. It attaches the
// bearer token to every request once one exists and funnels auth rejections
// through a single expiry handler, so no call site deals with 401s itself.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	tokenSource      TokenSource
	onSessionExpired func()
}

// NewClient builds a client for the given base URL (including the /api
// prefix). A zero timeout leaves request lifetimes to the backend.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SetTokenSource registers the session's token accessor.
func (c *Client) SetTokenSource(src TokenSource) {
	c.tokenSource = src
}

// SetSessionExpiredHandler registers the hook invoked when an authenticated
// request is rejected with 401.
func (c *Client) SetSessionExpiredHandler(fn func()) {
	c.onSessionExpired = fn
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: GenericFailureMessage, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: GenericFailureMessage, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	authenticated := false
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			authenticated = true
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: GenericFailureMessage, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return c.mapFailure(resp, authenticated)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Status: resp.StatusCode, Message: GenericFailureMessage, Err: err}
		}
	}
	return nil
}

// mapFailure translates an HTTP failure into the client error taxonomy. A
// 401 on a request that carried a token means the session died; the expiry
// handler runs before the caller sees the error so local state is already
// cleared by the time the failure propagates.
func (c *Client) mapFailure(resp *http.Response, authenticated bool) error {
	message := backendMessage(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized && authenticated:
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return fmt.Errorf("%s: %w", http.StatusText(resp.StatusCode), ErrSessionExpired)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusUnprocessableEntity:
		if message != "" {
			return &Error{Status: resp.StatusCode, Message: message, Err: ErrInvalidCredentials}
		}
		return fmt.Errorf("status %d: %w", resp.StatusCode, ErrInvalidCredentials)
	case resp.StatusCode == http.StatusNotFound:
		if message != "" {
			return &Error{Status: resp.StatusCode, Message: message, Err: ErrNotFound}
		}
		return fmt.Errorf("status %d: %w", resp.StatusCode, ErrNotFound)
	}

	if message == "" {
		message = GenericFailureMessage
	}
	return &Error{Status: resp.StatusCode, Message: message}
}

func backendMessage(body io.Reader) string {
	var failure dto.ErrorResponse
	if err := json.NewDecoder(body).Decode(&failure); err != nil {
		return ""
	}
	return failure.Message
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
