// Package api is the REST client for the lash-studio backend. All persistent
// state lives behind it; this layer only attaches credentials, encodes and
// decodes JSON bodies, and maps failures onto domain errors.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"lashup-client/internal/domain"
	"lashup-client/pkg/logger"

	"github.com/goccy/go-json"
)

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string

	// onUnauthorized fires once per 401 response, after the request returns.
	// The session layer registers its invalidation there.
	onUnauthorized func()
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetToken sets the bearer token attached to every subsequent request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the current bearer token ("" when logged out).
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnUnauthorized registers the hook invoked when any request gets a 401.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

// errorBody is the backend's failure envelope. Some endpoints use "message",
// older ones use "error".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one round trip. body and out may be nil. Non-2xx responses are
// returned as *domain.APIError carrying the server message when present;
// 401 additionally wraps domain.ErrUnauthorized and fires the hook.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	url := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.APIRequest(method, path, 0, time.Since(start), err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	logger.APIRequest(method, path, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode == http.StatusUnauthorized {
		c.fireUnauthorized()
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, serverMessage(resp.Body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.APIError{
			Status:  resp.StatusCode,
			Message: serverMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) fireUnauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func serverMessage(r io.Reader) string {
	var eb errorBody
	if err := json.NewDecoder(r).Decode(&eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}
