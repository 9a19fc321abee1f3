package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/config"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
	"github.com/demirhan/taportal/internal/pkg/helpers"
	"github.com/demirhan/taportal/internal/pkg/logger"
)

// Config controls a client session
type Config struct {
	BaseURL string
	Timeout time.Duration

	// OfflineFallback enables serving fixture data for read operations when
	// the remote service cannot be reached at all. Mutations never fall back.
	OfflineFallback bool

	// FallbackDelay is the artificial pause before a fixture response, so
	// callers' loading states behave the same on- and offline.
	FallbackDelay time.Duration
}

// Client is a typed session against the portal API. Once a read operation
// has been served from fixtures the session stays degraded until
// ResetDegraded is called; reconnecting does not clear it on its own.
type Client struct {
	baseURL         string
	http            *http.Client
	offlineFallback bool
	fallbackDelay   time.Duration

	mu       sync.RWMutex
	token    string
	degraded bool
}

// New creates a client session
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.FallbackDelay <= 0 {
		cfg.FallbackDelay = 300 * time.Millisecond
	}

	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		http:            &http.Client{Timeout: cfg.Timeout},
		offlineFallback: cfg.OfflineFallback,
		fallbackDelay:   cfg.FallbackDelay,
	}
}

// NewFromConfig builds a client session from the application configuration
func NewFromConfig(cfg *config.Config) *Client {
	return New(Config{
		BaseURL:         cfg.Client.BaseURL,
		Timeout:         helpers.ParseDuration(cfg.Client.RequestTimeout, 10*time.Second),
		OfflineFallback: cfg.Client.OfflineFallback,
	})
}

// SetToken attaches a bearer token to subsequent requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Degraded reports whether any operation in this session has been served
// from fixture data.
func (c *Client) Degraded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.degraded
}

// ResetDegraded clears the degraded latch. The latch never clears itself,
// even after later requests succeed.
func (c *Client) ResetDegraded() {
	c.mu.Lock()
	c.degraded = false
	c.mu.Unlock()
}

func (c *Client) markDegraded() {
	c.mu.Lock()
	if !c.degraded {
		logger.Warn().Msg("Remote service unreachable, switching to fixture data")
	}
	c.degraded = true
	c.mu.Unlock()
}

// envelope mirrors the server's response wrapper
type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *dto.ErrorDetail `json:"error"`
}

// do issues one request and decodes the data envelope into out. Connection
// level failures, including client-side timeouts, come back wrapped in
// apperrors.ErrUnreachable so read paths can route them into the fixture
// fallback. HTTP-level failures never do: 401/403 is ErrUnauthorized and any
// other non-2xx is a RemoteError carrying the server detail when present.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUnreachable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return apperrors.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil && env.Error.Message != "" {
			return apperrors.NewRemoteError(env.Error.Message)
		}
		return apperrors.NewRemoteError(http.StatusText(resp.StatusCode))
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// get performs a read with fixture fallback. A connection-level failure
// serves the fixture after a short pause and latches the session into
// degraded mode; every other error, authorization failures included,
// propagates to the caller untouched.
func get[T any](ctx context.Context, c *Client, path string, fixture func() T) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	if err == nil {
		return out, nil
	}

	if fixture == nil || !c.offlineFallback || !errors.Is(err, apperrors.ErrUnreachable) {
		var zero T
		return zero, err
	}

	c.markDegraded()
	if pauseErr := c.fallbackPause(ctx); pauseErr != nil {
		var zero T
		return zero, pauseErr
	}
	return fixture(), nil
}

func (c *Client) fallbackPause(ctx context.Context) error {
	timer := time.NewTimer(c.fallbackDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
