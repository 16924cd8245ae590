// Package client is a Go client for the coaching management API. It attaches
// the stored bearer token to every call and, when the server answers 401,
// refreshes the session once for all callers that hit the same expiry.
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
	"time"

	"Coaching-Management-Backend/src/models"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout = 90 * time.Second
	refreshPath    = "/student/refresh"
)

// ErrSessionExpired is returned when a 401 could not be cured by a refresh.
// The storage has been cleared by the time it is returned.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %d", e.Status)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type envelope struct {
	Status  int                    `json:"status"`
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Path    string                 `json:"path"`
	Data    json.RawMessage        `json:"data"`
	Meta    *models.PaginationMeta `json:"meta"`
}

type Client struct {
	baseURL   string
	http      *http.Client
	storage   TokenStorage
	onExpired func()

	refreshing singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithStorage(s TokenStorage) Option {
	return func(c *Client) { c.storage = s }
}

// WithSessionExpiredHandler runs fn after a failed refresh, e.g. to send the user back to login.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		storage: NewMemoryStorage(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Storage returns the token storage in use.
func (c *Client) Storage() TokenStorage { return c.storage }

// Do sends an authenticated request and decodes the envelope's data into out.
// out may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	_, err := c.call(ctx, method, path, body, out, true)
	return err
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}, authed bool) (*models.PaginationMeta, error) {
	var payload []byte
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = raw
	}

	token := ""
	if authed {
		tokens, err := c.storage.Load()
		if err != nil {
			return nil, err
		}
		token = tokens.AccessToken
	}

	status, env, err := c.send(ctx, method, path, payload, token)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized && authed {
		fresh, err := c.refresh(ctx, token)
		if err != nil {
			return nil, err
		}
		if status, env, err = c.send(ctx, method, path, payload, fresh); err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			c.expire()
			return nil, ErrSessionExpired
		}
	}

	if status < 200 || status >= 300 {
		return nil, &APIError{Status: status, Message: env.Message, Path: env.Path}
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := sonic.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode response data: %w", err)
		}
	}
	return env.Meta, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, token string) (int, envelope, error) {
	var env envelope

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, env, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, env, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, env, fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := sonic.Unmarshal(raw, &env); err != nil && res.StatusCode < 300 {
			return 0, env, fmt.Errorf("decode response: %w", err)
		}
	}
	return res.StatusCode, env, nil
}

// refresh returns an access token newer than stale. Concurrent callers share
// one refresh call; a caller whose token was already replaced gets the new
// one without calling the server.
func (c *Client) refresh(ctx context.Context, stale string) (string, error) {
	if tokens, err := c.storage.Load(); err == nil && tokens.AccessToken != "" && tokens.AccessToken != stale {
		return tokens.AccessToken, nil
	}

	v, err, _ := c.refreshing.Do("refresh", func() (interface{}, error) {
		tokens, err := c.storage.Load()
		if err != nil {
			return nil, err
		}
		if tokens.AccessToken != "" && tokens.AccessToken != stale {
			return tokens.AccessToken, nil
		}
		if tokens.RefreshToken == "" {
			c.expire()
			return nil, ErrSessionExpired
		}

		var resp models.LoginResponse
		// detached so one caller's cancellation does not fail the others
		if _, err := c.call(context.WithoutCancel(ctx), http.MethodPost, refreshPath,
			models.RefreshRequest{RefreshToken: tokens.RefreshToken}, &resp, false); err != nil || resp.Token == "" {
			c.expire()
			return nil, ErrSessionExpired
		}
		if err := c.storage.Save(Tokens{AccessToken: resp.Token, RefreshToken: resp.RefreshToken}); err != nil {
			return nil, err
		}
		return resp.Token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) expire() {
	_ = c.storage.Clear()
	if c.onExpired != nil {
		c.onExpired()
	}
}
