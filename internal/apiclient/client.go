// Package apiclient is the storefront's only door to the rental REST backend. Every call
// carries the caller's bearer token, and every 401 triggers the unauthorized hook.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/logger"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/metrics"
	"go.uber.org/zap"
)

const maxBodyBytes = 8 << 20

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// UnauthorizedFunc is called with the request context whenever the backend answers 401.
type UnauthorizedFunc func(ctx context.Context)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu             sync.RWMutex
	onUnauthorized UnauthorizedFunc
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("BaseURL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parse BaseURL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger.OrNop(cfg.Logger).Named("apiclient"),
	}, nil
}

// OnUnauthorized installs the hook run on every 401. It replaces any previous hook.
func (c *Client) OnUnauthorized(fn UnauthorizedFunc) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

type tokenKey struct{}

// WithToken attaches the bearer credential used for calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer credential attached to ctx, if any.
func TokenFrom(ctx context.Context) string {
	if tok, ok := ctx.Value(tokenKey{}).(string); ok {
		return tok
	}
	return ""
}

// request describes one backend call. route is the path template used for metrics labels.
type request struct {
	method string
	route  string
	path   string
	query  url.Values
	body   any
}

func (c *Client) get(ctx context.Context, route, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, route: route, path: path, query: query}, out)
}

func (c *Client) post(ctx context.Context, route, path string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPost, route: route, path: path, body: body}, out)
}

func (c *Client) put(ctx context.Context, route, path string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPut, route: route, path: path, body: body}, out)
}

func (c *Client) patch(ctx context.Context, route, path string, query url.Values, body, out any) error {
	return c.do(ctx, request{method: http.MethodPatch, route: route, path: path, query: query, body: body}, out)
}

func (c *Client) delete(ctx context.Context, route, path string, out any) error {
	return c.do(ctx, request{method: http.MethodDelete, route: route, path: path}, out)
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	contentType := ""
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.send(ctx, r, body, contentType, out)
}

// upload sends a single file as multipart/form-data under field "file".
func (c *Client) upload(ctx context.Context, route, path, filename string, content io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}
	r := request{method: http.MethodPost, route: route, path: path}
	return c.send(ctx, r, &buf, mw.FormDataContentType(), out)
}

func (c *Client) send(ctx context.Context, r request, body io.Reader, contentType string, out any) error {
	reqURL := c.baseURL + r.path
	if len(r.query) > 0 {
		reqURL += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, reqURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := TokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(r.method, r.route, 0, time.Since(start))
		c.logger.Warn("backend unreachable", zap.String("method", r.method), zap.String("path", r.path), zap.Error(err))
		return &NetworkError{Method: r.method, Path: r.path, Err: err}
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(r.method, r.route, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &NetworkError{Method: r.method, Path: r.path, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(data),
			Method:     r.method,
			Path:       r.path,
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.logger.Info("backend rejected credentials", zap.String("path", r.path))
			c.unauthorized(ctx)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

func (c *Client) unauthorized(ctx context.Context) {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn(ctx)
	}
}

func idPath(format string, id uint) string {
	return fmt.Sprintf(format, id)
}
