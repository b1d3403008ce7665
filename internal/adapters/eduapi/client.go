package eduapi

// Package eduapi is the HTTP adapter for the EduHub REST backend. It shapes
// requests the way the Django API expects (trailing-slash paths, snake_case
// JSON) and normalizes every failure through the shared error taxonomy.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/eduhub/eduhub-go/internal/errors"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "eduhub-go"

	// Response bodies larger than this are truncated before error mapping.
	maxBodyBytes = 1 << 20
)

// Options groups construction parameters for the Client.
type Options struct {
	// BaseURL is the API root, e.g. "https://api.eduhub.example/api".
	BaseURL string
	// HTTPClient performs the requests. Pass a client carrying the auth
	// transport for authenticated use, or a bare one for the refresh path.
	// Defaults to a plain client with the default timeout.
	HTTPClient *http.Client
	// UserAgent overrides the User-Agent header when non-empty.
	UserAgent string
	// Logger for request failures. Optional.
	Logger *slog.Logger
}

// Client talks to the EduHub backend. Method groups live in sibling files,
// one per backend app (auth, courses, mentors, chat, analytics).
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

// New constructs a Client.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: base, http: hc, userAgent: ua, logger: logger}, nil
}

// do performs one JSON round trip. A non-nil body is marshaled and sent; a
// non-nil out receives the decoded response. Failures of any kind come back
// as taxonomy errors built from the response body and the fallback message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, fallback string) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed", "method", method, "path", path, "error", err)
		return apperrors.MapAPIError(err, nil, nil, fallback)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return apperrors.MapAPIError(err, nil, nil, fallback)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.DebugContext(ctx, "request rejected",
			"method", method, "path", path, "status", resp.StatusCode)
		return apperrors.MapAPIError(nil, resp, raw, fallback)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any, fallback string) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, fallback)
}

func (c *Client) post(ctx context.Context, path string, body, out any, fallback string) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, fallback)
}

func (c *Client) patch(ctx context.Context, path string, body, out any, fallback string) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out, fallback)
}

func (c *Client) del(ctx context.Context, path string, fallback string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, fallback)
}
