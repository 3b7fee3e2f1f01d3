// Package api is the HTTP gateway to the Yetria backend. Every backend
// operation has one method; every failure is returned as an *Error.
package api

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
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/i18n"
)

// DefaultTimeout bounds a single request when Options.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
	Translator *i18n.Translator

	// Now is used for the cache-busting parameter and error timestamps.
	Now func() time.Time
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
	tr   *i18n.Translator
	now  func() time.Time

	mu    sync.RWMutex
	token string
}

// New creates a Client. BaseURL is required.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api: base URL is required")
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api: invalid base URL %q", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	tr := opts.Translator
	if tr == nil {
		tr = i18n.MustNew(i18n.DefaultLocale)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		base: base,
		http: hc,
		log:  log.Named("api"),
		tr:   tr,
		now:  now,
	}, nil
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string { return c.base }

// SetCredential sets the bearer token attached to every request.
// An empty token clears it.
func (c *Client) SetCredential(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// HasCredential reports whether a bearer token is set.
func (c *Client) HasCredential() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// credentialKey carries a per-request bearer token that overrides the
// client credential.
type credentialKey struct{}

// WithCredential returns a context whose requests authenticate with token
// instead of the client credential. The client credential is not changed.
func WithCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, credentialKey{}, token)
}

func (c *Client) credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends a request and decodes a successful JSON body into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return c.decodeError(method, path, err)
	}
	return nil
}

// send performs the round trip and returns the raw body of a 2xx response.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	if method == http.MethodGet {
		query.Set("_t", strconv.FormatInt(c.now().UnixMilli(), 10))
	}
	target := c.base + "/" + strings.TrimLeft(path, "/")
	if enc := query.Encode(); enc != "" {
		target += "?" + enc
	}

	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		reader = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tok := c.credential()
	if override, ok := ctx.Value(credentialKey{}).(string); ok && override != "" {
		tok = override
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	log := c.log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
	)
	log.Debug("request")
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := c.transportError(ctx, method, path, err)
		log.Warn("request failed",
			zap.Stringer("kind", apiErr.Kind),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return nil, apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	latency := time.Since(start)
	if err != nil {
		apiErr := c.transportError(ctx, method, path, err)
		apiErr.Status = resp.StatusCode
		log.Warn("read response failed",
			zap.Int("status", resp.StatusCode),
			zap.Duration("latency", latency),
			zap.Error(err),
		)
		return nil, apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := c.statusError(method, path, resp.StatusCode, raw)
		log.Info("response",
			zap.Int("status", resp.StatusCode),
			zap.Stringer("kind", apiErr.Kind),
			zap.Duration("latency", latency),
			zap.String("detail", apiErr.Detail),
		)
		return nil, apiErr
	}

	log.Debug("response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", latency),
		zap.Int("bytes", len(raw)),
	)
	return raw, nil
}

func (c *Client) transportError(ctx context.Context, method, path string, err error) *Error {
	kind := KindNetwork
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		kind = KindCanceled
	}
	return &Error{
		Kind:      kind,
		Code:      kind.String(),
		Message:   messageFor(kind, 0, "", c.tr),
		Method:    method,
		Path:      path,
		Timestamp: c.now(),
		Err:       err,
	}
}

func (c *Client) statusError(method, path string, status int, body []byte) *Error {
	kind := kindForStatus(status)
	detail := parseDetail(body)
	return &Error{
		Kind:      kind,
		Status:    status,
		Code:      kind.String(),
		Message:   messageFor(kind, status, detail, c.tr),
		Detail:    detail,
		Method:    method,
		Path:      path,
		Timestamp: c.now(),
	}
}

func (c *Client) decodeError(method, path string, err error) *Error {
	return &Error{
		Kind:      KindDecode,
		Status:    http.StatusOK,
		Code:      KindDecode.String(),
		Message:   messageFor(KindDecode, 0, "", c.tr),
		Method:    method,
		Path:      path,
		Timestamp: c.now(),
		Err:       err,
	}
}
