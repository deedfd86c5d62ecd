package emelia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBaseURL is the production Emelia API endpoint.
const DefaultBaseURL = "https://api.emelia.io"

const userAgent = "emelia-mcp/1.0.0"

// Client issues authenticated requests against the Emelia REST API.
// It owns no state beyond the HTTP client and a reference to the session
// holding the API key; every response is rendered to text by the calling
// tool and discarded.
type Client struct {
	baseURL string
	session *Session
	http    *http.Client
	log     *zap.Logger
}

// NewClient constructs a Client for the given base URL. An empty baseURL
// falls back to DefaultBaseURL; a zero timeout falls back to 30s.
func NewClient(baseURL string, timeout time.Duration, session *Session, log *zap.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		session: session,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Session returns the credential cell shared with the tool handlers.
func (c *Client) Session() *Session {
	return c.session
}

// BaseURL returns the API endpoint this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOptions carries the per-call parts of an outbound request. Headers
// override the fixed header set on name collision.
type RequestOptions struct {
	Query   url.Values
	Body    any
	Headers map[string]string
}

// Do performs a single request against the API and returns the raw body.
//
// Failure handling is deliberately uniform: a missing key, a transport
// error and a non-2xx status all come back as an *APIError and the caller
// only ever branches on nil/non-nil. The kind is kept for the log.
func (c *Client) Do(ctx context.Context, method, path string, opts *RequestOptions) ([]byte, error) {
	key, ok := c.session.Key()
	if !ok {
		c.log.Warn("emelia.unauthenticated",
			zap.String("method", method),
			zap.String("path", path))
		return nil, &APIError{Kind: ErrUnauthenticated, Err: errors.New("no API key set")}
	}

	u := c.baseURL + path
	if opts != nil && len(opts.Query) > 0 {
		u += "?" + opts.Query.Encode()
	}

	var reqBody io.Reader
	if opts != nil && opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &APIError{Kind: ErrTransport, Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, &APIError{Kind: ErrTransport, Err: err}
	}

	// Fixed header set; caller-supplied headers win on collision.
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)
	if opts != nil {
		for k, v := range opts.Headers {
			if strings.TrimSpace(k) == "" {
				continue
			}
			req.Header.Set(k, v)
		}
	}

	id := uuid.NewString()
	c.log.Debug("emelia.request",
		zap.String("id", id),
		zap.String("method", method),
		zap.String("url", u))

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("emelia.transport_error",
			zap.String("id", id),
			zap.String("url", u),
			zap.Error(err))
		return nil, &APIError{Kind: ErrTransport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("emelia.transport_error",
			zap.String("id", id),
			zap.String("url", u),
			zap.Error(err))
		return nil, &APIError{Kind: ErrTransport, Err: err}
	}

	// 4xx and 5xx are equivalent from the caller's point of view.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("emelia.status_error",
			zap.String("id", id),
			zap.String("url", u),
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncateForLog(body)))
		return nil, &APIError{Kind: ErrStatus, Status: resp.StatusCode}
	}

	c.log.Debug("emelia.response",
		zap.String("id", id),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))
	return body, nil
}

// Dispatch performs a request and decodes the JSON body into T. Decode
// failures collapse to the same nil result as every other failure.
func Dispatch[T any](ctx context.Context, c *Client, method, path string, opts *RequestOptions) (*T, error) {
	body, err := c.Do(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		c.log.Warn("emelia.decode_error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, &APIError{Kind: ErrDecode, Err: err}
	}
	return &out, nil
}

func truncateForLog(b []byte) string {
	const max = 512
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
