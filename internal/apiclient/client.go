package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource returns the bearer token of the caller bound to ctx, or "".
type TokenSource func(ctx context.Context) string

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// New builds a client for baseURL. A zero timeout leaves requests unbounded,
// they then end only with their context.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		token: func(context.Context) string { return "" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Result is a successful response. Exactly one of JSON and Text is set unless
// the response carried no content.
type Result struct {
	Status int
	JSON   json.RawMessage
	Text   string
}

func (r *Result) Empty() bool {
	return len(r.JSON) == 0 && r.Text == ""
}

// Decode unmarshals a JSON result into v. An empty result leaves v untouched.
func (r *Result) Decode(v any) error {
	if r.Empty() {
		return nil
	}
	if len(r.JSON) == 0 {
		return fmt.Errorf("expected JSON response, got text")
	}
	return json.Unmarshal(r.JSON, v)
}

func (c *Client) Get(ctx context.Context, path string) (*Result, error) {
	return c.Do(ctx, http.MethodGet, path, nil, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, http.MethodPost, path, body, nil)
}

// Do issues one request against the backend. It never retries.
func (c *Client) Do(ctx context.Context, method, path string, body any, header http.Header) (*Result, error) {
	reader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "Backend call failed", slog.String("method", method), slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "Backend call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Message: ReadError(resp.StatusCode, raw)}
	}

	result := &Result{Status: resp.StatusCode}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return result, nil
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		result.JSON = json.RawMessage(raw)
		return result, nil
	}

	result.Text = string(raw)
	return result, nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case string:
		return strings.NewReader(b), "", nil
	case io.Reader:
		return b, "", nil
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(encoded), "application/json", nil
	}
}

// GetJSON fetches path and decodes the JSON result into T.
func GetJSON[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	res, err := c.Get(ctx, path)
	if err != nil {
		return out, err
	}
	err = res.Decode(&out)
	return out, err
}

// PostJSON posts body to path and decodes the JSON result into T.
func PostJSON[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	res, err := c.Post(ctx, path, body)
	if err != nil {
		return out, err
	}
	err = res.Decode(&out)
	return out, err
}
