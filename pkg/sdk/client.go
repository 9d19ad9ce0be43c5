package lexsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// Client calls the lexsearch HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client.
type Option interface {
	apply(*Client)
}

type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithHTTPClient sets a custom http.Client. Useful for transports with
// retries or instrumentation.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *Client) {
		c.httpClient = hc
	})
}

// WithTimeout sets the request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *Client) {
		c.httpClient.Timeout = d
	})
}

// New creates a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o.apply(c)
	}
	return c
}

// Query runs a free-form query through the orchestrator. filters can be nil.
func (c *Client) Query(ctx context.Context, query string, filters *Filters) (*Envelope, error) {
	body, err := json.Marshal(struct {
		Query   string   `json:"query"`
		Filters *Filters `json:"filters,omitempty"`
	}{Query: query, Filters: filters})
	if err != nil {
		return nil, fmt.Errorf("lexsearch: marshal request: %w", err)
	}

	var env Envelope
	if err := c.do(ctx, http.MethodPost, "/v1/query", "application/json", bytes.NewReader(body), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// SearchImage runs a visual similarity search over raw image bytes.
func (c *Client) SearchImage(ctx context.Context, image []byte) (*ImageSearchResult, error) {
	var res ImageSearchResult
	if err := c.do(ctx, http.MethodPost, "/v1/search/image", "application/octet-stream", bytes.NewReader(image), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Health reports service health. A degraded report is not an error.
func (c *Client) Health(ctx context.Context) (*HealthReport, error) {
	var rep HealthReport
	if err := c.do(ctx, http.MethodGet, "/healthz", "", nil, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("lexsearch: create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lexsearch: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Health returns 503 with a valid body when degraded.
	if resp.StatusCode >= 400 && !(path == "/healthz" && resp.StatusCode == http.StatusServiceUnavailable) {
		return parseAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("lexsearch: decode response: %w", err)
	}
	return nil
}

func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err == nil && body.Code != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	} else {
		apiErr.Code = "unknown"
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
