// Package imagevec is the HTTP client for the external image
// feature-extraction service. The service turns an image into a
// fixed-length vector; the model behind it is opaque to lexsearch.
// Image vectors live in a different space than text embeddings and are
// never compared to them.
package imagevec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lexora-cloud/lexsearch/internal/domain"
)

// Client calls the image vectorizer endpoint.
type Client struct {
	endpoint   string
	dimensions int
	httpClient *http.Client
}

// New creates an image vectorizer client.
func New(endpoint string, dimensions int, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		dimensions: dimensions,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// EmbedImage posts the raw image bytes and returns the feature vector.
func (c *Client) EmbedImage(ctx context.Context, image []byte) ([]float32, error) {
	if len(image) == 0 {
		return nil, domain.ErrMissingImage
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("build vectorizer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image vectorizer call: %w", domain.ErrEmbeddingProviderError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image vectorizer status %d: %w", resp.StatusCode, domain.ErrEmbeddingProviderError)
	}

	var body struct {
		Vector []float32 `json:"vector"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode vectorizer response: %w", domain.ErrMalformedProviderResponse)
	}
	if c.dimensions > 0 && len(body.Vector) != c.dimensions {
		return nil, fmt.Errorf("image vector dimension %d, want %d: %w",
			len(body.Vector), c.dimensions, domain.ErrMalformedProviderResponse)
	}

	return body.Vector, nil
}
