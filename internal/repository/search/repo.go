// Package search is the OpenSearch adapter for the retrieval backend.
// It renders hybrid queries to the OpenSearch JSON DSL, validates the
// response shape, and normalizes every score to [0,1] before hits leave
// the package.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	opensearch "github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
	"go.uber.org/zap"

	"github.com/lexora-cloud/lexsearch/internal/domain"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hit"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hybrid"
	"github.com/lexora-cloud/lexsearch/internal/domain/support"
)

// Index field names for the knn vectors.
const (
	TextVectorField  = "text_embedding_vector"
	ImageVectorField = "image_embedding_vector"
	KnowledgeField   = "vector_field"
)

// Config holds the repository settings.
type Config struct {
	Addresses    []string
	Username     string
	Password     string
	ProductIndex string
	SupportIndex string
	Timeout      time.Duration
	Logger       *zap.Logger
}

// Repo executes structured retrieval requests against OpenSearch.
type Repo struct {
	client       *opensearch.Client
	productIndex string
	supportIndex string
	timeout      time.Duration
	logger       *zap.Logger
}

// New creates the OpenSearch repository.
func New(cfg Config) (*Repo, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create opensearch client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Repo{
		client:       client,
		productIndex: cfg.ProductIndex,
		supportIndex: cfg.SupportIndex,
		timeout:      timeout,
		logger:       cfg.Logger,
	}, nil
}

// SearchProducts executes a hybrid query against the product index.
// Returns the hits with normalized scores and the backend total.
func (r *Repo) SearchProducts(ctx context.Context, q hybrid.Query) ([]hit.Hit, int, error) {
	resp, err := r.search(ctx, r.productIndex, renderQuery(q))
	if err != nil {
		return nil, 0, err
	}

	hits, err := productHits(resp.Hits.Hits)
	if err != nil {
		return nil, 0, err
	}
	return normalizeHitScores(hits), resp.Hits.Total.Value, nil
}

// SearchImage runs a pure knn query over the image vector field.
func (r *Repo) SearchImage(ctx context.Context, vector []float32, k int) ([]hit.Hit, error) {
	resp, err := r.search(ctx, r.productIndex, renderKNNQuery(ImageVectorField, vector, k))
	if err != nil {
		return nil, err
	}

	hits, err := productHits(resp.Hits.Hits)
	if err != nil {
		return nil, err
	}
	return normalizeHitScores(hits), nil
}

// SearchKnowledge retrieves the k nearest knowledge chunks by vector
// similarity only. The support collection is small and homogeneous, so no
// lexical or filter clauses are added.
func (r *Repo) SearchKnowledge(ctx context.Context, vector []float32, k int) ([]support.Chunk, error) {
	resp, err := r.search(ctx, r.supportIndex, renderKNNQuery(KnowledgeField, vector, k))
	if err != nil {
		return nil, err
	}

	chunks, err := knowledgeChunks(resp.Hits.Hits)
	if err != nil {
		return nil, err
	}
	return normalizeChunkScores(chunks), nil
}

// Ping checks backend reachability.
func (r *Repo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := opensearchapi.PingRequest{}.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("ping: %w", domain.ErrRetrievalUnavailable)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("ping status %d: %w", res.StatusCode, domain.ErrRetrievalUnavailable)
	}
	return nil
}

func (r *Repo) search(ctx context.Context, index string, body map[string]any) (*searchResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{index},
		Body:  bytes.NewReader(payload),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, domain.ErrRetrievalUnavailable)
	}
	defer res.Body.Close()

	if res.IsError() {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		r.logger.Warn("search backend error",
			zap.String("index", index),
			zap.Int("status", res.StatusCode),
			zap.ByteString("body", snippet),
		)
		return nil, fmt.Errorf("search %s status %d: %w", index, res.StatusCode, domain.ErrRetrievalUnavailable)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", domain.ErrMalformedProviderResponse)
	}

	return &parsed, nil
}
