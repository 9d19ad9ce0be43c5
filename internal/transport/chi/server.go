// Package chi is the HTTP surface of lexsearch: the query orchestrator
// endpoint, the image search entry point, and health.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/lexora-cloud/lexsearch/internal/domain"
	"github.com/lexora-cloud/lexsearch/internal/domain/envelope"
	"github.com/lexora-cloud/lexsearch/internal/domain/query"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/filter"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hit"
	healthuc "github.com/lexora-cloud/lexsearch/internal/usecase/health"
)

// maxImageBytes caps the image search payload.
const maxImageBytes = 8 << 20

// Orchestrator runs text queries end to end.
type Orchestrator interface {
	Run(ctx context.Context, q query.Query, filters filter.Set) (envelope.Envelope, error)
}

// ImageEmbedder vectorizes an uploaded image.
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, image []byte) ([]float32, error)
}

// ImageSearcher runs knn search over the image vector space.
type ImageSearcher interface {
	SearchImage(ctx context.Context, vector []float32, k int) ([]hit.Hit, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers.
type Server struct {
	orchestrator  Orchestrator
	imageEmbedder ImageEmbedder
	imageSearcher ImageSearcher
	health        *healthuc.Service
	pageSize      int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server.
func NewServer(
	orchestrator Orchestrator,
	imageEmbedder ImageEmbedder,
	imageSearcher ImageSearcher,
	health *healthuc.Service,
	pageSize int,
	logger *zap.Logger,
) *Server {
	s := &Server{
		orchestrator:  orchestrator,
		imageEmbedder: imageEmbedder,
		imageSearcher: imageSearcher,
		health:        health,
		pageSize:      pageSize,
		logger:        logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, "bad_request"),
		sentinelHandler(domain.ErrMissingImage, http.StatusBadRequest, "missing_image"),
		sentinelHandler(domain.ErrRetrievalUnavailable, http.StatusServiceUnavailable, "retrieval_unavailable"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding_provider_error"),
		sentinelHandler(domain.ErrCompletionProviderError, http.StatusBadGateway, "completion_provider_error"),
		sentinelHandler(domain.ErrMalformedProviderResponse, http.StatusBadGateway, "malformed_provider_response"),
	}
	return s
}

// HandleQuery handles POST /v1/query: the text-query orchestrator.
func (s *Server) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	q, err := query.New(req.Query, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	filters, err := filtersFromRequest(req.Filters)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	env, err := s.orchestrator.Run(r.Context(), q, filters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelopeToResponse(env))
}

// HandleImageSearch handles POST /v1/search/image: the separate entry
// point for visual search. The body is the raw image payload.
func (s *Server) HandleImageSearch(w http.ResponseWriter, r *http.Request) {
	image, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Failed to read image payload")
		return
	}
	if len(image) == 0 {
		writeError(w, http.StatusBadRequest, "missing_image", domain.ErrMissingImage.Error())
		return
	}

	vector, err := s.imageEmbedder.EmbedImage(r.Context(), image)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	hits, err := s.imageSearcher.SearchImage(r.Context(), vector, s.pageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, imageSearchResponse{Hits: hitsToResponse(hits)})
}

// HandleHealth handles GET /healthz.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func filtersFromRequest(req *filterRequest) (filter.Set, error) {
	if req == nil {
		return filter.Set{}, nil
	}
	return filter.New(req.Category, req.Brand, req.PriceMin, req.PriceMax, req.RatingFloor, req.Availability)
}

// handleDomainError maps sentinel errors to HTTP responses. Everything
// unmapped is an internal error with no details leaked.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

// safeDomainMessage returns a sentinel error message for the client
// without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrMissingImage,
		domain.ErrRetrievalUnavailable,
		domain.ErrEmbeddingProviderError,
		domain.ErrCompletionProviderError,
		domain.ErrMalformedProviderResponse,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler creates a handler for a simple sentinel → status mapping.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
