package domain

import "errors"

var (
	// ErrRetrievalUnavailable signals that the search backend is unreachable or erroring.
	ErrRetrievalUnavailable = errors.New("retrieval backend unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals a completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrMalformedProviderResponse signals provider output that failed schema validation.
	ErrMalformedProviderResponse = errors.New("malformed provider response")
	// ErrMissingImage signals an image search request without an image payload.
	ErrMissingImage = errors.New("image payload is required")
	// ErrInvalidRequest signals a request that failed validation.
	ErrInvalidRequest = errors.New("invalid request")
)
