package lexsearch

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped from API status codes. Use errors.Is() to check.
var (
	ErrBadRequest           = errors.New("lexsearch: bad request")
	ErrRetrievalUnavailable = errors.New("lexsearch: retrieval backend unavailable")
	ErrProvider             = errors.New("lexsearch: upstream provider error")
)

// APIError carries the error body returned by the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lexsearch: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Is maps status classes onto the sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.StatusCode == 400
	case ErrRetrievalUnavailable:
		return e.StatusCode == 503
	case ErrProvider:
		return e.StatusCode == 502
	}
	return false
}
